package filter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultGeolocationTimeout bounds how long a page waits for a coordinate.
const DefaultGeolocationTimeout = 8 * time.Second

var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrLocationTimeout     = errors.New("location timed out")
)

// Locator yields the user's coordinate.
type Locator interface {
	Locate(ctx context.Context) (Coord, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Coord, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coord, error) { return f(ctx) }

// Locate asks l for a coordinate, giving up after timeout. On any failure the
// coordinate is nil and the error is meant for a dismissible notice.
func Locate(ctx context.Context, l Locator, timeout time.Duration) (*Coord, error) {
	if l == nil {
		return nil, ErrLocationUnavailable
	}
	if timeout <= 0 {
		timeout = DefaultGeolocationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		c   Coord
		err error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := l.Locate(ctx)
		ch <- result{c, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLocationUnavailable, r.err)
		}
		if !r.c.Valid() {
			return nil, fmt.Errorf("%w: invalid coordinate", ErrLocationUnavailable)
		}
		c := r.c
		return &c, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrLocationTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrLocationUnavailable, ctx.Err())
	}
}

package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"dealtown/db"
)

// THROTTLE_KEY_FORMAT is group:resource:windowID.
const THROTTLE_KEY_FORMAT = "throttle_v1:%s:%s:%d"

// ThrottleDecision reports whether a hit was allowed and, if not, when to retry.
type ThrottleDecision struct {
	Allowed    bool
	Count      int64
	RetryAfter time.Duration
}

// RedisThrottleDAO is a fixed-window counter keyed by group and resource.
type RedisThrottleDAO struct {
	client db.RedisClient
	log    *zap.Logger
}

func NewRedisThrottleDAO(client db.RedisClient, log *zap.Logger) *RedisThrottleDAO {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisThrottleDAO{client: client, log: log.With(zap.String("component", "RedisThrottleDAO"))}
}

// Hit counts one request for resource in the window containing now.
// A limit <= 0 disables throttling.
func (dao *RedisThrottleDAO) Hit(ctx context.Context, group, resource string, limit int, window time.Duration, now time.Time) (ThrottleDecision, error) {
	if limit <= 0 {
		return ThrottleDecision{Allowed: true}, nil
	}
	windowSec := int64(window / time.Second)
	if windowSec <= 0 {
		windowSec = 60
	}

	resource = strings.ToLower(strings.TrimSpace(resource))
	if resource == "" {
		resource = "unknown"
	}
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf(THROTTLE_KEY_FORMAT, group, resource, windowID)

	// one extra second so the key outlives its window
	ttl := time.Duration(windowSec)*time.Second + time.Second
	count, err := dao.client.IncrWithTTL(ctx, key, ttl)
	if err != nil {
		dao.log.Error("throttle increment failed", zap.String("key", key), zap.Error(err))
		return ThrottleDecision{}, fmt.Errorf("failed to increment throttle counter: %w", err)
	}

	if count > int64(limit) {
		nextWindowStart := (windowID + 1) * windowSec
		retryAfter := time.Duration(nextWindowStart-now.Unix()) * time.Second
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return ThrottleDecision{Allowed: false, Count: count, RetryAfter: retryAfter}, nil
	}
	return ThrottleDecision{Allowed: true, Count: count}, nil
}

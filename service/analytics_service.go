package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"dealtown/dao/redis"
	"dealtown/metrics"
	"dealtown/models"
)

const analyticsDateLayout = "2006-01-02"

// AnalyticsService counts pageviews and clicks per civil day.
type AnalyticsService struct {
	dao      *redis.RedisAnalyticsDAO
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

func NewAnalyticsService(dao *redis.RedisAnalyticsDAO, loc *time.Location) *AnalyticsService {
	return &AnalyticsService{dao: dao, validate: NewValidator(), loc: loc, now: time.Now}
}

func (s *AnalyticsService) SetNow(now func() time.Time) { s.now = now }

// eventField is "pageview:/path", "click:listing:{id}", "click:venue:{id}" or "click:/path".
func eventField(ev models.EventRequest) string {
	if ev.Type == models.EventClick {
		switch {
		case ev.ListingID != "":
			return "click:listing:" + ev.ListingID
		case ev.VenueID != "":
			return "click:venue:" + ev.VenueID
		}
	}
	return fmt.Sprintf("%s:%s", ev.Type, ev.Path)
}

// Record validates and counts one event under today's date.
func (s *AnalyticsService) Record(ctx context.Context, ev models.EventRequest) error {
	if err := validateStruct(s.validate, ev); err != nil {
		return err
	}
	date := s.now().In(s.loc).Format(analyticsDateLayout)
	if err := s.dao.Increment(ctx, date, eventField(ev)); err != nil {
		return err
	}
	metrics.EventsTotal.WithLabelValues(string(ev.Type)).Inc()
	return nil
}

// Daily returns the counts for date (YYYY-MM-DD); empty means today.
func (s *AnalyticsService) Daily(ctx context.Context, date string) (*models.DailyCounts, error) {
	if date == "" {
		date = s.now().In(s.loc).Format(analyticsDateLayout)
	} else if _, err := time.Parse(analyticsDateLayout, date); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"date": "must be YYYY-MM-DD"}}
	}
	return s.dao.GetDailyCounts(ctx, date)
}

package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dealtown/db"
	"dealtown/models"
)

const ANALYTICS_KEY_FORMAT_V1 = "analytics_v1:%s"

// analytics hashes are kept for roughly three months
const analyticsRetention = 90 * 24 * time.Hour

// RedisAnalyticsDAO keeps one counter hash per civil date.
type RedisAnalyticsDAO struct {
	client db.RedisClient
}

func NewRedisAnalyticsDAO(client db.RedisClient) *RedisAnalyticsDAO {
	return &RedisAnalyticsDAO{client: client}
}

// Increment adds one to field in the hash for date (YYYY-MM-DD).
func (dao *RedisAnalyticsDAO) Increment(ctx context.Context, date, field string) error {
	key := fmt.Sprintf(ANALYTICS_KEY_FORMAT_V1, date)
	if err := dao.client.HIncrBy(ctx, key, field, 1, analyticsRetention); err != nil {
		return fmt.Errorf("failed to increment %s/%s: %w", key, field, err)
	}
	return nil
}

// GetDailyCounts returns the counters for date; an unknown date yields empty counts.
func (dao *RedisAnalyticsDAO) GetDailyCounts(ctx context.Context, date string) (*models.DailyCounts, error) {
	key := fmt.Sprintf(ANALYTICS_KEY_FORMAT_V1, date)
	raw, err := dao.client.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	out := &models.DailyCounts{Date: date, Counts: make(map[string]int64, len(raw))}
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out.Counts[field] = n
	}
	return out, nil
}

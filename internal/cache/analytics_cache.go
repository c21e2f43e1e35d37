package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stylesense/backend/internal/config"
	"github.com/stylesense/backend/internal/domain"
)

const (
	analyticsReportKeyPrefix = "analytics:report"
	analyticsScanBatchSize   = 100
)

// AnalyticsCache holds the assembled forecast report for a short TTL. Keys are
// anchored to the request day so stale windows expire on date rollover even if
// the TTL has not elapsed.
type AnalyticsCache interface {
	GetReport(ctx context.Context, day time.Time) (*domain.AnalyticsReport, bool, error)
	SetReport(ctx context.Context, day time.Time, report *domain.AnalyticsReport) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalyticsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func (c *redisAnalyticsCache) GetReport(ctx context.Context, day time.Time) (*domain.AnalyticsReport, bool, error) {
	key := buildReportKey(day)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.AnalyticsReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode analytics report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisAnalyticsCache) SetReport(ctx context.Context, day time.Time, report *domain.AnalyticsReport) error {
	key := buildReportKey(day)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode analytics report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalyticsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analyticsReportKeyPrefix, analyticsScanBatchSize)
}

func (n *noopAnalyticsCache) GetReport(ctx context.Context, day time.Time) (*domain.AnalyticsReport, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) SetReport(ctx context.Context, day time.Time, report *domain.AnalyticsReport) error {
	return nil
}

func (n *noopAnalyticsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(day time.Time) string {
	return fmt.Sprintf("%s:%s", analyticsReportKeyPrefix, day.Format("2006-01-02"))
}

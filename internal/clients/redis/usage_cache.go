package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

// UsageCache caches per-tenant monthly label counts so the quota gate does not
// hit the label table on every print. Values expire at month rollover; a miss
// falls back to a count query and re-primes the key.
type UsageCache interface {
	GetLabelCount(ctx context.Context, tenantID uuid.UUID, month time.Time) (int64, bool, error)
	SetLabelCount(ctx context.Context, tenantID uuid.UUID, month time.Time, count int64) error
	IncrLabelCount(ctx context.Context, tenantID uuid.UUID, month time.Time) error
	Close() error
}

type usageCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewUsageCache(log *logger.Logger) (UsageCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &usageCache{
		log: log.With("client", "RedisUsageCache"),
		rdb: rdb,
	}, nil
}

func labelCountKey(tenantID uuid.UUID, month time.Time) string {
	return fmt.Sprintf("usage:labels:%s:%s", tenantID, month.Format("2006-01"))
}

func monthTTL(month time.Time) time.Duration {
	endOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	ttl := time.Until(endOfMonth)
	if ttl <= 0 {
		ttl = time.Hour
	}
	return ttl
}

func (c *usageCache) GetLabelCount(ctx context.Context, tenantID uuid.UUID, month time.Time) (int64, bool, error) {
	val, err := c.rdb.Get(ctx, labelCountKey(tenantID, month)).Int64()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (c *usageCache) SetLabelCount(ctx context.Context, tenantID uuid.UUID, month time.Time, count int64) error {
	return c.rdb.Set(ctx, labelCountKey(tenantID, month), count, monthTTL(month)).Err()
}

// incrIfExists bumps the counter only while the key is still present. A bare
// INCR would resurrect an evicted key at 1 and the quota gate would trust that
// value for the rest of the month; leaving the key absent instead forces the
// next read to re-count from the label table.
var incrIfExists = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	redis.call("INCR", KEYS[1])
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	return 1
end
return 0
`)

func (c *usageCache) IncrLabelCount(ctx context.Context, tenantID uuid.UUID, month time.Time) error {
	key := labelCountKey(tenantID, month)
	return incrIfExists.Run(ctx, c.rdb, []string{key}, monthTTL(month).Milliseconds()).Err()
}

func (c *usageCache) Close() error {
	return c.rdb.Close()
}

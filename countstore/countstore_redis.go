package countstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisCountPrefix    = "warden/count/"
	redisDistinctPrefix = "warden/distinct/"
)

// Rolling buckets are kept one full period past their window so queries
// against the previous hour/day still resolve; totals never expire.
var bucketPeriods = []struct {
	period    string
	retention time.Duration
}{
	{PeriodHour, 2 * time.Hour},
	{PeriodDay, 48 * time.Hour},
	{PeriodTotal, 0},
}

type RedisCountStore struct {
	Client *redis.Client
}

var _ CountStore = (*RedisCountStore)(nil)

func NewRedisCountStore(redisURL string) (*RedisCountStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &RedisCountStore{Client: rdb}, nil
}

func (s *RedisCountStore) GetCount(ctx context.Context, name, val, period string) (int, error) {
	c, err := s.Client.Get(ctx, redisCountPrefix+periodBucket(name, val, period)).Int()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return c, nil
}

// Increment advances every period bucket for the counter in a single redis
// round-trip.
func (s *RedisCountStore) Increment(ctx context.Context, name, val string) error {
	multi := s.Client.Pipeline()
	for _, b := range bucketPeriods {
		key := redisCountPrefix + periodBucket(name, val, b.period)
		multi.Incr(ctx, key)
		if b.retention > 0 {
			multi.Expire(ctx, key, b.retention)
		}
	}
	_, err := multi.Exec(ctx)
	return err
}

func (s *RedisCountStore) GetCountDistinct(ctx context.Context, name, bucket, period string) (int, error) {
	c, err := s.Client.PFCount(ctx, redisDistinctPrefix+periodBucket(name, bucket, period)).Result()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return int(c), nil
}

// IncrementDistinct tracks val in each period's hyperloglog, which is
// approximate but compact. Used for counts like distinct active operators.
func (s *RedisCountStore) IncrementDistinct(ctx context.Context, name, bucket, val string) error {
	multi := s.Client.Pipeline()
	for _, b := range bucketPeriods {
		key := redisDistinctPrefix + periodBucket(name, bucket, b.period)
		multi.PFAdd(ctx, key, val)
		if b.retention > 0 {
			multi.Expire(ctx, key, b.retention)
		}
	}
	_, err := multi.Exec(ctx)
	return err
}

package api

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// 进程内限流器最多记录的 key 数量，超过后整体重置
const maxLimiterKeys = 10000

// LoginLimiter 登录尝试限流，key 通常为 IP + 邮箱。
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}

// redisLoginLimiter 按小时分桶计数，多实例部署时共享限额。
type redisLoginLimiter struct {
	client  redisRateCounter
	perHour int
	now     func() time.Time
}

// NewRedisLoginLimiter 基于 Redis INCR 的登录限流，perHour <= 0 时不限流。
func NewRedisLoginLimiter(client redisRateCounter, perHour int) LoginLimiter {
	return &redisLoginLimiter{client: client, perHour: perHour, now: time.Now}
}

func (l *redisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.perHour <= 0 {
		return true, nil
	}
	rateKey := "rate:login:" + key + ":" + l.now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, l.client, rateKey, time.Hour)
	if err != nil {
		return true, err
	}
	return count <= int64(l.perHour), nil
}

type memoryLoginLimiter struct {
	limiter *keyedLimiter
}

// NewMemoryLoginLimiter 单实例使用的令牌桶登录限流，perHour <= 0 时不限流。
func NewMemoryLoginLimiter(perHour int) LoginLimiter {
	var limiter *keyedLimiter
	if perHour > 0 {
		limiter = newKeyedLimiter(rate.Limit(float64(perHour)/time.Hour.Seconds()), perHour)
	}
	return &memoryLoginLimiter{limiter: limiter}
}

func (l *memoryLoginLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.limiter.allow(key), nil
}

// keyedLimiter 为每个 key 维护一个 rate.Limiter。
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newKeyedLimiter(limit rate.Limit, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// newPerMinuteLimiter 每个 key 每分钟最多 perMinute 次，perMinute <= 0 时返回 nil（不限流）。
func newPerMinuteLimiter(perMinute int) *keyedLimiter {
	if perMinute <= 0 {
		return nil
	}
	return newKeyedLimiter(rate.Limit(float64(perMinute)/time.Minute.Seconds()), perMinute)
}

func (k *keyedLimiter) allow(key string) bool {
	if k == nil {
		return true
	}
	k.mu.Lock()
	limiter, ok := k.limiters[key]
	if !ok {
		if len(k.limiters) >= maxLimiterKeys {
			k.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = limiter
	}
	k.mu.Unlock()
	return limiter.Allow()
}

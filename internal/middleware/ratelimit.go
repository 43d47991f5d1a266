package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-directory/internal/config"
)

// Decision is the outcome of one token bucket take.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter takes one token from the bucket identified by key, creating
// it with budget b when it does not exist yet.
type Limiter interface {
	Take(ctx context.Context, key string, b config.Budget, now time.Time) (Decision, error)
}

var limiterScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		local until_next = interval_ms - (now_ms - last_refill)
		if until_next < 0 then until_next = 0 end
		retry_after_ms = until_next
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill, 'capacity', capacity)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter keeps bucket state in Redis so that every server
// instance shares the same budget.
type RedisLimiter struct {
	rdb *redis.Client
	cfg config.RateLimitConfig
}

// NewRedisLimiter returns a limiter backed by rdb.
func NewRedisLimiter(cfg config.RateLimitConfig, rdb *redis.Client) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, cfg: cfg}
}

// Take runs the bucket script atomically for key.
func (l *RedisLimiter) Take(ctx context.Context, key string, b config.Budget, now time.Time) (Decision, error) {
	args := []interface{}{
		now.UnixMilli(),
		b.Capacity,
		b.RefillTokens,
		b.RefillInterval.Milliseconds(),
		int64(l.cfg.TTL / time.Second),
	}
	vals, err := limiterScript.Run(ctx, l.rdb, []string{key}, args...).Result()
	if err != nil {
		return Decision{}, err
	}
	return parseDecision(vals)
}

func parseDecision(vals interface{}) (Decision, error) {
	arr, ok := vals.([]interface{})
	if !ok || len(arr) != 3 {
		return Decision{}, fmt.Errorf("unexpected script result %#v", vals)
	}
	return Decision{
		Allowed:    asInt64(arr[0]) == 1,
		Remaining:  asInt64(arr[1]),
		RetryAfter: time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, nil
}

// NewTokenBucket limits requests with a Redis token bucket.  When rate
// limiting is disabled or Redis is unavailable it passes every request
// through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	return RateLimit(cfg, NewRedisLimiter(cfg, rdb))
}

// RateLimit applies limiter to every request, charging reads and form
// submissions to separate buckets.  Limiter failures fail open: the
// request is served and the error logged.
func RateLimit(cfg config.RateLimitConfig, limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			bucket, budget := cfg.BudgetFor(c.Request().Method)
			key := buildRateKey(cfg, bucket, c)

			d, err := limiter.Take(ctx, key, budget, time.Now())
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(budget.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))

			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter.Seconds()))
				if secs < 0 {
					secs = 0
				}
				h.Set("Retry-After", strconv.Itoa(secs))
				if cfg.Debug {
					log.Ctx(ctx).Debug().Str("key", key).Int64("remaining", d.Remaining).
						Dur("retry", d.RetryAfter).Msg("rate limit block")
				}
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":       "too_many_requests",
					"message":     "rate limit exceeded",
					"retry_after": secs,
				})
			}

			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			return next(c)
		}
	}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// buildRateKey derives the bucket key from the bucket name, the client
// address and the matched route according to cfg.KeyStrategy.
func buildRateKey(cfg config.RateLimitConfig, bucket string, c echo.Context) string {
	parts := []string{cfg.Prefix, bucket}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request().Method + " " + c.Path()

	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "route":
		parts = append(parts, "route", route)
	default:
		parts = append(parts, "ip", ip, "route", route)
	}
	return strings.Join(parts, ":")
}

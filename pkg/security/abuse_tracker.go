package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// AbuseTrackerConfig holds configuration for rejected-submission tracking
type AbuseTrackerConfig struct {
	Threshold int           // rejected submissions per window before the IP is reported (default: 10)
	Window    time.Duration // counting window (default: 15min)
}

// DefaultAbuseTrackerConfig returns sensible defaults
func DefaultAbuseTrackerConfig() AbuseTrackerConfig {
	return AbuseTrackerConfig{
		Threshold: 10,
		Window:    15 * time.Minute,
	}
}

// CounterFunc increments key, setting ttl on first use, and returns the new count
type CounterFunc func(ctx context.Context, key string, ttl time.Duration) (int, error)

// AbuseTracker counts rejected contact submissions per client IP and reports an
// IP once, when it crosses the threshold inside the window. Nothing is blocked;
// the rate limiter already bounds traffic.
type AbuseTracker struct {
	config AbuseTrackerConfig
	logger *SecurityLogger
	incr   CounterFunc
}

const rejectedIPPrefix = "rejected:contact:ip:"

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// errNoRedis means the shared client is absent; tracking is skipped
var errNoRedis = errors.New("redis not available for abuse tracking")

// NewAbuseTracker creates a tracker backed by the shared Redis client.
// A nil counter uses Redis; logger nil uses DefaultLogger.
func NewAbuseTracker(config AbuseTrackerConfig, logger *SecurityLogger, counter CounterFunc) *AbuseTracker {
	if config.Threshold <= 0 {
		config.Threshold = DefaultAbuseTrackerConfig().Threshold
	}
	if config.Window <= 0 {
		config.Window = DefaultAbuseTrackerConfig().Window
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	if counter == nil {
		counter = redisIncr
	}
	return &AbuseTracker{config: config, logger: logger, incr: counter}
}

// RecordRejected counts one rejected submission from ip and reports whether it
// crossed the threshold with this call. Without Redis it fails open.
func (t *AbuseTracker) RecordRejected(ctx context.Context, ip, requestID string) (bool, error) {
	if t == nil || ip == "" {
		return false, nil
	}

	count, err := t.incr(ctx, rejectedIPPrefix+ip, t.config.Window)
	if errors.Is(err, errNoRedis) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to count rejected submission: %w", err)
	}

	if count != t.config.Threshold {
		return false, nil
	}
	t.logger.LogSuspiciousInput(ctx, ip, requestID, count, t.config.Window)
	return true, nil
}

func redisIncr(ctx context.Context, key string, ttl time.Duration) (int, error) {
	client := redis.Client()
	if client == nil {
		return 0, errNoRedis
	}
	return atomicIncrement(ctx, client, key, int(ttl.Seconds()))
}

// atomicIncrement performs an atomic increment with TTL using Lua script
func atomicIncrement(ctx context.Context, client *goredis.Client, key string, ttlSeconds int) (int, error) {
	result, err := client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

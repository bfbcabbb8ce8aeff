package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"netrepro/internal/domain"
)

// RedisClient is the slice of the go-redis API the checks need; it keeps the
// checks testable without a live server.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// NewRedisClient builds the production client used by both redis checks.
func NewRedisClient(addr string, dialTimeout time.Duration) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: dialTimeout,
		// One-shot semantics: each cycle stands alone, the client must not
		// paper over failures with its own retry loop.
		MaxRetries: -1,
	})
}

// RedisPingCheck exercises the higher-level client library against the local
// target. The client dials through the same Go networking path as the raw
// connect, so after detach it fails in lockstep with it.
type RedisPingCheck struct {
	client  RedisClient
	addr    string
	timeout time.Duration
}

func NewRedisPingCheck(client RedisClient, addr string, timeout time.Duration) *RedisPingCheck {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	return &RedisPingCheck{
		client:  client,
		addr:    addr,
		timeout: timeout,
	}
}

func (c *RedisPingCheck) Name() string { return "redis ping" }

func (c *RedisPingCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.Name(),
		Target: c.addr,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	reply, err := c.client.Ping(ctx).Result()
	res.Latency = time.Since(start)

	if err != nil {
		res.Class, res.Detail = classifyDialError(err)
		return res
	}

	res.OK = true
	res.Detail = reply
	return res
}

// RedisRoundTripCheck measures a SET followed by a GET of the same key, the
// request/response variant of the reachability signal.
type RedisRoundTripCheck struct {
	client  RedisClient
	addr    string
	timeout time.Duration
}

func NewRedisRoundTripCheck(client RedisClient, addr string, timeout time.Duration) *RedisRoundTripCheck {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	return &RedisRoundTripCheck{
		client:  client,
		addr:    addr,
		timeout: timeout,
	}
}

func (c *RedisRoundTripCheck) Name() string { return "redis set/get" }

func (c *RedisRoundTripCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.Name(),
		Target: c.addr,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := "netrepro:sample"
	value := fmt.Sprintf("cycle-%d", time.Now().Unix())

	start := time.Now()
	if err := c.client.Set(ctx, key, value, time.Minute).Err(); err != nil {
		res.Latency = time.Since(start)
		res.Class, res.Detail = classifyDialError(err)
		res.Detail = "SET: " + res.Detail
		return res
	}

	got, err := c.client.Get(ctx, key).Result()
	res.Latency = time.Since(start)

	if err != nil {
		res.Class, res.Detail = classifyDialError(err)
		res.Detail = "GET: " + res.Detail
		return res
	}
	if got != value {
		res.Class = domain.ClassError
		res.Detail = fmt.Sprintf("GET returned %q, want %q", got, value)
		return res
	}

	res.OK = true
	return res
}

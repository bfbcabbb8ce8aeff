package probe

import (
	"context"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"netrepro/internal/domain"
)

type fakeRedis struct {
	pingErr error
	setErr  error
	getErr  error
	store   map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string]string)}
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	if f.pingErr != nil {
		return redis.NewStatusResult("", f.pingErr)
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.store[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func noRouteErr() error {
	return &net.OpError{
		Op:  "dial",
		Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH),
	}
}

func TestRedisPingCheck_Success(t *testing.T) {
	check := NewRedisPingCheck(newFakeRedis(), "10.8.100.100:6379", 5*time.Second)
	res := check.Run(context.Background())

	require.True(t, res.OK)
	require.Equal(t, "PONG", res.Detail)
}

func TestRedisPingCheck_NoRoute(t *testing.T) {
	client := newFakeRedis()
	client.pingErr = noRouteErr()

	check := NewRedisPingCheck(client, "10.8.100.100:6379", 5*time.Second)
	res := check.Run(context.Background())

	require.False(t, res.OK)
	require.Equal(t, domain.ClassUnreachable, res.Class)
}

func TestRedisRoundTripCheck_Success(t *testing.T) {
	check := NewRedisRoundTripCheck(newFakeRedis(), "10.8.100.100:6379", 5*time.Second)
	res := check.Run(context.Background())

	require.True(t, res.OK, "detail: %s", res.Detail)
}

func TestRedisRoundTripCheck_SetFails(t *testing.T) {
	client := newFakeRedis()
	client.setErr = noRouteErr()

	check := NewRedisRoundTripCheck(client, "10.8.100.100:6379", 5*time.Second)
	res := check.Run(context.Background())

	require.False(t, res.OK)
	require.Equal(t, domain.ClassUnreachable, res.Class)
	require.Contains(t, res.Detail, "SET:")
}

func TestRedisRoundTripCheck_GetFails(t *testing.T) {
	client := newFakeRedis()
	client.getErr = noRouteErr()

	check := NewRedisRoundTripCheck(client, "10.8.100.100:6379", 5*time.Second)
	res := check.Run(context.Background())

	require.False(t, res.OK)
	require.Contains(t, res.Detail, "GET:")
}

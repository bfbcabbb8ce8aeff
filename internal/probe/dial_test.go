package probe

import (
	"context"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"netrepro/internal/domain"
)

func TestTCPCheck_Success(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	addr := ln.Addr().(*net.TCPAddr)
	target := domain.Target{Label: domain.LabelLocal, Host: "127.0.0.1", Port: addr.Port}

	check := NewTCPCheck("tcp local", target, 5*time.Second)
	res := check.Run(context.Background())

	require.True(t, res.OK, "expected success, got class=%s detail=%s", res.Class, res.Detail)
	require.Equal(t, "tcp local", res.Check)
	require.Less(t, res.Latency, time.Second)
}

func TestTCPCheck_Refused(t *testing.T) {
	// Port 1 on loopback is closed; the peer actively refuses, which must be
	// classified apart from a timeout or a no-route failure.
	target := domain.Target{Label: domain.LabelLocal, Host: "127.0.0.1", Port: 1}

	check := NewTCPCheck("tcp local", target, 5*time.Second)
	res := check.Run(context.Background())

	require.False(t, res.OK)
	require.Equal(t, domain.ClassRefused, res.Class)
	require.Contains(t, res.Detail, "refused")
}

func TestTCPCheck_ResolveFailure(t *testing.T) {
	target := domain.Target{Label: domain.LabelInternet, Host: "host.invalid", Port: 443}

	check := NewTCPCheck("tcp internet", target, time.Second)
	res := check.Run(context.Background())

	require.False(t, res.OK)
	require.Equal(t, domain.ClassResolve, res.Class)
	require.NotEmpty(t, res.Detail)
}

func TestClassifyErrno(t *testing.T) {
	cases := []struct {
		errno syscall.Errno
		want  domain.FailureClass
	}{
		{syscall.ECONNREFUSED, domain.ClassRefused},
		{syscall.EHOSTUNREACH, domain.ClassUnreachable},
		{syscall.ENETUNREACH, domain.ClassUnreachable},
		{syscall.ETIMEDOUT, domain.ClassTimeout},
		{syscall.EMFILE, domain.ClassSocket},
		{syscall.EPERM, domain.ClassError},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, classifyErrno(tc.errno), "errno %d", int(tc.errno))
	}
}

func TestClassifyDialError_Errno(t *testing.T) {
	err := &net.OpError{
		Op:  "dial",
		Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH),
	}

	class, detail := classifyDialError(err)
	require.Equal(t, domain.ClassUnreachable, class)
	require.Contains(t, detail, "errno")
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyDialError_Timeout(t *testing.T) {
	err := &net.OpError{Op: "dial", Err: timeoutErr{}}

	class, _ := classifyDialError(err)
	require.Equal(t, domain.ClassTimeout, class)
}

func TestResolveTarget_IPLiteral(t *testing.T) {
	target := domain.Target{Host: "10.8.100.100", Port: 6379}

	addr, err := resolveTarget(context.Background(), target)
	require.NoError(t, err)
	require.Equal(t, "10.8.100.100:6379", addr.String())
}

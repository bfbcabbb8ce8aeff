package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"syscall"
	"time"

	"netrepro/internal/domain"
)

const defaultDialTimeout = 5 * time.Second

// TCPCheck performs a raw transport-level connection attempt: non-blocking
// connect, bounded writability wait, then SO_ERROR to separate a deferred
// connect failure from success. This is deliberately lower-level than
// net.DialTimeout so the reported error class matches what the kernel
// actually returned.
type TCPCheck struct {
	name    string
	target  domain.Target
	timeout time.Duration
}

func NewTCPCheck(name string, target domain.Target, timeout time.Duration) *TCPCheck {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	return &TCPCheck{
		name:    name,
		target:  target,
		timeout: timeout,
	}
}

func (c *TCPCheck) Name() string { return c.name }

func (c *TCPCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.name,
		Target: c.target.Addr(),
	}

	addr, err := resolveTarget(ctx, c.target)
	if err != nil {
		res.Class = domain.ClassResolve
		res.Detail = err.Error()
		return res
	}

	start := time.Now()
	class, detail := rawConnect(addr, c.timeout)
	res.Latency = time.Since(start)

	if class == domain.ClassNone {
		res.OK = true
		return res
	}

	res.Class = class
	res.Detail = detail
	return res
}

// resolveTarget turns a target into a concrete address. IP literals pass
// through untouched; hostnames go through the resolver and count resolution
// failures as their own class, distinct from connect failures.
func resolveTarget(ctx context.Context, t domain.Target) (netip.AddrPort, error) {
	if ip, err := netip.ParseAddr(t.Host); err == nil {
		return netip.AddrPortFrom(ip.Unmap(), uint16(t.Port)), nil
	}

	ips, err := net.DefaultResolver.LookupNetIP(ctx, "ip", t.Host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("resolve %s: %w", t.Host, err)
	}
	if len(ips) == 0 {
		return netip.AddrPort{}, fmt.Errorf("resolve %s: no addresses", t.Host)
	}

	// Prefer IPv4; the targets under investigation are v4 LAN addresses.
	for _, ip := range ips {
		if ip.Unmap().Is4() {
			return netip.AddrPortFrom(ip.Unmap(), uint16(t.Port)), nil
		}
	}
	return netip.AddrPortFrom(ips[0].Unmap(), uint16(t.Port)), nil
}

// classifyErrno maps a connect-time errno into the failure taxonomy.
func classifyErrno(errno syscall.Errno) domain.FailureClass {
	switch errno {
	case syscall.ECONNREFUSED:
		return domain.ClassRefused
	case syscall.EHOSTUNREACH, syscall.ENETUNREACH, syscall.EHOSTDOWN, syscall.ENETDOWN:
		return domain.ClassUnreachable
	case syscall.ETIMEDOUT:
		return domain.ClassTimeout
	case syscall.EMFILE, syscall.ENFILE, syscall.ENOBUFS:
		return domain.ClassSocket
	default:
		return domain.ClassError
	}
}

func errnoDetail(errno syscall.Errno) string {
	return fmt.Sprintf("%s (errno %d)", errno.Error(), int(errno))
}

// classifyDialError maps an error returned by net.Dialer into the same
// taxonomy as raw connects, digging the errno out of the wrapping.
func classifyDialError(err error) (domain.FailureClass, string) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return classifyErrno(errno), errnoDetail(errno)
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return domain.ClassTimeout, err.Error()
	}

	return domain.ClassError, err.Error()
}

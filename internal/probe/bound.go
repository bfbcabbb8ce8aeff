package probe

import (
	"context"
	"fmt"
	"net"
	"syscall"
	"time"

	"netrepro/internal/domain"
)

// BoundDialCheck dials the target with the socket pinned to a named network
// interface before connect. In the original observation this still failed
// after detach, which implicates interface-scoped routes rather than source
// address selection.
type BoundDialCheck struct {
	name    string
	target  domain.Target
	iface   string
	timeout time.Duration
}

func NewBoundDialCheck(name string, target domain.Target, iface string, timeout time.Duration) *BoundDialCheck {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	return &BoundDialCheck{
		name:    name,
		target:  target,
		iface:   iface,
		timeout: timeout,
	}
}

func (c *BoundDialCheck) Name() string { return c.name }

func (c *BoundDialCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.name,
		Target: c.target.Addr(),
	}

	ifi, err := net.InterfaceByName(c.iface)
	if err != nil {
		res.Class = domain.ClassError
		res.Detail = fmt.Sprintf("interface %s: %v", c.iface, err)
		return res
	}

	localIP, err := interfaceIPv4(ifi)
	if err != nil {
		res.Class = domain.ClassError
		res.Detail = err.Error()
		return res
	}

	dialer := &net.Dialer{
		Timeout:   c.timeout,
		LocalAddr: &net.TCPAddr{IP: localIP},
		Control: func(network, address string, raw syscall.RawConn) error {
			var opErr error
			if err := raw.Control(func(fd uintptr) {
				opErr = bindToInterface(int(fd), ifi)
			}); err != nil {
				return err
			}
			return opErr
		},
	}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", c.target.Addr())
	res.Latency = time.Since(start)

	if err != nil {
		res.Class, res.Detail = classifyDialError(err)
		return res
	}
	conn.Close()

	res.OK = true
	res.Detail = fmt.Sprintf("via %s (%s)", c.iface, localIP)
	return res
}

func interfaceIPv4(ifi *net.Interface) (net.IP, error) {
	addrs, err := ifi.Addrs()
	if err != nil {
		return nil, fmt.Errorf("addresses of %s: %w", ifi.Name, err)
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil {
			return ipnet.IP, nil
		}
	}
	return nil, fmt.Errorf("no IPv4 address on %s", ifi.Name)
}

//go:build !darwin && !linux

package probe

import (
	"net"
	"net/netip"
	"time"

	"netrepro/internal/domain"
)

// rawConnect on platforms without the raw socket path falls back to the
// standard dialer and classifies whatever error it surfaces. Timeout
// semantics match; the errno fidelity is best-effort.
func rawConnect(addr netip.AddrPort, timeout time.Duration) (domain.FailureClass, string) {
	conn, err := net.DialTimeout("tcp", addr.String(), timeout)
	if err != nil {
		return classifyDialError(err)
	}
	conn.Close()
	return domain.ClassNone, ""
}

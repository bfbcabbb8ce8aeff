//go:build darwin || linux

package probe

import (
	"fmt"
	"net/netip"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"netrepro/internal/domain"
)

// rawConnect attempts a TCP connection the way the kernel sees it: socket,
// O_NONBLOCK, connect, poll for writability with a deadline, then SO_ERROR.
// The readiness event alone does not guarantee success; a deferred connect
// failure is only visible through the pending socket error.
func rawConnect(addr netip.AddrPort, timeout time.Duration) (domain.FailureClass, string) {
	family := unix.AF_INET
	if addr.Addr().Is6() {
		family = unix.AF_INET6
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM, 0)
	if err != nil {
		return domain.ClassSocket, fmt.Sprintf("socket: %v", err)
	}
	defer unix.Close(fd)

	unix.CloseOnExec(fd)
	if err := unix.SetNonblock(fd, true); err != nil {
		return domain.ClassSocket, fmt.Sprintf("set nonblock: %v", err)
	}

	err = unix.Connect(fd, sockaddrFrom(addr))
	if err == nil {
		// Immediate completion, typically loopback.
		return domain.ClassNone, ""
	}
	errno, ok := err.(syscall.Errno)
	if !ok {
		return domain.ClassError, err.Error()
	}
	if errno != unix.EINPROGRESS {
		return classifyErrno(errno), errnoDetail(errno)
	}

	deadline := time.Now().Add(timeout)
	for {
		remain := time.Until(deadline)
		if remain < 0 {
			remain = 0
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
		n, err := unix.Poll(fds, int(remain.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return domain.ClassError, fmt.Sprintf("poll: %v", err)
		}
		if n == 0 {
			return domain.ClassTimeout, fmt.Sprintf("no response within %s", timeout)
		}
		break
	}

	soerr, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return domain.ClassError, fmt.Sprintf("getsockopt SO_ERROR: %v", err)
	}
	if soerr != 0 {
		errno := syscall.Errno(soerr)
		return classifyErrno(errno), errnoDetail(errno)
	}

	return domain.ClassNone, ""
}

func sockaddrFrom(addr netip.AddrPort) unix.Sockaddr {
	if addr.Addr().Is4() {
		sa := &unix.SockaddrInet4{Port: int(addr.Port())}
		a := addr.Addr().As4()
		copy(sa.Addr[:], a[:])
		return sa
	}

	sa := &unix.SockaddrInet6{Port: int(addr.Port())}
	a := addr.Addr().As16()
	copy(sa.Addr[:], a[:])
	return sa
}

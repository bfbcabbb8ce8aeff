package probe

import (
	"net"

	"golang.org/x/sys/unix"
)

func bindToInterface(fd int, ifi *net.Interface) error {
	return unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_BOUND_IF, ifi.Index)
}

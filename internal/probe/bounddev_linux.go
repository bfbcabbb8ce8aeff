package probe

import (
	"net"

	"golang.org/x/sys/unix"
)

func bindToInterface(fd int, ifi *net.Interface) error {
	return unix.BindToDevice(fd, ifi.Name)
}

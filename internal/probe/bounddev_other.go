//go:build !darwin && !linux

package probe

import (
	"fmt"
	"net"
	"runtime"
)

func bindToInterface(fd int, ifi *net.Interface) error {
	return fmt.Errorf("interface binding not supported on %s", runtime.GOOS)
}

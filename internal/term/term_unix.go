//go:build unix

package term

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Query inspects the current terminal attachment. Opening /dev/tty fails
// once the session has no controlling terminal, which happens when the
// launching SSH session ends and the process is disowned.
func Query() State {
	return State{
		Attached: hasControllingTTY(),
		StdinTTY: isatty.IsTerminal(os.Stdin.Fd()),
	}
}

func hasControllingTTY() bool {
	f, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

//go:build !unix

package term

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Query approximates terminal attachment with the stdin tty state; the
// controlling-terminal notion is a unix concept.
func Query() State {
	tty := isatty.IsTerminal(os.Stdin.Fd())
	return State{Attached: tty, StdinTTY: tty}
}

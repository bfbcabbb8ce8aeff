// Package term answers one question per cycle: does this process still have
// a controlling terminal? The attached-to-detached edge is the marker the
// harness correlates with the onset of the networking anomaly.
package term

// State is the process's terminal attachment at one point in time.
type State struct {
	Attached bool // controlling terminal present
	StdinTTY bool // stdin is itself a tty
}

package domain

import "time"

// FailureClass tells apart the ways a connectivity attempt can fail. Keeping
// refused and unreachable separate matters here: the anomaly under
// investigation surfaces as a no-route/host-unreachable error on local
// targets, and collapsing it into a generic failure string would hide the
// signal the harness exists to capture.
type FailureClass string

const (
	ClassNone        FailureClass = ""
	ClassTimeout     FailureClass = "timeout"
	ClassRefused     FailureClass = "refused"
	ClassUnreachable FailureClass = "unreachable"
	ClassResolve     FailureClass = "resolve"
	ClassSocket      FailureClass = "socket"
	ClassError       FailureClass = "error"
)

// ProbeResult is the outcome of a single check attempt. Created fresh per
// attempt and emitted as one report line; nothing aggregates these across
// cycles.
type ProbeResult struct {
	Check   string
	Target  string
	OK      bool
	Latency time.Duration
	Class   FailureClass
	Detail  string // platform error code/message on failure
	Output  string // raw output of diagnostic commands, if any
}

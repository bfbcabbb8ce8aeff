package probe

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"time"

	"netrepro/internal/domain"
)

// SystemPingCheck shells out to the platform ping utility. The system tool
// keeps working after the process detaches, so it serves as ground truth for
// OS-level reachability of the local host.
type SystemPingCheck struct {
	runner  Runner
	host    string
	timeout time.Duration
}

func NewSystemPingCheck(runner Runner, host string, timeout time.Duration) *SystemPingCheck {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &SystemPingCheck{
		runner:  runner,
		host:    host,
		timeout: timeout,
	}
}

func (c *SystemPingCheck) Name() string { return "system ping" }

func (c *SystemPingCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.Name(),
		Target: c.host,
	}

	// The child enforces its own deadline via arguments; the context is only
	// a backstop against a wedged binary.
	ctx, cancel := context.WithTimeout(ctx, c.timeout+2*time.Second)
	defer cancel()

	start := time.Now()
	out, err := c.runner.Run(ctx, "ping", c.args()...)
	res.Latency = time.Since(start)

	if err != nil {
		res.Class = domain.ClassError
		res.Detail = err.Error()
		res.Output = strings.TrimSpace(string(out))
		return res
	}

	res.OK = true
	return res
}

func (c *SystemPingCheck) args() []string {
	secs := strconv.Itoa(int(c.timeout.Seconds()))
	if runtime.GOOS == "darwin" {
		return []string{"-c", "1", "-t", secs, c.host}
	}
	return []string{"-n", "-c", "1", "-W", secs, c.host}
}

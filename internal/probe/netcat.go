package probe

import (
	"context"
	"strconv"
	"strings"
	"time"

	"netrepro/internal/domain"
)

// NetcatCheck probes the target port with `nc -z`, the second system-tool
// comparison signal next to ping: a TCP connect performed by an external
// process instead of this one.
type NetcatCheck struct {
	runner  Runner
	target  domain.Target
	timeout time.Duration
}

func NewNetcatCheck(runner Runner, target domain.Target, timeout time.Duration) *NetcatCheck {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &NetcatCheck{
		runner:  runner,
		target:  target,
		timeout: timeout,
	}
}

func (c *NetcatCheck) Name() string { return "system nc" }

func (c *NetcatCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.Name(),
		Target: c.target.Addr(),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout+2*time.Second)
	defer cancel()

	secs := strconv.Itoa(int(c.timeout.Seconds()))
	args := []string{"-z", "-w", secs, c.target.Host, strconv.Itoa(c.target.Port)}

	start := time.Now()
	out, err := c.runner.Run(ctx, "nc", args...)
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

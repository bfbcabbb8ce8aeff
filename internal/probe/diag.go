package probe

import (
	"context"
	"runtime"
	"strings"
	"time"

	"netrepro/internal/domain"
)

// DiagCheck runs a read-only system utility and records its output as
// diagnostic context for the cycle. Pass/fail follows the exit code; the
// interesting part is the captured output (route entries, neighbor cache).
type DiagCheck struct {
	name    string
	runner  Runner
	cmd     string
	args    []string
	timeout time.Duration
}

// NewRouteCheck looks up the kernel route toward host.
func NewRouteCheck(runner Runner, host string) *DiagCheck {
	cmd, args := "route", []string{"-n", "get", host}
	if runtime.GOOS == "linux" {
		cmd, args = "ip", []string{"route", "get", host}
	}

	return &DiagCheck{
		name:    "route table",
		runner:  runner,
		cmd:     cmd,
		args:    args,
		timeout: 5 * time.Second,
	}
}

// NewARPCheck dumps the address-resolution entry for host.
func NewARPCheck(runner Runner, host string) *DiagCheck {
	cmd, args := "arp", []string{"-n", host}
	if runtime.GOOS == "linux" {
		cmd, args = "ip", []string{"neigh", "show", host}
	}

	return &DiagCheck{
		name:    "arp table",
		runner:  runner,
		cmd:     cmd,
		args:    args,
		timeout: 5 * time.Second,
	}
}

func (c *DiagCheck) Name() string { return c.name }

func (c *DiagCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.name,
		Target: strings.Join(append([]string{c.cmd}, c.args...), " "),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := c.runner.Run(ctx, c.cmd, c.args...)
	res.Latency = time.Since(start)
	res.Output = strings.TrimSpace(string(out))

	if err != nil {
		res.Class = domain.ClassError
		res.Detail = err.Error()
		return res
	}

	res.OK = true
	return res
}

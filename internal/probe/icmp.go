package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/go-ping/ping"

	"netrepro/internal/domain"
)

// ICMPCheck sends an in-process echo request. Paired with SystemPingCheck it
// separates "ICMP to this host works" from "ICMP from this process works",
// which is exactly the split the anomaly produces.
type ICMPCheck struct {
	host       string
	timeout    time.Duration
	privileged bool
}

func NewICMPCheck(host string, timeout time.Duration, privileged bool) *ICMPCheck {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &ICMPCheck{
		host:       host,
		timeout:    timeout,
		privileged: privileged,
	}
}

func (c *ICMPCheck) Name() string { return "go icmp" }

func (c *ICMPCheck) Run(ctx context.Context) domain.ProbeResult {
	res := domain.ProbeResult{
		Check:  c.Name(),
		Target: c.host,
	}

	pinger, err := ping.NewPinger(c.host)
	if err != nil {
		res.Class = domain.ClassResolve
		res.Detail = err.Error()
		return res
	}

	pinger.Count = 1
	pinger.Timeout = c.timeout
	pinger.SetPrivileged(c.privileged)

	start := time.Now()
	err = pinger.Run()
	res.Latency = time.Since(start)

	if err != nil {
		res.Class, res.Detail = classifyDialError(err)
		return res
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		res.Class = domain.ClassTimeout
		res.Detail = fmt.Sprintf("no echo reply within %s", c.timeout)
		return res
	}

	res.OK = true
	res.Detail = fmt.Sprintf("rtt %s", stats.AvgRtt)
	return res
}

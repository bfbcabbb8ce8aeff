package sampler

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"netrepro/internal/domain"
	"netrepro/internal/term"
)

func TestReporter_Banner(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)

	local := domain.Target{Label: domain.LabelLocal, Host: "10.8.100.100", Port: 6379}
	internet := domain.Target{Label: domain.LabelInternet, Host: "8.8.8.8", Port: 53}
	rep.Banner(local, internet)

	out := buf.String()
	require.Contains(t, out, "PID: ")
	require.Contains(t, out, "PPID: ")
	require.Contains(t, out, "10.8.100.100:6379")
	require.Contains(t, out, "8.8.8.8:53")
}

func TestReporter_CycleHeader(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)

	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	rep.CycleHeader(7, now, term.State{Attached: false, StdinTTY: false})

	out := buf.String()
	require.Contains(t, out, "cycle "+strconv.Itoa(7))
	require.Contains(t, out, now.Format(time.RFC3339))
	require.Contains(t, out, "detached")
}

func TestReporter_SuccessLine(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)

	rep.Result(domain.ProbeResult{
		Check:   "tcp internet",
		Target:  "8.8.8.8:53",
		OK:      true,
		Latency: 12 * time.Millisecond,
	})

	out := buf.String()
	require.Contains(t, out, "✅")
	require.Contains(t, out, "[tcp internet]")
	require.Contains(t, out, "12ms")
}

func TestReporter_FailureLineKeepsErrorDetail(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)

	rep.Result(domain.ProbeResult{
		Check:   "tcp local",
		Target:  "10.8.100.100:6379",
		Latency: 41 * time.Millisecond,
		Class:   domain.ClassUnreachable,
		Detail:  "no route to host (errno 65)",
	})

	out := buf.String()
	require.Contains(t, out, "❌")
	require.Contains(t, out, "unreachable")
	require.Contains(t, out, "no route to host (errno 65)")
}

func TestReporter_DiagnosticOutputIndented(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)

	rep.Result(domain.ProbeResult{
		Check:  "route table",
		Target: "route -n get 10.8.100.100",
		OK:     true,
		Output: "route to: 10.8.100.100\ninterface: en0",
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], "      "), "diagnostic output is indented under the result line")
	require.Contains(t, lines[2], "interface: en0")
}

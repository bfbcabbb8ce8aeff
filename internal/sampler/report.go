package sampler

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"netrepro/internal/domain"
	"netrepro/internal/term"
)

const separator = "-------------------------------------------"

// Reporter renders the stdout report stream: startup banner, per-cycle
// header, one line per check, trailing separator. os.Stdout is unbuffered in
// Go, so every line is visible to a log tail immediately.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Banner(local, internet domain.Target) {
	banner := "==========================================="
	fmt.Fprintln(r.w, banner)
	fmt.Fprintln(r.w, "net-detach connectivity sampler")
	fmt.Fprintln(r.w, banner)
	fmt.Fprintf(r.w, "PID: %d\n", os.Getpid())
	fmt.Fprintf(r.w, "PPID: %d\n", os.Getppid())
	fmt.Fprintf(r.w, "OS: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(r.w, "Local target: %s\n", local.Addr())
	fmt.Fprintf(r.w, "Internet target: %s\n", internet.Addr())
	fmt.Fprintln(r.w, banner)
	fmt.Fprintln(r.w)
}

func (r *Reporter) CycleHeader(cycle uint64, now time.Time, st term.State) {
	fmt.Fprintln(r.w, separator)
	fmt.Fprintf(r.w, "cycle %d at %s\n", cycle, now.Format(time.RFC3339))
	fmt.Fprintf(r.w, "terminal: %s (stdin tty: %v)\n", attachedWord(st.Attached), st.StdinTTY)
	fmt.Fprintln(r.w, separator)
}

// TerminalLost marks the attached-to-detached transition. Emitted at most
// once per process lifetime; the interesting comparison is every check
// before this line against every check after it.
func (r *Reporter) TerminalLost(cycle uint64) {
	fmt.Fprintf(r.w, "!!! controlling terminal lost before cycle %d\n", cycle)
}

func (r *Reporter) Result(res domain.ProbeResult) {
	if res.OK {
		detail := ""
		if res.Detail != "" {
			detail = " " + res.Detail
		}
		fmt.Fprintf(r.w, "  ✅ [%s] %s SUCCEEDED%s (latency: %s)\n", res.Check, res.Target, detail, res.Latency.Round(time.Microsecond))
	} else {
		fmt.Fprintf(r.w, "  ❌ [%s] %s FAILED (%s): %s (latency: %s)\n", res.Check, res.Target, res.Class, res.Detail, res.Latency.Round(time.Microsecond))
	}

	if res.Output != "" {
		for _, line := range strings.Split(res.Output, "\n") {
			fmt.Fprintf(r.w, "      %s\n", line)
		}
	}
}

func (r *Reporter) CycleFooter() {
	fmt.Fprintln(r.w, separator)
	fmt.Fprintln(r.w)
}

func attachedWord(attached bool) string {
	if attached {
		return "attached"
	}
	return "detached"
}

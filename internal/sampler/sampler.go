// Package sampler drives the periodic connectivity battery: run every check
// in a fixed order, report each outcome, watch for the loss of the
// controlling terminal, repeat on a fixed interval until the context ends.
package sampler

import (
	"context"
	"log/slog"
	"time"

	"netrepro/internal/probe"
	"netrepro/internal/term"
)

type Config struct {
	Interval     time.Duration
	GracePeriod  time.Duration
	GraceEnabled bool
}

// Entry pairs a check with its cycle policy. GraceOnFailure marks the checks
// whose failure triggers the post-failure grace sleep; in practice that is
// only the raw connect to the local target.
type Entry struct {
	Check          probe.Check
	GraceOnFailure bool
}

type Sampler struct {
	cfg     Config
	entries []Entry
	rep     *Reporter
	log     *slog.Logger

	// Swapped out in tests.
	termFn func() term.State
	sleep  func(ctx context.Context, d time.Duration)
	now    func() time.Time

	cycle    uint64
	hadTTY   bool
	baseline bool
}

func New(cfg Config, entries []Entry, rep *Reporter, log *slog.Logger) *Sampler {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = 30 * time.Second
	}

	return &Sampler{
		cfg:     cfg,
		entries: entries,
		rep:     rep,
		log:     log,
		termFn:  term.Query,
		sleep:   sleepCtx,
		now:     time.Now,
	}
}

// Run executes one cycle immediately, then one per interval until ctx is
// cancelled. No jitter, no skip-if-overrun: when a cycle (including grace
// sleeps) overruns the interval, the next tick fires as soon as it returns.
func (s *Sampler) Run(ctx context.Context) error {
	s.log.Info("sampler started",
		"interval", s.cfg.Interval,
		"checks", len(s.entries),
		"grace_enabled", s.cfg.GraceEnabled,
	)

	s.RunCycle(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunCycle(ctx)
		case <-ctx.Done():
			s.log.Info("sampler stopped", "cycles", s.cycle)
			return nil
		}
	}
}

// RunCycle executes the full battery once. Every configured check runs
// regardless of prior outcomes; a failed check never aborts the cycle.
func (s *Sampler) RunCycle(ctx context.Context) {
	s.cycle++

	st := s.termFn()
	s.rep.CycleHeader(s.cycle, s.now(), st)

	if s.baseline && s.hadTTY && !st.Attached {
		s.rep.TerminalLost(s.cycle)
		s.log.Warn("controlling terminal lost", "cycle", s.cycle)
	}
	s.hadTTY = st.Attached
	s.baseline = true

	for _, e := range s.entries {
		if ctx.Err() != nil {
			return
		}

		res := e.Check.Run(ctx)
		s.rep.Result(res)

		if !res.OK && e.GraceOnFailure && s.cfg.GraceEnabled && ctx.Err() == nil {
			// Workaround heuristic: after a local-target failure the OS may
			// need a window of continued liveness to surface a permission
			// prompt or process a connection-blocked notification.
			s.log.Info("local target failed, holding before next check",
				"grace", s.cfg.GracePeriod,
				"class", string(res.Class),
			)
			s.sleep(ctx, s.cfg.GracePeriod)
		}
	}

	s.rep.CycleFooter()
}

// Cycle returns the number of completed or in-flight cycles.
func (s *Sampler) Cycle() uint64 { return s.cycle }

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

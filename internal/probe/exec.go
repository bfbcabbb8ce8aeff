package probe

import (
	"context"
	"os/exec"
)

// Runner abstracts child-process execution so checks that shell out to system
// utilities can be unit tested with a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner invokes real commands with combined stdout/stderr capture.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

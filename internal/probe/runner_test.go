package probe

import "context"

// fakeRunner stands in for the system utilities so exec-based checks can be
// tested without ping/nc/route on the path.
type fakeRunner struct {
	out   []byte
	err   error
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

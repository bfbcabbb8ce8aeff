package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"netrepro/internal/domain"
)

func TestRouteCheck_CapturesOutput(t *testing.T) {
	out := `   route to: 10.8.100.100
destination: 10.8.100.0
  interface: en0`
	runner := &fakeRunner{out: []byte(out)}

	check := NewRouteCheck(runner, "10.8.100.100")
	res := check.Run(context.Background())

	require.True(t, res.OK)
	require.Equal(t, "route table", res.Check)
	require.Contains(t, res.Output, "interface: en0")
	require.Len(t, runner.calls, 1)
	require.Contains(t, runner.calls[0], "10.8.100.100")
}

func TestARPCheck_Failure(t *testing.T) {
	runner := &fakeRunner{
		out: []byte("10.8.100.100 -- no entry"),
		err: errors.New("exit status 1"),
	}

	check := NewARPCheck(runner, "10.8.100.100")
	res := check.Run(context.Background())

	require.False(t, res.OK)
	require.Equal(t, domain.ClassError, res.Class)
	// Output is still reported; an empty neighbor entry is itself a finding.
	require.Contains(t, res.Output, "no entry")
}

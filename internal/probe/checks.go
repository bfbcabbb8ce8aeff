// Package probe implements the battery of connectivity checks the sampler
// runs each cycle. Every check is a one-shot attempt that reports a
// ProbeResult and never fails the process; partial failure is expected and is
// the point of the harness.
package probe

import (
	"context"

	"netrepro/internal/domain"
)

// Check is a single connectivity probe. Run blocks until the attempt
// completes or its internal bound expires; it must not panic or return an
// error, only classify the outcome.
type Check interface {
	Name() string
	Run(ctx context.Context) domain.ProbeResult
}

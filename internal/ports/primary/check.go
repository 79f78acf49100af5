// Package primary defines the primary ports (driving interfaces) for the
// application.
package primary

import (
	"context"

	"github.com/example/collcheck/internal/core/plan"
)

// CheckRequest contains the options for one drift-check run.
type CheckRequest struct {
	// AssumeGood treats locales with no baseline record as already
	// consistent: they are baselined but not remediated.
	AssumeGood bool
}

// CheckService defines the primary port for collation drift checks.
type CheckService interface {
	// BuildPlan probes every referenced locale, compares against the
	// persisted baseline and returns the ordered remediation plan.
	// Any resolution or probe failure aborts with no partial plan.
	BuildPlan(ctx context.Context, req CheckRequest) (plan.Plan, error)
}

package secondary

import (
	"context"

	"github.com/example/collcheck/internal/core/plan"
)

// PlanExecutor defines the secondary port for running a remediation plan
// against the database. Implementations must apply the whole plan as a
// single atomic unit: a crash mid-run leaves either the old baseline or the
// new one, never a mix.
type PlanExecutor interface {
	Execute(ctx context.Context, p plan.Plan) error
}

package ports

import (
	"context"

	"mamba-plan/internal/types"
)

type SpecFileReaderPort interface {
	ReadSpecFile(path string) (types.SpecFile, error)
}

// ExplicitPlannerPort builds a plan straight from an "@EXPLICIT" spec list,
// bypassing the solver.
type ExplicitPlannerPort interface {
	PlanExplicit(ctx context.Context, specs []string, prefix string) (types.TransactionPlan, error)
}

package ports

import (
	"context"

	"mamba-plan/internal/types"
)

// SolverPort is the dependency solver boundary. Unsatisfiable or malformed
// requests are reported as errors carrying the solver's diagnostic.
type SolverPort interface {
	Solve(ctx context.Context, request types.SolverRequest) (types.SolverResult, error)
}

package ports

import (
	"context"

	"mamba-plan/internal/types"
)

type TransactionExecutorPort interface {
	Execute(ctx context.Context, plan types.TransactionPlan) error
}

type PlanReaderPort interface {
	ReadPlan(path string) (types.TransactionPlan, error)
}

package ports

import (
	"time"

	"mamba-plan/internal/types"
)

type MetricsPort interface {
	ObserveChannelLoad(channel string, elapsed time.Duration, packages int)
	ObservePlan(plan types.TransactionPlan)
	Flush() error
}

package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/adapters"
	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

// executorChain runs executors in order and stops at the first failure.
type executorChain []ports.TransactionExecutorPort

func (c executorChain) Execute(ctx context.Context, plan types.TransactionPlan) error {
	for _, executor := range c {
		if err := executor.Execute(ctx, plan); err != nil {
			return err
		}
	}
	return nil
}

// defaultExecutor writes the plan file when one is configured, then hands
// the plan to the executor command when one is configured.
func defaultExecutor(cfg Config) (ports.TransactionExecutorPort, error) {
	var chain executorChain
	if path := strings.TrimSpace(cfg.PlanOutput); path != "" {
		chain = append(chain, adapters.NewPlanFileAdapter(path))
	}
	if len(cfg.ExecutorCommand) > 0 {
		chain = append(chain, adapters.NewExecutorCommandAdapter(cfg.ExecutorCommand))
	}
	if len(chain) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no transaction executor configured; pass --executor, --plan-output or --dry-run")
	}
	return chain, nil
}

type noopMetrics struct{}

func (noopMetrics) ObserveChannelLoad(string, time.Duration, int) {}

func (noopMetrics) ObservePlan(types.TransactionPlan) {}

func (noopMetrics) Flush() error { return nil }

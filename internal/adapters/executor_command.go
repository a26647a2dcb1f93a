package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// ExecutorCommandAdapter hands a plan to an external link/unlink engine by
// piping the plan JSON to its stdin.
type ExecutorCommandAdapter struct {
	Command []string
}

func NewExecutorCommandAdapter(command []string) ExecutorCommandAdapter {
	return ExecutorCommandAdapter{Command: command}
}

func (a ExecutorCommandAdapter) Execute(ctx context.Context, plan types.TransactionPlan) error {
	if len(a.Command) == 0 || strings.TrimSpace(a.Command[0]) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("executor command is not configured")
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode transaction plan").
			WithCause(err)
	}
	cmd := exec.CommandContext(ctx, a.Command[0], a.Command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	log.Ctx(ctx).Info().
		Str("prefix", plan.Prefix).
		Int("link", len(plan.Link)).
		Int("unlink", len(plan.Unlink)).
		Msg("executing transaction")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("transaction executor failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.TransactionExecutorPort = ExecutorCommandAdapter{}

package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

// PlanFileAdapter writes transaction plans as JSON documents and reads them
// back.
type PlanFileAdapter struct {
	Path string
}

func NewPlanFileAdapter(path string) PlanFileAdapter {
	return PlanFileAdapter{Path: path}
}

func (a PlanFileAdapter) Execute(ctx context.Context, plan types.TransactionPlan) error {
	if strings.TrimSpace(a.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plan output path is empty")
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode transaction plan").
			WithCause(err)
	}
	if err := writeFileAtomic(a.Path, append(data, '\n')); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("path", a.Path).Msg("transaction plan written")
	return nil
}

func (a PlanFileAdapter) ReadPlan(path string) (types.TransactionPlan, error) {
	if strings.TrimSpace(path) == "" {
		path = a.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TransactionPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("plan file not found: %s", path)).
			WithCause(err)
	}
	var plan types.TransactionPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return types.TransactionPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse plan file %s", path)).
			WithCause(err)
	}
	return plan, nil
}

var _ ports.TransactionExecutorPort = PlanFileAdapter{}
var _ ports.PlanReaderPort = PlanFileAdapter{}

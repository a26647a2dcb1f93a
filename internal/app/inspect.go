package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/core"
)

// Inspect reads a plan document written by an earlier run and summarizes it.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plan path is required")
	}
	if s.PlanReader == nil {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no plan reader configured")
	}
	plan, err := s.PlanReader.ReadPlan(path)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{
		Plan:    plan,
		Summary: core.SummarizePlan(plan),
	}, nil
}

package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

type PlanBuilder struct{}

func NewPlanBuilder() PlanBuilder {
	return PlanBuilder{}
}

// Build reconciles a solver result against the loaded indices and the
// installed records. Unlink items without an installed record are skipped
// with a warning; link items from an unknown channel fail the build.
// Neither indices nor installed records are modified.
func (b PlanBuilder) Build(ctx context.Context, result types.SolverResult, indices []types.ChannelIndex, installed []types.PackageRecord, prefix string, originalSpecs []string) (types.TransactionPlan, error) {
	plan := types.TransactionPlan{
		Prefix:      prefix,
		Unlink:      []types.PackageRecord{},
		Link:        []types.PackageRecord{},
		UpdateSpecs: append([]string{}, originalSpecs...),
		RemoveSpecs: []string{},
	}

	for _, item := range result.Unlink {
		record, ok := findInstalled(installed, item.Filename)
		if !ok {
			log.Ctx(ctx).Warn().
				Str("channel", item.Channel).
				Str("package", item.Filename).
				Msg("no installed package record found, skipping unlink")
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("no installed package record found for %s", item.Filename))
			continue
		}
		plan.Unlink = append(plan.Unlink, record.Clone())
	}

	for _, item := range result.Link {
		index, ok := findChannelIndex(indices, item.Channel)
		if !ok {
			return types.TransactionPlan{}, shared.NewUnknownChannelError(item.Channel, item.Filename)
		}
		record, err := HydrateRecord(ctx, index, item.Filename, item.Metadata)
		if err != nil {
			return types.TransactionPlan{}, err
		}
		plan.Link = append(plan.Link, record)
	}

	log.Ctx(ctx).Debug().
		Int("link", len(plan.Link)).
		Int("unlink", len(plan.Unlink)).
		Int("skipped", len(plan.Warnings)).
		Msg("transaction plan built")
	return plan, nil
}

func findInstalled(installed []types.PackageRecord, filename string) (types.PackageRecord, bool) {
	for _, record := range installed {
		if record.Filename == filename {
			return record, true
		}
	}
	return types.PackageRecord{}, false
}

func findChannelIndex(indices []types.ChannelIndex, channel string) (types.ChannelIndex, bool) {
	for _, index := range indices {
		if index.Channel == channel {
			return index, true
		}
	}
	return types.ChannelIndex{}, false
}

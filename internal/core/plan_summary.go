package core

import (
	"sort"

	"mamba-plan/internal/types"
)

// SummarizePlan pairs unlink and link records by package name and classifies
// each name into a single action.
func SummarizePlan(plan types.TransactionPlan) types.PlanSummary {
	unlinked := map[string]types.PackageRecord{}
	for _, record := range plan.Unlink {
		unlinked[recordKey(record)] = record
	}
	linked := map[string]types.PackageRecord{}
	for _, record := range plan.Link {
		linked[recordKey(record)] = record
	}

	names := make([]string, 0, len(unlinked)+len(linked))
	for name := range unlinked {
		names = append(names, name)
	}
	for name := range linked {
		if _, ok := unlinked[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	summary := types.PlanSummary{Entries: make([]types.PlanSummaryEntry, 0, len(names))}
	for _, name := range names {
		from, hasFrom := unlinked[name]
		to, hasTo := linked[name]
		entry := types.PlanSummaryEntry{Name: name}
		if hasFrom {
			entry.FromVersion = from.Version
			entry.FromBuild = from.Build
		}
		if hasTo {
			entry.ToVersion = to.Version
			entry.ToBuild = to.Build
			entry.Channel = to.Channel
		}
		switch {
		case hasTo && !hasFrom:
			entry.Action = types.PlanActionInstall
		case hasFrom && !hasTo:
			entry.Action = types.PlanActionRemove
			entry.Channel = from.Channel
		default:
			entry.Action = changeAction(from, to)
		}
		summary.Entries = append(summary.Entries, entry)
	}
	return summary
}

func changeAction(from types.PackageRecord, to types.PackageRecord) types.PlanAction {
	switch CompareVersions(to.Version, from.Version) {
	case 1:
		return types.PlanActionUpdate
	case -1:
		return types.PlanActionDowngrade
	}
	switch {
	case to.BuildNumber > from.BuildNumber:
		return types.PlanActionUpdate
	case to.BuildNumber < from.BuildNumber:
		return types.PlanActionDowngrade
	default:
		return types.PlanActionReinstall
	}
}

func recordKey(record types.PackageRecord) string {
	if record.Name != "" {
		return record.Name
	}
	return record.Filename
}

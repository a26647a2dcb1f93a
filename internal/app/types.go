package app

import "mamba-plan/internal/types"

type InstallRequest struct {
	Config   Config
	Packages []string
	Files    []string
}

type InstallResult struct {
	Plan     types.TransactionPlan
	Summary  types.PlanSummary
	Specs    []string
	DryRun   bool
	Executed bool
}

type IndexRequest struct {
	Config Config
}

type IndexedChannel struct {
	Channel   string
	Subdir    string
	Packages  int
	CachePath string
}

type IndexResult struct {
	Channels []IndexedChannel
}

type ListRequest struct {
	Prefix string
}

type ListResult struct {
	Records []types.PackageRecord
}

type InspectRequest struct {
	Path string
}

type InspectResult struct {
	Plan    types.TransactionPlan
	Summary types.PlanSummary
}

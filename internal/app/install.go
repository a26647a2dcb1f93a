package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/core"
	"mamba-plan/internal/policies"
	"mamba-plan/internal/ports"
	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// Install plans a transaction that brings the requested specs into the
// prefix and hands it to the executor unless the run is a dry run or the
// plan is empty. Specs are normalized before any channel is contacted.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	cfg := req.Config
	if err := requirePrefix(cfg.Prefix); err != nil {
		return InstallResult{}, err
	}
	priority, err := NormalizeChannelPriority(cfg.ChannelPriority)
	if err != nil {
		return InstallResult{}, err
	}
	specs, fileChannels, err := s.collectSpecs(req)
	if err != nil {
		return InstallResult{}, err
	}
	if len(specs) == 0 {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no package specs given")
	}

	if core.IsExplicit(specs) {
		return s.installExplicit(ctx, cfg, specs)
	}

	normalized, err := core.NormalizeSpecs(specs)
	if err != nil {
		return InstallResult{}, err
	}
	log.Ctx(ctx).Info().Strs("specs", specs).Msg("looking for packages")

	policy := policies.NewChannelPolicy(cfg.ChannelAlias, cfg.Platform, cfg.Whitelist)
	channels := append(append([]string{}, cfg.Channels...), fileChannels...)
	urls, err := policy.ChannelURLs(channels, cfg.DefaultChannels, !cfg.OverrideChannels)
	if err != nil {
		return InstallResult{}, err
	}

	metrics := s.metrics(cfg)
	aggregator := core.NewChannelAggregator(s.channelLoader(cfg))
	aggregator.Workers = cfg.ChannelWorkers
	aggregator.Timeout = cfg.ChannelTimeout
	aggregator.Metrics = metrics
	indices, err := aggregator.Aggregate(ctx, urls)
	if err != nil {
		return InstallResult{}, err
	}

	installed, snapshot, err := core.BuildInstalledSnapshot(ctx, s.Installed, cfg.Prefix)
	if err != nil {
		return InstallResult{}, err
	}
	if s.SnapshotWriter == nil {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no installed snapshot writer configured")
	}
	snapshotPath, cleanup, err := s.SnapshotWriter.WriteSnapshot(snapshot)
	if err != nil {
		return InstallResult{}, err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("path", snapshotPath).Msg("failed to remove installed snapshot")
		}
	}()

	request := core.BuildSolverRequest(indices, snapshotPath, normalized, priority)
	result, err := core.Solve(ctx, s.solver(cfg), request)
	if err != nil {
		return InstallResult{}, err
	}

	plan, err := core.NewPlanBuilder().Build(ctx, result, indices, installed, cfg.Prefix, specs)
	if err != nil {
		return InstallResult{}, err
	}
	return s.finish(ctx, cfg, specs, plan, metrics)
}

func (s Service) installExplicit(ctx context.Context, cfg Config, specs []string) (InstallResult, error) {
	if s.Explicit == nil {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("explicit installs are not supported")
	}
	plan, err := s.Explicit.PlanExplicit(ctx, specs, cfg.Prefix)
	if err != nil {
		return InstallResult{}, err
	}
	return s.finish(ctx, cfg, specs, plan, s.metrics(cfg))
}

// collectSpecs reads spec files first and appends command line specs, as
// given. Channels declared by spec files are returned separately.
func (s Service) collectSpecs(req InstallRequest) ([]string, []string, error) {
	var specs []string
	var channels []string
	for _, path := range req.Files {
		if s.SpecReader == nil {
			return nil, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("no spec file reader configured")
		}
		file, err := s.SpecReader.ReadSpecFile(path)
		if err != nil {
			return nil, nil, err
		}
		specs = append(specs, file.Specs...)
		channels = append(channels, file.Channels...)
	}
	for _, raw := range req.Packages {
		if spec := shared.TrimSpecQuotes(raw); spec != "" {
			specs = append(specs, spec)
		}
	}
	return specs, channels, nil
}

func (s Service) finish(ctx context.Context, cfg Config, specs []string, plan types.TransactionPlan, metrics ports.MetricsPort) (InstallResult, error) {
	result := InstallResult{
		Plan:    plan,
		Summary: core.SummarizePlan(plan),
		Specs:   specs,
		DryRun:  cfg.DryRun,
	}
	metrics.ObservePlan(plan)
	switch {
	case plan.Empty():
		log.Ctx(ctx).Info().Str("prefix", cfg.Prefix).Msg("all requested packages already installed")
	case cfg.DryRun:
		log.Ctx(ctx).Info().Msg("dry run, transaction not executed")
	default:
		executor, err := s.executor(cfg)
		if err != nil {
			return InstallResult{}, err
		}
		if err := executor.Execute(ctx, plan); err != nil {
			return InstallResult{}, err
		}
		result.Executed = true
	}
	if err := metrics.Flush(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to write metrics")
	}
	return result, nil
}

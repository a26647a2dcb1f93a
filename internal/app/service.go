package app

import (
	"mamba-plan/internal/adapters"
	"mamba-plan/internal/ports"
)

// Service wires the planning pipeline. Fixed collaborators are plain ports;
// collaborators that depend on per-invocation configuration are built from
// the Config by factories.
type Service struct {
	SpecReader     ports.SpecFileReaderPort
	Installed      ports.InstalledEnumeratorPort
	SnapshotWriter ports.SnapshotWriterPort
	Explicit       ports.ExplicitPlannerPort
	PlanReader     ports.PlanReaderPort
	ChannelLoader  func(Config) ports.ChannelLoaderPort
	Solver         func(Config) ports.SolverPort
	Executor       func(Config) (ports.TransactionExecutorPort, error)
	Metrics        func(Config) ports.MetricsPort
}

func NewService() Service {
	return Service{
		SpecReader:     adapters.NewSpecFileAdapter(),
		Installed:      adapters.NewPrefixDataAdapter(),
		SnapshotWriter: adapters.NewSnapshotFileAdapter(""),
		Explicit:       adapters.NewExplicitSpecAdapter(),
		PlanReader:     adapters.NewPlanFileAdapter(""),
		ChannelLoader: func(cfg Config) ports.ChannelLoaderPort {
			return adapters.NewChannelHTTPAdapter(cfg.CacheDir, cfg.CacheTTL, cfg.HTTPTimeout, cfg.HTTPRetries)
		},
		Solver: func(cfg Config) ports.SolverPort {
			return adapters.NewSolverCommandAdapter(cfg.SolverCommand)
		},
		Executor: defaultExecutor,
		Metrics: func(cfg Config) ports.MetricsPort {
			return adapters.NewMetricsTextfileAdapter(cfg.MetricsFile)
		},
	}
}

func (s Service) metrics(cfg Config) ports.MetricsPort {
	if s.Metrics == nil {
		return noopMetrics{}
	}
	if metrics := s.Metrics(cfg); metrics != nil {
		return metrics
	}
	return noopMetrics{}
}

func (s Service) channelLoader(cfg Config) ports.ChannelLoaderPort {
	if s.ChannelLoader == nil {
		return nil
	}
	return s.ChannelLoader(cfg)
}

func (s Service) solver(cfg Config) ports.SolverPort {
	if s.Solver == nil {
		return nil
	}
	return s.Solver(cfg)
}

func (s Service) executor(cfg Config) (ports.TransactionExecutorPort, error) {
	if s.Executor == nil {
		return defaultExecutor(cfg)
	}
	return s.Executor(cfg)
}

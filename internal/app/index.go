package app

import (
	"context"

	"mamba-plan/internal/core"
	"mamba-plan/internal/policies"
)

// Index loads every configured channel, refreshing the on-disk cache, and
// reports what each one advertises.
func (s Service) Index(ctx context.Context, req IndexRequest) (IndexResult, error) {
	cfg := req.Config
	policy := policies.NewChannelPolicy(cfg.ChannelAlias, cfg.Platform, cfg.Whitelist)
	urls, err := policy.ChannelURLs(cfg.Channels, cfg.DefaultChannels, !cfg.OverrideChannels)
	if err != nil {
		return IndexResult{}, err
	}
	metrics := s.metrics(cfg)
	aggregator := core.NewChannelAggregator(s.channelLoader(cfg))
	aggregator.Workers = cfg.ChannelWorkers
	aggregator.Timeout = cfg.ChannelTimeout
	aggregator.Metrics = metrics
	indices, err := aggregator.Aggregate(ctx, urls)
	if err != nil {
		return IndexResult{}, err
	}
	result := IndexResult{Channels: make([]IndexedChannel, 0, len(indices))}
	for _, index := range indices {
		result.Channels = append(result.Channels, IndexedChannel{
			Channel:   index.Channel,
			Subdir:    index.Subdir,
			Packages:  len(index.Packages),
			CachePath: index.CachePath,
		})
	}
	if err := metrics.Flush(); err != nil {
		return IndexResult{}, err
	}
	return result, nil
}

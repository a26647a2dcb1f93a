package core

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// DefaultChannelWorkers bounds concurrent channel index loads.
const DefaultChannelWorkers = 8

type ChannelAggregator struct {
	Loader  ports.ChannelLoaderPort
	Metrics ports.MetricsPort
	Workers int
	Timeout time.Duration
}

func NewChannelAggregator(loader ports.ChannelLoaderPort) ChannelAggregator {
	return ChannelAggregator{
		Loader:  loader,
		Workers: DefaultChannelWorkers,
	}
}

// Aggregate loads one index per URL on a bounded pool. Results are stored at
// the slot of their URL. The first failure cancels the remaining loads and
// the whole call fails with no partial result.
func (a ChannelAggregator) Aggregate(ctx context.Context, urls []types.ChannelURL) ([]types.ChannelIndex, error) {
	if a.Loader == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel aggregator requires a channel loader")
	}
	workers := a.Workers
	if workers <= 0 {
		workers = DefaultChannelWorkers
	}
	indices := make([]types.ChannelIndex, len(urls))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, url := range urls {
		group.Go(func() error {
			index, err := a.load(groupCtx, url)
			if err != nil {
				return err
			}
			indices[i] = index
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("channels", len(indices)).Msg("channel indices loaded")
	return indices, nil
}

func (a ChannelAggregator) load(ctx context.Context, url types.ChannelURL) (types.ChannelIndex, error) {
	redacted := shared.RedactURL(string(url))
	if err := ctx.Err(); err != nil {
		return types.ChannelIndex{}, shared.NewChannelFetchError(redacted, err)
	}
	loadCtx := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	log.Ctx(ctx).Info().Str("channel", redacted).Msg("getting channel index")
	started := time.Now()
	index, err := a.Loader.LoadChannel(loadCtx, url)
	if err != nil {
		return types.ChannelIndex{}, shared.NewChannelFetchError(redacted, err)
	}
	if a.Metrics != nil {
		a.Metrics.ObserveChannelLoad(index.Channel, time.Since(started), len(index.Packages))
	}
	return index, nil
}

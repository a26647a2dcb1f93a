package ports

import (
	"context"

	"mamba-plan/internal/types"
)

// ChannelLoaderPort loads the package index of one channel subdir, fetching
// and caching it as needed. The returned index must carry a CachePath the
// solver can read.
type ChannelLoaderPort interface {
	LoadChannel(ctx context.Context, url types.ChannelURL) (types.ChannelIndex, error)
}

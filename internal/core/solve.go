package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/shared"
	"mamba-plan/internal/types"
)

// BuildSolverRequest pairs every channel identity with its cached index path.
func BuildSolverRequest(indices []types.ChannelIndex, installedPath string, specs []types.NormalizedSpec, priority types.ChannelPriority) types.SolverRequest {
	channels := make([]types.ChannelDescriptor, 0, len(indices))
	for _, index := range indices {
		channels = append(channels, types.ChannelDescriptor{
			Channel:   index.Channel,
			IndexPath: index.CachePath,
		})
	}
	return types.SolverRequest{
		Channels:       channels,
		InstalledPath:  installedPath,
		Specs:          append([]types.NormalizedSpec(nil), specs...),
		StrictPriority: priority == types.ChannelPriorityStrict,
	}
}

// Solve invokes the solver once. Failures are terminal and carry the
// solver diagnostic.
func Solve(ctx context.Context, solver ports.SolverPort, request types.SolverRequest) (types.SolverResult, error) {
	if solver == nil {
		return types.SolverResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no solver configured")
	}
	log.Ctx(ctx).Debug().
		Int("channels", len(request.Channels)).
		Int("specs", len(request.Specs)).
		Bool("strict_channel_priority", request.StrictPriority).
		Msg("invoking solver")
	result, err := solver.Solve(ctx, request)
	if err != nil {
		return types.SolverResult{}, shared.NewResolutionError(err)
	}
	log.Ctx(ctx).Debug().
		Int("link", len(result.Link)).
		Int("unlink", len(result.Unlink)).
		Msg("solver finished")
	return result, nil
}

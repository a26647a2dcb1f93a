package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mamba-plan/internal/app"
)

type indexOptions struct {
	channelOptions
	JSON bool
}

func newIndexCommand() *cobra.Command {
	opts := indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Fetch channel indices into the local cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), cmd, opts)
		},
	}
	addChannelFlags(cmd, &opts.channelOptions)
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the result as JSON")
	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, opts indexOptions) error {
	cfg := app.Config{}
	opts.channelOptions.apply(cmd, &cfg)
	service := newAppService()
	result, err := service.Index(ctx, app.IndexRequest{Config: cfg})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.JSON {
		return writeJSON(out, result.Channels)
	}
	for _, channel := range result.Channels {
		fmt.Fprintf(out, "%s: %d packages (%s)\n", channel.Channel, channel.Packages, channel.CachePath)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mamba-plan/internal/app"
)

type listOptions struct {
	Prefix string
	JSON   bool
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages installed in a prefix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Prefix, "prefix", "p", "", "Target environment prefix")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print records as JSON")
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, opts listOptions) error {
	service := newAppService()
	result, err := service.List(ctx, app.ListRequest{
		Prefix: resolveString(cmd, opts.Prefix, "prefix", "prefix"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.JSON {
		return writeJSON(out, result.Records)
	}
	for _, record := range result.Records {
		fmt.Fprintf(out, "%-30s %-15s %-20s %s\n", record.Name, record.Version, record.Build, record.Channel)
	}
	return nil
}

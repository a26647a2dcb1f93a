package cli

import (
	"github.com/spf13/cobra"

	"mamba-plan/internal/app"
)

type inspectOptions struct {
	PlanPath string
	Format   string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a transaction plan written with --plan-output",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.PlanPath, "plan", "plan.json", "Plan file")
	cmd.Flags().StringVar(&opts.Format, "format", string(outputFormatText), "Output format: text, json or yaml")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	format, err := parseOutputFormat(opts.Format)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		Path: resolveString(cmd, opts.PlanPath, "plan", "plan"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return writeJSON(out, result.Summary.Entries)
	case outputFormatYAML:
		return writeYAML(out, result.Summary.Entries)
	}
	printSummary(out, result.Plan.Prefix, result.Summary)
	for _, warning := range result.Plan.Warnings {
		cmd.PrintErrf("warning: %s\n", warning)
	}
	return nil
}

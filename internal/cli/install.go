package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mamba-plan/internal/app"
	"mamba-plan/internal/types"
)

type installOptions struct {
	channelOptions
	Prefix                string
	Files                 []string
	ChannelPriority       string
	StrictChannelPriority bool
	Solver                string
	Executor              string
	PlanOutput            string
	DryRun                bool
	JSON                  bool
}

func newInstallCommand() *cobra.Command {
	return newTransactionCommand("install", "Install packages into an existing prefix")
}

func newCreateCommand() *cobra.Command {
	return newTransactionCommand("create", "Create a prefix with the given packages")
}

func newUpdateCommand() *cobra.Command {
	return newTransactionCommand("update", "Update packages in a prefix")
}

func newTransactionCommand(use string, short string) *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   use + " [package_spec ...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd, opts, args)
		},
	}

	addChannelFlags(cmd, &opts.channelOptions)
	cmd.Flags().StringVarP(&opts.Prefix, "prefix", "p", "", "Target environment prefix")
	cmd.Flags().StringSliceVarP(&opts.Files, "file", "f", nil, "Read package specs from file (repeatable)")
	cmd.Flags().StringVar(&opts.ChannelPriority, "channel-priority", string(types.ChannelPriorityFlexible), "Channel priority: strict, flexible or disabled")
	cmd.Flags().BoolVar(&opts.StrictChannelPriority, "strict-channel-priority", false, "Shorthand for --channel-priority=strict")
	cmd.Flags().StringVar(&opts.Solver, "solver", "", "Solver command; receives the request on stdin")
	cmd.Flags().StringVar(&opts.Executor, "executor", "", "Transaction executor command; receives the plan on stdin")
	cmd.Flags().StringVar(&opts.PlanOutput, "plan-output", "", "Write the transaction plan to this file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Plan only, do not execute")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the plan as JSON")
	return cmd
}

func installConfig(cmd *cobra.Command, opts installOptions) app.Config {
	cfg := app.Config{
		Prefix:          resolveString(cmd, opts.Prefix, "prefix", "prefix"),
		ChannelPriority: types.ChannelPriority(resolveString(cmd, opts.ChannelPriority, "channel_priority", "channel-priority")),
		SolverCommand:   resolveCommand(cmd, opts.Solver, "solver", "solver"),
		ExecutorCommand: resolveCommand(cmd, opts.Executor, "executor", "executor"),
		PlanOutput:      resolveString(cmd, opts.PlanOutput, "plan_output", "plan-output"),
		DryRun:          resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	}
	if resolveBool(cmd, opts.StrictChannelPriority, "strict_channel_priority", "strict-channel-priority") {
		cfg.ChannelPriority = types.ChannelPriorityStrict
	}
	opts.channelOptions.apply(cmd, &cfg)
	return cfg
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions, args []string) error {
	service := newAppService()
	result, err := service.Install(ctx, app.InstallRequest{
		Config:   installConfig(cmd, opts),
		Packages: args,
		Files:    opts.Files,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.JSON {
		return writeJSON(out, result.Plan)
	}
	printSummary(out, result.Plan.Prefix, result.Summary)
	printWarnings(out, result.Plan.Warnings)
	switch {
	case result.Plan.Empty():
		fmt.Fprintln(out, "All requested packages already installed")
	case result.DryRun:
		fmt.Fprintln(out, "Dry run, transaction not executed")
	case result.Executed:
		fmt.Fprintln(out, "Transaction executed")
	}
	return nil
}

func printSummary(out io.Writer, prefix string, summary types.PlanSummary) {
	fmt.Fprintf(out, "Transaction (prefix: %s)\n", prefix)
	for _, entry := range summary.Entries {
		switch entry.Action {
		case types.PlanActionInstall:
			fmt.Fprintf(out, "  %-9s %s %s-%s  %s\n", entry.Action, entry.Name, entry.ToVersion, entry.ToBuild, entry.Channel)
		case types.PlanActionRemove:
			fmt.Fprintf(out, "  %-9s %s %s-%s\n", entry.Action, entry.Name, entry.FromVersion, entry.FromBuild)
		default:
			fmt.Fprintf(out, "  %-9s %s %s-%s -> %s-%s  %s\n", entry.Action, entry.Name, entry.FromVersion, entry.FromBuild, entry.ToVersion, entry.ToBuild, entry.Channel)
		}
	}
	fmt.Fprintf(out, "Summary: install %d, update %d, downgrade %d, reinstall %d, remove %d\n",
		summary.Count(types.PlanActionInstall),
		summary.Count(types.PlanActionUpdate),
		summary.Count(types.PlanActionDowngrade),
		summary.Count(types.PlanActionReinstall),
		summary.Count(types.PlanActionRemove),
	)
}

func printWarnings(out io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(out, "Warning: %s\n", warning)
	}
}

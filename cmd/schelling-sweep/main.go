package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"schelling/internal/logging"
	"schelling/internal/sims/schelling"
	"schelling/internal/sweep"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	plan := sweep.DefaultPlan()
	var (
		policy   string
		logLevel string
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "schelling-sweep",
		Short: "Sweep Schelling worlds across similarity thresholds",
		Long: `schelling-sweep runs one world per (threshold, seed) pair on a pool
of workers and reports, per threshold, how many runs converged, how long
they took and how segregated the final boards are.

Examples:
  schelling-sweep                                # 0.30..0.80 by 0.10, 4 seeds
  schelling-sweep --from 0.5 --to 0.75 --by 0.05
  schelling-sweep --locations 90000 --policy clamped --json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := schelling.ParseEdgePolicy(policy)
			if err != nil {
				return err
			}
			plan.Base.Policy = p
			logger := logging.NewLogger(logLevel, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			start := time.Now()
			runs, err := sweep.Execute(ctx, plan, logger)
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}
			logger.Info("sweep finished", "runs", len(runs), "elapsed", time.Since(start).Round(time.Millisecond))
			return report(cmd.OutOrStdout(), sweep.Summarize(runs), jsonOut)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&plan.From, "from", plan.From, "first threshold")
	flags.Float64Var(&plan.To, "to", plan.To, "last threshold (inclusive)")
	flags.Float64Var(&plan.By, "by", plan.By, "threshold increment")
	flags.IntVar(&plan.Seeds, "seeds", plan.Seeds, "runs per threshold, seeded 1..n")
	flags.IntVar(&plan.Base.Locations, "locations", plan.Base.Locations, "locations per world")
	flags.Float64Var(&plan.Base.FractionA, "fraction-a", plan.Base.FractionA, "fraction of group A")
	flags.Float64Var(&plan.Base.FractionB, "fraction-b", plan.Base.FractionB, "fraction of group B")
	flags.IntVar(&plan.MaxSteps, "max-steps", plan.MaxSteps, "step limit per run")
	flags.IntVar(&plan.Workers, "workers", plan.Workers, "concurrent worlds")
	flags.StringVar(&policy, "policy", plan.Base.Policy.String(), "edge policy: skip or clamped")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	flags.BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func report(w io.Writer, summaries []sweep.Summary, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	return sweep.WriteTable(w, summaries)
}

// run lets tests execute the command with explicit arguments.
func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(ctx)
}

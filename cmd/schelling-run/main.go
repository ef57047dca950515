package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/integrii/flaggy"

	"schelling/internal/logging"
	"schelling/internal/sims/schelling"
	"schelling/internal/term"
)

// runOptions holds the raw command line. Negative numbers and empty strings
// mean "not given" so the YAML file and environment keep their values.
type runOptions struct {
	configPath  string
	locations   int
	fractionA   float64
	fractionB   float64
	threshold   float64
	policy      string
	seed        int64
	maxSteps    int
	interval    time.Duration
	delay       time.Duration
	interactive bool
	print       bool
	colors      bool
	logLevel    string
}

func defaultOptions() runOptions {
	return runOptions{
		locations: -1,
		fractionA: -1,
		fractionB: -1,
		threshold: -1,
		seed:      -1,
		maxSteps:  -1,
		interval:  150 * time.Millisecond,
		colors:    true,
		logLevel:  "info",
	}
}

func main() {
	opts := parseOptions()
	logger := logging.NewLogger(opts.logLevel, os.Stderr)

	cfg, err := resolveConfig(opts)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	world, err := schelling.NewWithConfig(cfg)
	if err != nil {
		logger.Error("initializing world", "err", err)
		os.Exit(1)
	}
	logger.Info("world ready",
		"side", cfg.Side(),
		"fraction_a", cfg.FractionA,
		"fraction_b", cfg.FractionB,
		"threshold", cfg.Threshold,
		"policy", cfg.Policy,
		"seed", world.Seed(),
	)

	if opts.interactive {
		viewer, err := term.NewViewer(world, opts.interval, logging.Discard())
		if err != nil {
			logger.Error("starting viewer", "err", err)
			os.Exit(1)
		}
		if err := viewer.Run(); err != nil {
			logger.Error("viewer stopped", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := term.NewPrinter(opts.colors)
	if opts.print {
		fmt.Println(printer.Label("Initial", ""))
		_ = printer.Print(os.Stdout, world.Grid())
	}
	if err := run(ctx, world, cfg.MaxSteps, opts.delay, logger); err != nil {
		logger.Error("run failed", "steps", world.Steps(), "err", err)
		os.Exit(1)
	}
	if opts.print {
		fmt.Println(printer.Label("Final", ""))
		_ = printer.Print(os.Stdout, world.Grid())
	}
	summarize(os.Stdout, printer, world)
}

func parseOptions() runOptions {
	opts := defaultOptions()
	flaggy.SetName("schelling-run")
	flaggy.SetDescription("Run a Schelling segregation world in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&opts.configPath, "c", "config", "YAML world configuration")
	flaggy.Int(&opts.locations, "w", "locations", "Number of locations; the board side is floor(sqrt)")
	flaggy.Float64(&opts.fractionA, "a", "fractionA", "Fraction of locations holding group A (red)")
	flaggy.Float64(&opts.fractionB, "b", "fractionB", "Fraction of locations holding group B (blue)")
	flaggy.Float64(&opts.threshold, "t", "threshold", "Minimum share of like neighbours an agent accepts")
	flaggy.String(&opts.policy, "p", "policy", "Edge policy [skip|clamped]")
	flaggy.Int64(&opts.seed, "s", "seed", "Random seed")
	flaggy.Int(&opts.maxSteps, "m", "maxSteps", "Stop after maxSteps steps (0 runs until convergence)")
	flaggy.Duration(&opts.interval, "i", "interval", "Interactive step interval, for example 150ms")
	flaggy.Duration(&opts.delay, "d", "delay", "Pause between headless steps")
	flaggy.Bool(&opts.interactive, "n", "interactive", "Start the interactive terminal viewer")
	flaggy.Bool(&opts.print, "", "print", "Print the board before and after the run")
	flaggy.Bool(&opts.colors, "", "colors", "Colorize printed output")
	flaggy.String(&opts.logLevel, "v", "logLevel", "Log level [trace|debug|info|warn|error]")
	flaggy.Parse()
	return opts
}

// resolveConfig layers defaults, the YAML file, SCHELLING_* variables and
// explicit flags, in that order.
func resolveConfig(opts runOptions) (schelling.Config, error) {
	cfg := schelling.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := schelling.LoadFile(opts.configPath)
		if err != nil {
			return schelling.Config{}, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if opts.locations >= 0 {
		cfg.Locations = opts.locations
	}
	if opts.fractionA >= 0 {
		cfg.FractionA = opts.fractionA
	}
	if opts.fractionB >= 0 {
		cfg.FractionB = opts.fractionB
	}
	if opts.threshold >= 0 {
		cfg.Threshold = opts.threshold
	}
	if opts.policy != "" {
		p, err := schelling.ParseEdgePolicy(opts.policy)
		if err != nil {
			return schelling.Config{}, err
		}
		cfg.Policy = p
	}
	if opts.seed >= 0 {
		cfg.Seed = opts.seed
	}
	if opts.maxSteps >= 0 {
		cfg.MaxSteps = opts.maxSteps
	}
	return cfg, cfg.Validate()
}

// run steps the world until it converges, maxSteps is reached or ctx is
// cancelled. A positive pause sleeps between steps.
func run(ctx context.Context, w *schelling.World, maxSteps int, pause time.Duration, logger *slog.Logger) error {
	for maxSteps == 0 || w.Steps() < maxSteps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Step(); err != nil {
			return err
		}
		report := w.LastReport()
		if w.Converged() {
			logger.Info("converged", "steps", w.Steps())
			return nil
		}
		logger.Debug("step",
			"n", w.Steps(),
			"moved_a", report.RedDissatisfied,
			"moved_b", report.BlueDissatisfied,
			"available", report.Available,
		)
		if pause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pause):
			}
		}
	}
	logger.Info("step limit reached", "steps", w.Steps())
	return nil
}

func summarize(out io.Writer, p *term.Printer, w *schelling.World) {
	st := w.Stats()
	fmt.Fprintln(out, p.Label("Steps", fmt.Sprint(w.Steps())))
	fmt.Fprintln(out, p.Label("Converged", fmt.Sprint(w.Converged())))
	fmt.Fprintln(out, p.Label("Population", fmt.Sprintf("A=%d B=%d empty=%d", st.GroupA, st.GroupB, st.Empty)))
	fmt.Fprintln(out, p.Label("Satisfied", fmt.Sprintf("%.2f%%", st.SatisfiedFraction*100)))
	fmt.Fprintln(out, p.Label("Similarity", fmt.Sprintf("%.4f", st.MeanSimilarity)))
}

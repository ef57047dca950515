// Package sweep runs many independent Schelling worlds across a range of
// thresholds and seeds and aggregates how they settle.
package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"schelling/internal/sims/schelling"
)

// Plan describes a sweep. Every threshold in [From, To] spaced By is run
// once per seed 1..Seeds.
type Plan struct {
	Base     schelling.Config
	From     float64
	To       float64
	By       float64
	Seeds    int
	MaxSteps int
	Workers  int
}

// DefaultPlan sweeps thresholds 0.3 to 0.8 on a 50×50 board.
func DefaultPlan() Plan {
	base := schelling.DefaultConfig()
	base.Locations = 2500
	return Plan{Base: base, From: 0.3, To: 0.8, By: 0.1, Seeds: 4, MaxSteps: 500, Workers: runtime.NumCPU()}
}

// Thresholds expands the plan range. Values are rounded to 4 places so that
// accumulated float error cannot drop the upper bound.
func (p Plan) Thresholds() ([]float64, error) {
	if p.By <= 0 {
		return nil, fmt.Errorf("step %v must be positive: %w", p.By, schelling.ErrInvalidConfiguration)
	}
	if p.From < 0 || p.To > 1 || p.From > p.To {
		return nil, fmt.Errorf("range [%v, %v]: %w", p.From, p.To, schelling.ErrInvalidConfiguration)
	}
	var out []float64
	for i := 0; ; i++ {
		t := math.Round((p.From+float64(i)*p.By)*1e4) / 1e4
		if t > p.To+1e-9 {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

// Run is the outcome of a single world.
type Run struct {
	Threshold float64
	Seed      int64
	Steps     int
	Converged bool
	Stats     schelling.Stats
}

// Summary aggregates all runs that share a threshold.
type Summary struct {
	Threshold      float64
	Runs           int
	Converged      int
	MeanSteps      float64
	MeanSatisfied  float64
	MeanSimilarity float64
}

// Execute runs every job of the plan on a bounded pool of goroutines. The
// first world failure cancels the remaining jobs.
func Execute(ctx context.Context, p Plan, logger *slog.Logger) ([]Run, error) {
	thresholds, err := p.Thresholds()
	if err != nil {
		return nil, err
	}
	if p.Seeds < 1 {
		return nil, fmt.Errorf("seeds %d < 1: %w", p.Seeds, schelling.ErrInvalidConfiguration)
	}
	if p.MaxSteps < 1 {
		return nil, fmt.Errorf("max steps %d < 1: %w", p.MaxSteps, schelling.ErrInvalidConfiguration)
	}
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	runs := make([]Run, len(thresholds)*p.Seeds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for ti, threshold := range thresholds {
		for s := 0; s < p.Seeds; s++ {
			idx := ti*p.Seeds + s
			cfg := p.Base
			cfg.Threshold = threshold
			cfg.Seed = int64(s + 1)
			cfg.MaxSteps = p.MaxSteps
			g.Go(func() error {
				run, err := runOne(ctx, cfg)
				if err != nil {
					return fmt.Errorf("threshold %.4f seed %d: %w", cfg.Threshold, cfg.Seed, err)
				}
				logger.Debug("run finished",
					"threshold", run.Threshold,
					"seed", run.Seed,
					"steps", run.Steps,
					"converged", run.Converged,
				)
				runs[idx] = run
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func runOne(ctx context.Context, cfg schelling.Config) (Run, error) {
	w, err := schelling.NewWithConfig(cfg)
	if err != nil {
		return Run{}, err
	}
	for w.Steps() < cfg.MaxSteps && !w.Converged() {
		if err := ctx.Err(); err != nil {
			return Run{}, err
		}
		if err := w.Step(); err != nil {
			return Run{}, err
		}
	}
	return Run{
		Threshold: cfg.Threshold,
		Seed:      w.Seed(),
		Steps:     w.Steps(),
		Converged: w.Converged(),
		Stats:     w.Stats(),
	}, nil
}

// Summarize groups runs by threshold, sorted ascending.
func Summarize(runs []Run) []Summary {
	byThreshold := map[float64]*Summary{}
	for _, r := range runs {
		s, ok := byThreshold[r.Threshold]
		if !ok {
			s = &Summary{Threshold: r.Threshold}
			byThreshold[r.Threshold] = s
		}
		s.Runs++
		if r.Converged {
			s.Converged++
		}
		s.MeanSteps += float64(r.Steps)
		s.MeanSatisfied += r.Stats.SatisfiedFraction
		s.MeanSimilarity += r.Stats.MeanSimilarity
	}
	out := make([]Summary, 0, len(byThreshold))
	for _, s := range byThreshold {
		n := float64(s.Runs)
		s.MeanSteps /= n
		s.MeanSatisfied /= n
		s.MeanSimilarity /= n
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Threshold < out[j].Threshold })
	return out
}

// WriteTable prints summaries as an aligned table.
func WriteTable(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "THRESHOLD\tRUNS\tCONVERGED\tSTEPS\tSATISFIED\tSIMILARITY")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%.2f\t%d\t%d\t%.1f\t%.1f%%\t%.3f\n",
			s.Threshold, s.Runs, s.Converged, s.MeanSteps, s.MeanSatisfied*100, s.MeanSimilarity)
	}
	return tw.Flush()
}

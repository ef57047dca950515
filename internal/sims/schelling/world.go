package schelling

import (
	"fmt"

	"schelling/internal/core"
	prng "schelling/pkg/core"
)

// World binds a Grid, its engine and a seeded random source into a core.Sim
// that drivers can reset and step.
type World struct {
	cfg    Config
	engine Engine
	grid   *Grid
	rng    *prng.RNG
	seed   int64

	steps     int
	last      StepReport
	converged bool
	err       error
	mask      []float32
}

// New returns a world of the given location count using defaults.
func New(locations int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Locations = locations
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and populates the initial board from cfg.Seed.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	w := &World{cfg: cfg, engine: engine}
	w.Reset(0)
	if w.err != nil {
		return nil, w.err
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "schelling" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size {
	n := w.cfg.Side()
	return core.Size{W: n, H: n}
}

// Cells exposes the live cell buffer (values are Cell states).
func (w *World) Cells() []uint8 {
	if w.grid == nil {
		return nil
	}
	return w.grid.Cells()
}

// Grid exposes the board. Callers must not mutate it while stepping.
func (w *World) Grid() *Grid { return w.grid }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Seed returns the seed used by the last Reset.
func (w *World) Seed() int64 { return w.seed }

// Steps counts generations that moved agents since the last Reset.
func (w *World) Steps() int { return w.steps }

// LastReport returns the report of the most recent Step.
func (w *World) LastReport() StepReport { return w.last }

// Converged reports whether a step found no dissatisfied agents.
func (w *World) Converged() bool { return w.converged }

// Err returns the error that halted the world, if any.
func (w *World) Err() error { return w.err }

// Stats measures the current board.
func (w *World) Stats() Stats {
	return Measure(w.grid, w.engine.Threshold, w.engine.Policy)
}

// Reset repopulates the board. A zero seed reuses the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	w.rng = prng.NewRNG(effective)
	w.steps = 0
	w.last = StepReport{}
	w.converged = false
	w.err = nil

	g, err := Initialize(w.cfg.Locations, w.cfg.FractionA, w.cfg.FractionB, w.rng)
	if err != nil {
		w.err = err
		return
	}
	ComputeSatisfaction(g, w.engine.Threshold, w.engine.Policy).apply(g)
	w.grid = g
}

// Step advances one generation. Once converged or failed it does nothing;
// a failure is returned again on every call.
func (w *World) Step() error {
	if w.err != nil {
		return w.err
	}
	if w.converged || w.grid == nil {
		return nil
	}
	report, err := w.engine.Step(w.grid, w.rng)
	if err != nil {
		w.err = fmt.Errorf("step %d: %w", w.steps+1, err)
		return w.err
	}
	w.last = report
	if report.Converged {
		w.converged = true
		return nil
	}
	w.steps++
	return nil
}

// DissatisfiedMask returns 1 for every agent whose stored flag is
// unsatisfied and 0 elsewhere, in row-major order.
func (w *World) DissatisfiedMask() []float32 {
	if w.grid == nil {
		return nil
	}
	total := w.grid.n * w.grid.n
	if len(w.mask) != total {
		w.mask = make([]float32, total)
	}
	cells := w.grid.Cells()
	for i := range w.mask {
		w.mask[i] = 0
		if Cell(cells[i]).Occupied() && !w.grid.satisfied[i] {
			w.mask[i] = 1
		}
	}
	return w.mask
}

// StatusLines summarises progress for HUDs and terminal viewers.
func (w *World) StatusLines() []string {
	lines := []string{fmt.Sprintf("Step %d", w.steps)}
	switch {
	case w.err != nil:
		lines = append(lines, "Halted: "+w.err.Error())
	case w.converged:
		lines = append(lines, "Converged")
	default:
		lines = append(lines, fmt.Sprintf("Moved A=%d B=%d", w.last.RedDissatisfied, w.last.BlueDissatisfied))
	}
	if w.grid != nil {
		st := w.Stats()
		lines = append(lines,
			fmt.Sprintf("Satisfied %.1f%%", st.SatisfiedFraction*100),
			fmt.Sprintf("Similarity %.3f", st.MeanSimilarity),
		)
	}
	if w.rng != nil {
		lines = append(lines, fmt.Sprintf("Seed %d, %d draws", w.rng.Seed(), w.rng.Draws()))
	}
	return lines
}

func init() {
	core.Register("schelling", func(m map[string]string) core.Sim {
		if w, err := NewWithConfig(FromMap(m)); err == nil {
			return w
		}
		w, err := NewWithConfig(DefaultConfig())
		if err != nil {
			panic(fmt.Sprintf("schelling: default config rejected: %v", err))
		}
		return w
	})
}

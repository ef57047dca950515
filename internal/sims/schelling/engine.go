package schelling

import (
	"fmt"
	"math"
)

// DefaultThreshold is the same-group fraction an agent needs to stay put.
const DefaultThreshold = 0.70

// Source is the random source the engine draws placements from. Both
// *rand.Rand from math/rand/v2 and the seeded pkg/core RNG satisfy it.
type Source interface {
	IntN(n int) int
}

// StepReport describes the grid as it stood before a step.
type StepReport struct {
	RedDissatisfied  int
	BlueDissatisfied int
	// Available is Tally.Available for the pre-step board. It may be negative.
	Available int
	Converged bool
}

// Engine advances a grid one generation at a time. It keeps no state between
// calls; all state lives in the Grid.
type Engine struct {
	Threshold float64
	Policy    EdgePolicy
}

// NewEngine returns an engine after checking the threshold lies in [0, 1].
func NewEngine(threshold float64, policy EdgePolicy) (Engine, error) {
	e := Engine{Threshold: threshold, Policy: policy}
	if err := e.validate(); err != nil {
		return Engine{}, err
	}
	return e, nil
}

func (e Engine) validate() error {
	if math.IsNaN(e.Threshold) || e.Threshold < 0 || e.Threshold > 1 {
		return fmt.Errorf("threshold %v outside [0,1]: %w", e.Threshold, ErrInvalidConfiguration)
	}
	if e.Policy != EdgeSkip && e.Policy != EdgeClamped {
		return fmt.Errorf("edge policy %v: %w", e.Policy, ErrInvalidConfiguration)
	}
	return nil
}

// Step performs one generation: evaluate every agent against the pre-step
// board, vacate the dissatisfied ones, then refill every empty cell by a
// weighted draw over the remaining movers and vacancies. A converged grid is
// returned untouched.
//
// A dissatisfied agent may land back on the cell it just left.
func (e Engine) Step(g *Grid, rng Source) (StepReport, error) {
	if err := e.validate(); err != nil {
		return StepReport{}, err
	}
	if g == nil || rng == nil {
		return StepReport{}, fmt.Errorf("step needs a grid and a random source: %w", ErrInvalidConfiguration)
	}

	sat := ComputeSatisfaction(g, e.Threshold, e.Policy)
	tally := TallyDissatisfied(g, sat)
	report := StepReport{
		RedDissatisfied:  tally.RedDissatisfied,
		BlueDissatisfied: tally.BlueDissatisfied,
		Available:        tally.Available(),
	}
	if tally.Converged() {
		report.Converged = true
		return report, nil
	}

	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			if g.cell(row, col).Occupied() && !sat.At(row, col) {
				g.put(row, col, Empty)
			}
		}
	}

	// Vacated cells plus the original empties are the placement targets, so
	// the vacancy pool is exactly the pre-step empty count.
	remaining := pools{red: tally.RedDissatisfied, blue: tally.BlueDissatisfied, vacant: tally.Empty}
	if err := redistribute(g, remaining, rng); err != nil {
		return report, err
	}

	ComputeSatisfaction(g, e.Threshold, e.Policy).apply(g)
	return report, nil
}

type pools struct {
	red, blue, vacant int
}

func (p pools) total() int { return p.red + p.blue + p.vacant }

// redistribute visits every empty cell in row-major order and draws its new
// occupant from the remaining pools. Every pool must drain exactly.
func redistribute(g *Grid, p pools, rng Source) error {
	if p.red < 0 || p.blue < 0 || p.vacant < 0 {
		return fmt.Errorf("negative pool %+v: %w", p, ErrInternalInconsistency)
	}
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			if g.cell(row, col) != Empty {
				continue
			}
			total := p.total()
			if total <= 0 {
				return fmt.Errorf("pools exhausted at (%d,%d): %w", row, col, ErrInternalInconsistency)
			}
			k := rng.IntN(total)
			switch {
			case k < p.red:
				g.put(row, col, GroupA)
				p.red--
			case k < p.red+p.blue:
				g.put(row, col, GroupB)
				p.blue--
			default:
				p.vacant--
			}
		}
	}
	if p.total() != 0 {
		return fmt.Errorf("%d red, %d blue, %d vacant left unplaced: %w", p.red, p.blue, p.vacant, ErrInternalInconsistency)
	}
	return nil
}

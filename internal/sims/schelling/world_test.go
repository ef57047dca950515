package schelling

import (
	"errors"
	"slices"
	"testing"

	"schelling/internal/core"
)

func smallConfig() Config {
	c := DefaultConfig()
	c.Locations = 400
	c.Seed = 21
	return c
}

func TestWorldRegistered(t *testing.T) {
	factory, ok := core.Sims()["schelling"]
	if !ok {
		t.Fatal("schelling sim not registered")
	}
	sim := factory(map[string]string{"locations": "144"})
	if sim.Name() != "schelling" {
		t.Fatalf("name = %q", sim.Name())
	}
	if sim.Size() != (core.Size{W: 12, H: 12}) {
		t.Fatalf("size = %+v", sim.Size())
	}
	if len(sim.Cells()) != 144 {
		t.Fatalf("cells = %d", len(sim.Cells()))
	}

	// Fractions that cannot fit fall back to defaults.
	fallback := factory(map[string]string{"fraction_a": "0.8", "fraction_b": "0.8"})
	if fallback.Size() != (core.Size{W: 100, H: 100}) {
		t.Fatalf("fallback size = %+v", fallback.Size())
	}

	overfull := Config{Locations: 9, FractionA: 0.5, FractionB: 0.5, Threshold: DefaultThreshold, Seed: 1}
	sim = factory(overfull.Map())
	if sim.Size() != (core.Size{W: 100, H: 100}) {
		t.Fatalf("overfull board should fall back to defaults, size = %+v", sim.Size())
	}
}

func TestFractionChangeThatOverflowsBoardIsRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Locations = 10
	cfg.FractionA = 0.5
	cfg.FractionB = 0.4
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	before := append([]uint8(nil), w.Cells()...)
	// round(10*0.45) = 5, so 10 agents for 9 cells.
	if w.SetFloatParameter("fraction_b", 0.45) {
		t.Fatal("fraction change overflowing the board should be rejected")
	}
	if w.Err() != nil {
		t.Fatalf("world halted: %v", w.Err())
	}
	if w.Config().FractionB != 0.4 {
		t.Fatalf("fraction_b = %v, want unchanged 0.4", w.Config().FractionB)
	}
	if string(before) != string(w.Cells()) {
		t.Fatal("rejected change must not reset the board")
	}
}

func TestWorldResetDeterministic(t *testing.T) {
	w, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	initial := append([]uint8(nil), w.Cells()...)

	for i := 0; i < 3; i++ {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
	}
	w.Reset(0)
	if !slices.Equal(initial, w.Cells()) {
		t.Fatal("Reset with config seed not deterministic")
	}
	if w.Steps() != 0 || w.Converged() {
		t.Fatal("Reset should clear progress")
	}

	w.Reset(777)
	seeded := append([]uint8(nil), w.Cells()...)
	w.Reset(777)
	if !slices.Equal(seeded, w.Cells()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(initial, seeded) {
		t.Fatal("different seeds should produce different boards")
	}
	if w.Seed() != 777 {
		t.Fatalf("seed = %d", w.Seed())
	}
}

func TestWorldStepsUntilConverged(t *testing.T) {
	cfg := smallConfig()
	cfg.Threshold = 0
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	before := append([]uint8(nil), w.Cells()...)
	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	if !w.Converged() || w.Steps() != 0 {
		t.Fatalf("threshold 0 should converge at once: converged=%v steps=%d", w.Converged(), w.Steps())
	}
	if !slices.Equal(before, w.Cells()) {
		t.Fatal("converged step must not move agents")
	}
	if lines := w.StatusLines(); lines[1] != "Converged" {
		t.Fatalf("status = %v", lines)
	}

	// Raising the threshold unsettles the board again.
	if !w.SetFloatParameter("threshold", 0.9) {
		t.Fatal("threshold 0.9 should be accepted")
	}
	if w.Converged() {
		t.Fatal("threshold change should clear convergence")
	}
	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	if w.Steps() != 1 {
		t.Fatalf("steps = %d, want 1", w.Steps())
	}
	if w.LastReport().RedDissatisfied+w.LastReport().BlueDissatisfied == 0 {
		t.Fatal("expected agents to move at threshold 0.9")
	}
}

func TestWorldStepConservesAgents(t *testing.T) {
	w, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	want := w.Grid().Counts()
	for i := 0; i < 10; i++ {
		if err := w.Step(); err != nil {
			t.Fatal(err)
		}
		if got := w.Grid().Counts(); got != want {
			t.Fatalf("step %d: counts %+v, want %+v", i, got, want)
		}
	}
}

func TestWorldParameterSetters(t *testing.T) {
	w, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if w.SetFloatParameter("threshold", 1.5) {
		t.Fatal("threshold above 1 must be rejected")
	}
	if w.SetFloatParameter("fraction_a", 0.8) {
		t.Fatal("fractions summing above 1 must be rejected")
	}
	if !w.SetFloatParameter("fraction_a", 0.1) {
		t.Fatal("fraction_a 0.1 should be accepted")
	}
	if got := w.Grid().Counts().GroupA; got != 40 {
		t.Fatalf("GroupA after reset = %d, want 40", got)
	}
	if w.SetFloatParameter("unknown", 1) {
		t.Fatal("unknown key must be rejected")
	}
	if !w.SetIntParameter("seed", 5) || w.Seed() != 5 {
		t.Fatal("seed should be adjustable")
	}
	if w.SetIntParameter("seed", 0) {
		t.Fatal("seed 0 must be rejected")
	}

	snap := w.Parameters()
	if p, ok := snap.Lookup("fraction_a"); !ok || p.Value != "0.1" {
		t.Fatalf("fraction_a param = %+v", p)
	}
	if p, ok := snap.Lookup("policy"); !ok || p.Value != "skip" {
		t.Fatalf("policy param = %+v", p)
	}
	if len(w.ParameterControls()) == 0 {
		t.Fatal("expected HUD controls")
	}
}

func TestWorldDissatisfiedMask(t *testing.T) {
	cfg := smallConfig()
	cfg.Threshold = 0.9
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Step(); err != nil {
		t.Fatal(err)
	}
	mask := w.DissatisfiedMask()
	g := w.Grid()
	n := g.Side()
	marked := 0
	for i, v := range mask {
		row, col := i/n, i%n
		c, _ := g.At(row, col)
		want := c.Occupied() && !g.Satisfied(row, col)
		if (v == 1) != want {
			t.Fatalf("mask mismatch at (%d,%d)", row, col)
		}
		if v == 1 {
			marked++
		}
	}
	if marked != w.Stats().Dissatisfied {
		t.Fatalf("mask marks %d agents, stats report %d", marked, w.Stats().Dissatisfied)
	}
}

func TestNewWithConfigRejectsInvalid(t *testing.T) {
	cfg := smallConfig()
	cfg.FractionA = 2
	if _, err := NewWithConfig(cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("error = %v", err)
	}
	if w, err := New(49); err != nil || w.Size().W != 7 {
		t.Fatalf("New(49) = %v, %v", w, err)
	}
}

func TestPaletteCoversCells(t *testing.T) {
	w, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Palette()) != int(GroupB)+1 {
		t.Fatalf("palette has %d entries", len(w.Palette()))
	}
}

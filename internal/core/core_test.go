package core

import (
	"slices"
	"testing"
	"time"
)

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(3, 2)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tc := range cases {
		if got := g.InBounds(tc.x, tc.y); got != tc.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}

	g.Set(2, 1, 7)
	if got := g.Cells()[g.Index(2, 1)]; got != 7 {
		t.Fatalf("expected row-major storage at index %d, got %d", g.Index(2, 1), got)
	}

	clone := g.Clone()
	clone.Set(0, 0, 9)
	if g.Get(0, 0) != 0 {
		t.Fatal("Clone must not alias the original buffer")
	}
	if !slices.Equal(clone.Cells()[1:], g.Cells()[1:]) {
		t.Fatal("Clone must copy cell values")
	}

	g.Clear()
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("cell %d not cleared", i)
		}
	}
}

func TestNewByteGridClampsDimensions(t *testing.T) {
	g := NewByteGrid(0, -4)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d (%d cells)", g.W, g.H, len(g.Cells()))
	}
}

func TestFixedStepPacing(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(100 * time.Millisecond)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatal("first poll should step")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not step before the interval elapses")
	}
	clock = clock.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("should step once the interval elapses")
	}

	// A long stall yields at most two catch-up steps.
	clock = clock.Add(time.Second)
	steps := 0
	for i := 0; i < 5; i++ {
		if fs.ShouldStep() {
			steps++
		}
	}
	if steps != 2 {
		t.Fatalf("expected backlog capped at 2 steps, got %d", steps)
	}
}

func TestFixedStepTPSDefaults(t *testing.T) {
	if got := NewFixedStepTPS(0).Interval(); got != time.Second/60 {
		t.Fatalf("expected 60 TPS default, got %v", got)
	}
	if got := NewFixedStepTPS(4).Interval(); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms interval, got %v", got)
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "b", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	if p, ok := snap.Lookup("y"); !ok || p.Value != "2" {
		t.Fatalf("expected y=2, got %+v ok=%v", p, ok)
	}
	if _, ok := snap.Lookup("z"); ok {
		t.Fatal("unexpected hit for missing key")
	}
}

type stubSim struct{}

func (stubSim) Name() string { return "stub" }
func (stubSim) Size() Size { return Size{W: 1, H: 1} }
func (stubSim) Reset(int64) {}
func (stubSim) Step() error { return nil }
func (stubSim) Cells() []uint8 { return []uint8{0} }

func TestRegisterIgnoresInvalidEntries(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) Sim { return stubSim{} })
	Register("nil-factory", nil)
	if len(Sims()) != before {
		t.Fatal("invalid registrations must be ignored")
	}

	Register("zz-stub", func(map[string]string) Sim { return stubSim{} })
	defer delete(sims, "zz-stub")
	names := Names()
	if names[len(names)-1] != "zz-stub" {
		t.Fatalf("expected sorted names ending with zz-stub, got %v", names)
	}
}

package sweep

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"schelling/internal/logging"
	"schelling/internal/sims/schelling"
)

func smallPlan() Plan {
	p := DefaultPlan()
	p.Base.Locations = 144
	p.From = 0
	p.To = 0.5
	p.By = 0.5
	p.Seeds = 2
	p.MaxSteps = 20
	return p
}

func TestThresholds(t *testing.T) {
	got, err := DefaultPlan().Thresholds()
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	if len(got) != len(want) {
		t.Fatalf("Thresholds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Thresholds = %v, want %v", got, want)
		}
	}

	for _, p := range []Plan{
		{From: 0.2, To: 0.4, By: 0},
		{From: 0.6, To: 0.4, By: 0.1},
		{From: 0.2, To: 1.5, By: 0.1},
	} {
		if _, err := p.Thresholds(); !errors.Is(err, schelling.ErrInvalidConfiguration) {
			t.Fatalf("plan %+v: err = %v", p, err)
		}
	}
}

func TestExecuteIsDeterministicAcrossWorkerCounts(t *testing.T) {
	p := smallPlan()
	p.Workers = 1
	serial, err := Execute(context.Background(), p, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	p.Workers = 4
	parallel, err := Execute(context.Background(), p, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if len(serial) != 4 || len(parallel) != 4 {
		t.Fatalf("expected 4 runs, got %d and %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("run %d differs: %+v vs %+v", i, serial[i], parallel[i])
		}
	}
	for _, r := range serial[:2] {
		if r.Threshold != 0 || !r.Converged || r.Steps != 0 {
			t.Fatalf("threshold 0 should converge without moving: %+v", r)
		}
	}
	if serial[0].Seed != 1 || serial[1].Seed != 2 {
		t.Fatalf("seeds = %d, %d", serial[0].Seed, serial[1].Seed)
	}
}

func TestExecuteRejectsBadPlans(t *testing.T) {
	p := smallPlan()
	p.Seeds = 0
	if _, err := Execute(context.Background(), p, logging.Discard()); !errors.Is(err, schelling.ErrInvalidConfiguration) {
		t.Fatalf("err = %v", err)
	}
	p = smallPlan()
	p.Base.FractionA = 0.9
	p.Base.FractionB = 0.9
	if _, err := Execute(context.Background(), p, logging.Discard()); !errors.Is(err, schelling.ErrInvalidConfiguration) {
		t.Fatalf("err = %v", err)
	}
}

func TestExecuteStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := smallPlan()
	p.From = 0.6
	p.To = 0.9
	p.By = 0.1
	if _, err := Execute(ctx, p, logging.Discard()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSummarizeAndTable(t *testing.T) {
	runs := []Run{
		{Threshold: 0.5, Steps: 4, Converged: true, Stats: schelling.Stats{SatisfiedFraction: 1, MeanSimilarity: 0.8}},
		{Threshold: 0.2, Steps: 0, Converged: true, Stats: schelling.Stats{SatisfiedFraction: 1, MeanSimilarity: 0.5}},
		{Threshold: 0.5, Steps: 10, Converged: false, Stats: schelling.Stats{SatisfiedFraction: 0.8, MeanSimilarity: 0.6}},
	}
	got := Summarize(runs)
	if len(got) != 2 || got[0].Threshold != 0.2 || got[1].Threshold != 0.5 {
		t.Fatalf("Summarize order = %+v", got)
	}
	s := got[1]
	if s.Runs != 2 || s.Converged != 1 || s.MeanSteps != 7 || !near(s.MeanSatisfied, 0.9) || !near(s.MeanSimilarity, 0.7) {
		t.Fatalf("summary = %+v", s)
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, got); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "THRESHOLD") || !strings.HasPrefix(lines[1], "0.20") {
		t.Fatalf("table:\n%s", buf.String())
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

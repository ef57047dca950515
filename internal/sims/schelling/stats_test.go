package schelling

import (
	"math"
	"strings"
	"testing"

	prng "schelling/pkg/core"
)

func TestMeasureSegregatedBoard(t *testing.T) {
	st := Measure(segregatedWorld(t), DefaultThreshold, EdgeSkip)
	if st.GroupA != 6 || st.GroupB != 4 || st.Empty != 6 {
		t.Fatalf("population = %+v", st.Population)
	}
	if st.Dissatisfied != 0 || st.SatisfiedFraction != 1 || st.MeanSimilarity != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestMeasureReferenceWorld(t *testing.T) {
	st := Measure(referenceWorld(t), 0.5, EdgeSkip)
	if st.Dissatisfied != 2 {
		t.Fatalf("dissatisfied = %d, want 2", st.Dissatisfied)
	}
	if math.Abs(st.SatisfiedFraction-0.6) > 1e-12 {
		t.Fatalf("satisfied fraction = %v, want 0.6", st.SatisfiedFraction)
	}
	// Ratios: (0,0)=0.5 (0,1)=0.5 (1,1)=0.25 (2,0)=0 (2,2)=1.
	if want := 2.25 / 5; math.Abs(st.MeanSimilarity-want) > 1e-12 {
		t.Fatalf("similarity = %v, want %v", st.MeanSimilarity, want)
	}
	if !strings.Contains(st.String(), "dissatisfied=2") {
		t.Fatalf("String = %q", st.String())
	}
}

func TestMeasureIgnoresIsolatedAgentsInSimilarity(t *testing.T) {
	g, err := GridFromRows([][]Cell{{R, X, X}, {X, X, X}, {X, X, B}})
	if err != nil {
		t.Fatal(err)
	}
	clamped := Measure(g, DefaultThreshold, EdgeClamped)
	if clamped.Dissatisfied != 0 || clamped.MeanSimilarity != 0 {
		t.Fatalf("clamped stats = %+v", clamped)
	}
	skip := Measure(g, DefaultThreshold, EdgeSkip)
	if skip.Dissatisfied != 2 || skip.SatisfiedFraction != 0 {
		t.Fatalf("skip stats = %+v", skip)
	}

	empty, _ := NewGrid(2)
	if st := Measure(empty, DefaultThreshold, EdgeSkip); st.SatisfiedFraction != 1 {
		t.Fatalf("empty board satisfied fraction = %v", st.SatisfiedFraction)
	}
}

func TestMeasureMatchesEngineTally(t *testing.T) {
	for _, policy := range []EdgePolicy{EdgeSkip, EdgeClamped} {
		for _, threshold := range []float64{0, 0.3, DefaultThreshold, 1} {
			g, err := Initialize(225, 0.35, 0.35, prng.NewRNG(int64(threshold*100)+1))
			if err != nil {
				t.Fatal(err)
			}
			tally := TallyDissatisfied(g, ComputeSatisfaction(g, threshold, policy))
			st := Measure(g, threshold, policy)
			if st.Dissatisfied != tally.Dissatisfied() {
				t.Fatalf("%v at %v: Measure counts %d dissatisfied, tally %d", policy, threshold, st.Dissatisfied, tally.Dissatisfied())
			}
		}
	}
}

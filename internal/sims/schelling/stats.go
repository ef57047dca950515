package schelling

import "fmt"

// Stats summarises a board for reporting.
type Stats struct {
	Population
	Dissatisfied int
	// SatisfiedFraction is satisfied agents over all agents, 1 on an empty board.
	SatisfiedFraction float64
	// MeanSimilarity averages the same-group ratio over agents that have at
	// least one occupied neighbor.
	MeanSimilarity float64
}

// Measure computes Stats for g under the given rule.
func Measure(g *Grid, threshold float64, policy EdgePolicy) Stats {
	st := Stats{Population: g.Counts()}
	var simSum float64
	simCount := 0
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			if !g.cell(row, col).Occupied() {
				continue
			}
			ratio, occupied := similarity(g, row, col, policy)
			if occupied > 0 {
				simSum += ratio
				simCount++
			}
			if ratio < threshold {
				st.Dissatisfied++
			}
		}
	}
	st.SatisfiedFraction = 1
	if occ := st.Occupied(); occ > 0 {
		st.SatisfiedFraction = float64(occ-st.Dissatisfied) / float64(occ)
	}
	if simCount > 0 {
		st.MeanSimilarity = simSum / float64(simCount)
	}
	return st
}

func (s Stats) String() string {
	return fmt.Sprintf("A=%d B=%d empty=%d dissatisfied=%d satisfied=%.1f%% similarity=%.3f",
		s.GroupA, s.GroupB, s.Empty, s.Dissatisfied, s.SatisfiedFraction*100, s.MeanSimilarity)
}

package schelling

// Satisfaction holds the verdict for every cell of a grid in row-major order.
// Entries for empty cells are false and carry no meaning.
type Satisfaction struct {
	n         int
	satisfied []bool
}

// At reports whether the agent at (row, col) was satisfied.
func (s Satisfaction) At(row, col int) bool {
	if row < 0 || row >= s.n || col < 0 || col >= s.n {
		return false
	}
	return s.satisfied[row*s.n+col]
}

// Ratio returns the fraction of occupied neighbors of (row, col) that share
// its group. Empty cells report 0. With no occupied neighbors the policy's
// default applies.
func Ratio(g *Grid, row, col int, policy EdgePolicy) float64 {
	if !g.IsValidLocation(row, col) || !g.cell(row, col).Occupied() {
		return 0
	}
	ratio, _ := similarity(g, row, col, policy)
	return ratio
}

// similarity computes the same-group ratio of an occupied cell together with
// its occupied neighbor count.
func similarity(g *Grid, row, col int, policy EdgePolicy) (float64, int) {
	self := g.cell(row, col)
	friends, occupied := 0, 0
	g.eachNeighbor(row, col, policy, func(r, c int) {
		other := g.cell(r, c)
		if !other.Occupied() {
			return
		}
		occupied++
		if other == self {
			friends++
		}
	})
	if occupied == 0 {
		return policy.ZeroNeighborRatio(), 0
	}
	return float64(friends) / float64(occupied), occupied
}

// ComputeSatisfaction evaluates every occupied cell against threshold. It only
// reads the grid, so every verdict reflects the same board state.
func ComputeSatisfaction(g *Grid, threshold float64, policy EdgePolicy) Satisfaction {
	s := Satisfaction{n: g.n, satisfied: make([]bool, g.n*g.n)}
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			if !g.cell(row, col).Occupied() {
				continue
			}
			s.satisfied[row*g.n+col] = Ratio(g, row, col, policy) >= threshold
		}
	}
	return s
}

// apply stores the verdicts as the grid's satisfaction flags.
func (s Satisfaction) apply(g *Grid) {
	copy(g.satisfied, s.satisfied)
}

package schelling

// CellView is one entry of a render snapshot.
type CellView struct {
	Row, Col int
	Cell     Cell
}

// Snapshot copies every cell in row-major order. The result does not alias
// the grid.
func Snapshot(g *Grid) []CellView {
	out := make([]CellView, 0, g.n*g.n)
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			out = append(out, CellView{Row: row, Col: col, Cell: g.cell(row, col)})
		}
	}
	return out
}

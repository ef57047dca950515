package schelling

import (
	"fmt"

	"schelling/internal/core"
)

// Grid is a square board of cells plus the satisfaction flag of every
// occupied cell as of the most recent engine pass.
type Grid struct {
	n         int
	cells     *core.ByteGrid
	satisfied []bool
}

// Population counts cells by state.
type Population struct {
	GroupA int
	GroupB int
	Empty  int
}

// Occupied is the number of cells holding an agent.
func (p Population) Occupied() int { return p.GroupA + p.GroupB }

// NewGrid allocates an empty n×n grid. Newly placed agents start satisfied.
func NewGrid(n int) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("grid side %d: %w", n, ErrInvalidConfiguration)
	}
	return &Grid{
		n:         n,
		cells:     core.NewByteGrid(n, n),
		satisfied: make([]bool, n*n),
	}, nil
}

// GridFromRows builds a grid from a literal square layout.
func GridFromRows(rows [][]Cell) (*Grid, error) {
	g, err := NewGrid(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.n {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(row), g.n, ErrInvalidConfiguration)
		}
		for c, cell := range row {
			if cell > GroupB {
				return nil, fmt.Errorf("cell (%d,%d) has unknown state %d: %w", r, c, cell, ErrInvalidConfiguration)
			}
			g.put(r, c, cell)
		}
	}
	return g, nil
}

// Side returns N.
func (g *Grid) Side() int { return g.n }

// IsValidLocation reports whether 0 <= row < N and 0 <= col < N.
func (g *Grid) IsValidLocation(row, col int) bool {
	return g.cells.InBounds(col, row)
}

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) (Cell, error) {
	if !g.IsValidLocation(row, col) {
		return Empty, fmt.Errorf("at (%d,%d) on %dx%d grid: %w", row, col, g.n, g.n, ErrOutOfBounds)
	}
	return g.cell(row, col), nil
}

// SetAt overwrites the cell at (row, col).
func (g *Grid) SetAt(row, col int, c Cell) error {
	if !g.IsValidLocation(row, col) {
		return fmt.Errorf("set (%d,%d) on %dx%d grid: %w", row, col, g.n, g.n, ErrOutOfBounds)
	}
	g.put(row, col, c)
	return nil
}

// Satisfied reports the stored satisfaction flag. Empty and out-of-range
// cells report false.
func (g *Grid) Satisfied(row, col int) bool {
	if !g.IsValidLocation(row, col) {
		return false
	}
	idx := g.cells.Index(col, row)
	return g.cell(row, col).Occupied() && g.satisfied[idx]
}

// Neighbors lists the in-bounds Moore neighbors of (row, col), excluding the
// cell itself, in row-major order.
func (g *Grid) Neighbors(row, col int, policy EdgePolicy) []Coord {
	out := make([]Coord, 0, 8)
	g.eachNeighbor(row, col, policy, func(r, c int) {
		out = append(out, Coord{Row: r, Col: c})
	})
	return out
}

func (g *Grid) eachNeighbor(row, col int, policy EdgePolicy, fn func(r, c int)) {
	switch policy {
	case EdgeClamped:
		r0, r1 := max(0, row-1), min(g.n-1, row+1)
		c0, c1 := max(0, col-1), min(g.n-1, col+1)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				if r == row && c == col {
					continue
				}
				fn(r, c)
			}
		}
	default:
		for r := row - 1; r <= row+1; r++ {
			for c := col - 1; c <= col+1; c++ {
				if !g.IsValidLocation(r, c) || (r == row && c == col) {
					continue
				}
				fn(r, c)
			}
		}
	}
}

// Counts tallies cells by state.
func (g *Grid) Counts() Population {
	var p Population
	for _, v := range g.cells.Cells() {
		switch Cell(v) {
		case GroupA:
			p.GroupA++
		case GroupB:
			p.GroupB++
		default:
			p.Empty++
		}
	}
	return p
}

// Cells exposes the row-major cell buffer for rendering. Callers must treat it
// as read-only.
func (g *Grid) Cells() []uint8 { return g.cells.Cells() }

// Clone returns an independent copy of the grid and its flags.
func (g *Grid) Clone() *Grid {
	return &Grid{
		n:         g.n,
		cells:     g.cells.Clone(),
		satisfied: append([]bool(nil), g.satisfied...),
	}
}

// Equal reports whether both grids hold the same cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.n != o.n {
		return false
	}
	a, b := g.cells.Cells(), o.cells.Cells()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the grid one row per line using Cell.String.
func (g *Grid) String() string {
	buf := make([]byte, 0, g.n*(g.n+1))
	for r := 0; r < g.n; r++ {
		for c := 0; c < g.n; c++ {
			buf = append(buf, g.cell(r, c).String()...)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (g *Grid) cell(row, col int) Cell { return Cell(g.cells.Get(col, row)) }

func (g *Grid) put(row, col int, c Cell) {
	g.cells.Set(col, row, uint8(c))
	g.satisfied[g.cells.Index(col, row)] = c.Occupied()
}

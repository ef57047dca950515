package schelling

// Cell is the state of one grid location.
type Cell uint8

const (
	Empty Cell = iota
	GroupA
	GroupB
)

// Occupied reports whether an agent lives in the cell.
func (c Cell) Occupied() bool { return c == GroupA || c == GroupB }

// String renders the cell the way the reference test worlds are written.
func (c Cell) String() string {
	switch c {
	case GroupA:
		return "R"
	case GroupB:
		return "B"
	default:
		return "_"
	}
}

// Coord addresses a grid location.
type Coord struct {
	Row, Col int
}

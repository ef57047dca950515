package schelling

import "fmt"

// Tally summarises a satisfaction pass.
type Tally struct {
	RedDissatisfied  int
	BlueDissatisfied int
	Empty            int
}

// Dissatisfied is the number of agents that will relocate.
func (t Tally) Dissatisfied() int { return t.RedDissatisfied + t.BlueDissatisfied }

// Converged reports whether no agent is dissatisfied.
func (t Tally) Converged() bool { return t.Dissatisfied() == 0 }

// Available is empty minus dissatisfied, the third figure of the classic
// per-step printout. It is informational; redistribution does not use it.
func (t Tally) Available() int { return t.Empty - t.Dissatisfied() }

func (t Tally) String() string {
	return fmt.Sprintf("[%d, %d, %d]", t.RedDissatisfied, t.BlueDissatisfied, t.Available())
}

// TallyDissatisfied counts dissatisfied agents per group and empty cells in a
// single scan.
func TallyDissatisfied(g *Grid, s Satisfaction) Tally {
	var t Tally
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			switch g.cell(row, col) {
			case Empty:
				t.Empty++
			case GroupA:
				if !s.At(row, col) {
					t.RedDissatisfied++
				}
			case GroupB:
				if !s.At(row, col) {
					t.BlueDissatisfied++
				}
			}
		}
	}
	return t
}

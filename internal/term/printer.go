// Package term renders boards to terminals: a colored printer for headless
// runs and a gocui viewer for interactive ones.
package term

import (
	"bufio"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"schelling/internal/sims/schelling"
)

const (
	agentGlyph = "█"
	emptyGlyph = "·"
)

// Printer writes boards as one character per cell.
type Printer struct {
	au aurora.Aurora
}

// NewPrinter returns a printer; colors toggles ANSI escapes.
func NewPrinter(colors bool) *Printer {
	return &Printer{au: aurora.NewAurora(colors)}
}

// Glyph renders a single cell.
func (p *Printer) Glyph(c schelling.Cell) string {
	switch c {
	case schelling.GroupA:
		return p.au.Red(agentGlyph).String()
	case schelling.GroupB:
		return p.au.Blue(agentGlyph).String()
	default:
		return p.au.Gray(8, emptyGlyph).String()
	}
}

// Lines renders at most maxW columns and maxH rows of g. Non-positive limits
// mean unlimited. When rows are cut the last line carries a notice instead.
func (p *Printer) Lines(g *schelling.Grid, maxW, maxH int) []string {
	n := g.Side()
	rows, cols := n, n
	if maxW > 0 && cols > maxW {
		cols = maxW
	}
	cropped := maxH > 0 && rows > maxH
	if cropped {
		rows = maxH
	}
	cells := g.Cells()
	lines := make([]string, 0, rows)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		if cropped && r == rows-1 {
			lines = append(lines, p.au.Red("board larger than view").String())
			break
		}
		b.Reset()
		for c := 0; c < cols; c++ {
			b.WriteString(p.Glyph(schelling.Cell(cells[r*n+c])))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Print writes the whole board followed by a newline per row.
func (p *Printer) Print(w io.Writer, g *schelling.Grid) error {
	bw := bufio.NewWriter(w)
	for _, line := range p.Lines(g, 0, 0) {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Label formats a "name: value" pair with a colored name.
func (p *Printer) Label(name, value string) string {
	return " " + p.au.Green(name).String() + ": " + value
}

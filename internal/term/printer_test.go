package term

import (
	"bytes"
	"strings"
	"testing"

	"schelling/internal/sims/schelling"
)

func board(t *testing.T) *schelling.Grid {
	t.Helper()
	g, err := schelling.GridFromRows([][]schelling.Cell{
		{schelling.GroupA, schelling.GroupA, schelling.Empty},
		{schelling.Empty, schelling.GroupB, schelling.Empty},
		{schelling.GroupA, schelling.Empty, schelling.GroupB},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestPrinterPlain(t *testing.T) {
	p := NewPrinter(false)
	var buf bytes.Buffer
	if err := p.Print(&buf, board(t)); err != nil {
		t.Fatal(err)
	}
	want := "██·\n·█·\n█·█\n"
	if buf.String() != want {
		t.Fatalf("Print = %q, want %q", buf.String(), want)
	}
}

func TestPrinterColorsDistinguishGroups(t *testing.T) {
	p := NewPrinter(true)
	red := p.Glyph(schelling.GroupA)
	blue := p.Glyph(schelling.GroupB)
	if red == blue {
		t.Fatal("groups must render differently with colors on")
	}
	if !strings.Contains(red, "\x1b[") {
		t.Fatalf("expected ANSI escape in %q", red)
	}
}

func TestPrinterLinesCrop(t *testing.T) {
	p := NewPrinter(false)
	lines := p.Lines(board(t), 2, 2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "██" {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "larger than view") {
		t.Fatalf("expected crop notice, got %q", lines[1])
	}
	if got := p.Label("Step", "3"); got != " Step: 3" {
		t.Fatalf("Label = %q", got)
	}
}

package term

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"

	"schelling/internal/core"
	"schelling/internal/sims/schelling"
)

// Sim is what the viewer needs from a simulation.
type Sim interface {
	Grid() *schelling.Grid
	Step() error
	Reset(seed int64)
	Seed() int64
	Converged() bool
	StatusLines() []string
	Parameters() core.ParameterSnapshot
}

type keyBinding struct {
	key     interface{}
	name    string
	descr   string
	handler func() error
}

const (
	viewHeader = "header"
	viewParams = "parameters"
	viewStatus = "status"
	viewBoard  = "board"
	viewHelp   = "help"

	leftColumnWidth = 30
	minHeight       = 16
	pollInterval    = 5 * time.Millisecond
)

// Viewer is an interactive terminal driver. All simulation access happens on
// the gocui main loop goroutine.
type Viewer struct {
	sim     Sim
	g       *gocui.Gui
	keys    []keyBinding
	printer *Printer
	pacer   *core.FixedStep
	log     *slog.Logger

	running atomic.Bool
	done    chan struct{}
	lastErr error
}

// NewViewer creates the gocui session. interval paces the run mode.
func NewViewer(sim Sim, interval time.Duration, logger *slog.Logger) (*Viewer, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("starting terminal ui: %w", err)
	}
	v := &Viewer{
		sim:     sim,
		g:       g,
		printer: NewPrinter(true),
		pacer:   core.NewFixedStep(interval),
		log:     logger,
		done:    make(chan struct{}),
	}
	v.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", v.cmdQuit},
		{'q', "Q", "Exit", v.cmdQuit},
		{'n', "N", "Step", v.cmdStep},
		{'r', "R", "Run", v.cmdRun},
		{'s', "S", "Stop", v.cmdStop},
		{'w', "W", "Reseed", v.cmdReseed},
	}
	g.SetManagerFunc(v.layout)
	for _, kb := range v.keys {
		h := kb.handler
		if err := g.SetKeybinding("", kb.key, gocui.ModNone, func(*gocui.Gui, *gocui.View) error { return h() }); err != nil {
			g.Close()
			return nil, fmt.Errorf("binding %s: %w", kb.name, err)
		}
	}
	return v, nil
}

// Run blocks until the user quits. It returns the simulation error that
// halted the run, if any.
func (v *Viewer) Run() error {
	defer v.g.Close()
	go v.ticker()
	err := v.g.MainLoop()
	close(v.done)
	if err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return v.lastErr
}

func (v *Viewer) ticker() {
	for {
		select {
		case <-v.done:
			return
		case <-time.After(pollInterval):
		}
		if !v.running.Load() || !v.pacer.ShouldStep() {
			continue
		}
		v.g.Update(func(*gocui.Gui) error {
			if !v.running.Load() {
				return nil
			}
			v.advance()
			return nil
		})
	}
}

func (v *Viewer) advance() {
	if err := v.sim.Step(); err != nil {
		v.lastErr = err
		v.running.Store(false)
		v.log.Error("simulation halted", "err", err)
	} else if v.sim.Converged() {
		v.running.Store(false)
		v.log.Info("converged", "seed", v.sim.Seed())
	}
	v.refresh()
}

func (v *Viewer) refresh() {
	v.renderBoard()
	v.renderParameters()
	v.renderStatus()
}

func (v *Viewer) renderBoard() {
	view, err := v.g.View(viewBoard)
	if err != nil {
		return
	}
	view.Clear()
	w, h := view.Size()
	fmt.Fprint(view, strings.Join(v.printer.Lines(v.sim.Grid(), w, h), "\n"))
}

func (v *Viewer) renderParameters() {
	view, err := v.g.View(viewParams)
	if err != nil {
		return
	}
	view.Clear()
	for _, group := range v.sim.Parameters().Groups {
		for _, p := range group.Params {
			fmt.Fprintln(view, v.printer.Label(p.Label, p.Value))
		}
	}
}

func (v *Viewer) renderStatus() {
	view, err := v.g.View(viewStatus)
	if err != nil {
		return
	}
	view.Clear()
	mode := "waiting"
	if v.running.Load() {
		mode = "running"
	}
	fmt.Fprintln(view, v.printer.Label("Mode", mode))
	for _, line := range v.sim.StatusLines() {
		fmt.Fprintln(view, " "+line)
	}
}

func (v *Viewer) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minHeight || maxX < leftColumnWidth+10 {
		if hv, err := g.SetView(viewHeader, -1, -1, maxX, maxY); err != nil && !errors.Is(err, gocui.ErrUnknownView) {
			return err
		} else if hv != nil {
			hv.Clear()
			fmt.Fprintln(hv, "Terminal too small")
		}
		for _, name := range []string{viewParams, viewStatus, viewBoard, viewHelp} {
			_ = g.DeleteView(name)
		}
		return nil
	}

	if hv, err := g.SetView(viewHeader, -1, -1, maxX, 1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		hv.Frame = false
		hv.BgColor = gocui.ColorCyan
		hv.FgColor = gocui.ColorBlack
	}
	if hv, err := g.View(viewHeader); err == nil {
		hv.Clear()
		title := "Schelling segregation"
		fmt.Fprint(hv, strings.Repeat(" ", max(0, (maxX-len(title))/2))+title)
	}

	mid := 2 + (maxY-5-2)/2
	created := false
	for _, pane := range []struct {
		name, title    string
		x0, y0, x1, y1 int
	}{
		{viewParams, "Parameters", 0, 2, leftColumnWidth, mid},
		{viewStatus, "Status", 0, mid + 1, leftColumnWidth, maxY - 4},
		{viewBoard, "Board", leftColumnWidth + 1, 2, maxX - 1, maxY - 4},
	} {
		view, err := g.SetView(pane.name, pane.x0, pane.y0, pane.x1, pane.y1)
		if err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			view.Title = pane.title
			view.Frame = true
			created = true
		}
	}

	if hv, err := g.SetView(viewHelp, -1, maxY-3, maxX, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		hv.Frame = false
		parts := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			parts = append(parts, v.printer.au.Green(k.name).String()+": "+k.descr)
		}
		fmt.Fprintln(hv, "KEYS: "+strings.Join(parts, ", "))
	}

	if created {
		v.refresh()
	} else {
		v.renderBoard()
	}
	return nil
}

func (v *Viewer) cmdQuit() error { return gocui.ErrQuit }

func (v *Viewer) cmdStep() error {
	v.running.Store(false)
	v.advance()
	return nil
}

func (v *Viewer) cmdRun() error {
	if v.lastErr != nil || v.sim.Converged() {
		return nil
	}
	v.running.Store(true)
	v.renderStatus()
	return nil
}

func (v *Viewer) cmdStop() error {
	v.running.Store(false)
	v.renderStatus()
	return nil
}

func (v *Viewer) cmdReseed() error {
	v.running.Store(false)
	v.lastErr = nil
	v.sim.Reset(time.Now().UnixNano())
	v.refresh()
	return nil
}

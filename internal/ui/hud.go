//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"schelling/internal/core"
)

// HUD renders the parameter panel and run status to the right of the board.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	status     []string

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD builds the panel for sim. A zero width disables it.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.title = buildTitle(sim)
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Update pulls the world's parameters and status lines for this frame and
// applies any +/- click. panelOffsetX is the board width in screen pixels.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if provider, ok := h.sim.(core.StatusProvider); ok {
		h.status = provider.StatusLines()
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel to the right of the board. The panel is at least as
// tall as the scaled board.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := max(h.sim.Size().H*scale, minPanelHeight)
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawStatus()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " Controls"
}

// drawStatus lists the world's status lines below the control rows.
func (h *HUD) drawStatus() {
	if h.panel == nil || len(h.status) == 0 {
		return
	}
	face := basicfont.Face7x13
	top := controlsTop + len(h.controls)*lineHeight + statusGap
	text.Draw(h.panel, "Status", face, panelPadding, top, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i, line := range h.status {
		y := top + (i+1)*statusLineHeight
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 180, G: 200, B: 180, A: 255})
	}
}

// refreshControlValues copies the current snapshot into the control rows.
// Controls whose key is missing from the snapshot show "--" and stay inert.
func (h *HUD) refreshControlValues() {
	if len(h.controls) == 0 {
		return
	}
	byKey := map[string]string{}
	for _, group := range h.snapshot.Groups {
		for _, param := range group.Params {
			byKey[param.Key] = param.Value
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		raw, ok := byKey[state.control.Key]
		if ok {
			state.current, ok = parseValue(state.control, raw)
		}
		state.hasValue = ok
		state.value = "--"
		if ok {
			state.value = formatValue(state.control, state.current)
		}
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if image.Pt(px, my).In(state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if image.Pt(px, my).In(state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

// nextValue is stepValue gated on the simulation accepting that kind of
// parameter.
func (h *HUD) nextValue(state *hudControlState, direction int) (float64, bool) {
	if state == nil || !state.hasValue {
		return 0, false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
	}
	return stepValue(state.control, state.current, direction)
}

// applyAdjustment pushes a +/- click into the world. A rejected value (for
// example a population that no longer fits the board) leaves the row as is.
func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	target, ok := h.nextValue(state, direction)
	if !ok {
		return
	}
	accepted := false
	switch state.control.Type {
	case core.ParamTypeInt:
		target = math.Round(target)
		accepted = h.intSetter.SetIntParameter(state.control.Key, int(target))
	case core.ParamTypeFloat:
		accepted = h.floatSetter.SetFloatParameter(state.control.Key, target)
	}
	if accepted {
		state.current = target
		state.value = formatValue(state.control, target)
	}
}

// drawControls draws one row per control with its value right-aligned
// against the -/+ buttons.
func (h *HUD) drawControls() {
	if h.panel == nil {
		return
	}
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(h.controls) == 0 {
		infoY := headerY + infoSpacing
		text.Draw(h.panel, "Nothing to adjust", face, panelPadding, infoY, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		top := state.top
		labelY := top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		value := state.value
		bounds := text.BoundString(face, value)
		valueWidth := bounds.Dx()
		valueX := state.minusRect.Min.X - buttonGap - valueWidth
		valueY := top + labelBaseline
		text.Draw(h.panel, value, face, valueX, valueY, valueColor)

		_, minusEnabled := h.nextValue(state, -1)
		_, plusEnabled := h.nextValue(state, 1)
		h.drawButton(state.minusRect, "-", minusEnabled)
		h.drawButton(state.plusRect, "+", plusEnabled)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	textWidth := bounds.Dx()
	textHeight := bounds.Dy()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	y := rect.Min.Y + (rect.Dy()-textHeight)/2 + textHeight
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		h.controls[i].top, h.controls[i].minusRect, h.controls[i].plusRect = controlRow(h.width, i)
	}
}

// hudControlState is one adjustable row: threshold, a group fraction or
// the seed.
type hudControlState struct {
	control  core.ParameterControl
	value    string
	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

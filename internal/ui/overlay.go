//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"schelling/internal/render"
)

// MaskProvider exposes a per-cell intensity layer in row-major order.
type MaskProvider interface {
	DissatisfiedMask() []float32
}

var dissatisfiedTint = color.RGBA{R: 255, G: 220, B: 40, A: 255}

// Overlay highlights dissatisfied agents on top of the board. Key 1 toggles
// it.
type Overlay struct {
	src     MaskProvider
	painter *render.GridPainter
	visible bool
}

// NewOverlay constructs an overlay for a w×h board. src may be nil, in which
// case the overlay never draws.
func NewOverlay(src MaskProvider, w, h int) *Overlay {
	o := &Overlay{src: src}
	if src != nil && w > 0 && h > 0 {
		o.painter = render.NewGridPainter(w, h)
	}
	return o
}

// Visible reports whether the overlay is currently shown.
func (o *Overlay) Visible() bool { return o != nil && o.visible }

// Update handles the toggle key.
func (o *Overlay) Update() {
	if o == nil || o.painter == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		o.visible = !o.visible
	}
}

// Draw paints the mask scaled onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, scale int) {
	if !o.Visible() || o.painter == nil {
		return
	}
	o.painter.BlitMask(screen, o.src.DissatisfiedMask(), dissatisfiedTint, scale)
}

//go:build !ebiten

package ui

// MaskProvider exposes a per-cell intensity layer in row-major order.
type MaskProvider interface {
	DissatisfiedMask() []float32
}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(MaskProvider, int, int) *Overlay { return &Overlay{} }

// Visible always reports false in headless builds.
func (o *Overlay) Visible() bool { return false }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, int) {}

package schelling

import "image/color"

var schellingPalette = []color.RGBA{
	Empty:  {R: 24, G: 24, B: 28, A: 255},
	GroupA: {R: 214, G: 58, B: 52, A: 255},
	GroupB: {R: 52, G: 104, B: 214, A: 255},
}

// Palette maps Cell values to render colors.
func (w *World) Palette() []color.RGBA {
	return schellingPalette
}

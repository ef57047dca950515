package ui

import (
	"image"
	"math"
	"strconv"

	"schelling/internal/core"
)

// Panel geometry in unscaled pixels.
const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14

	statusGap        = 20
	statusLineHeight = 16
	minPanelHeight   = 320

	defaultFloatStep = 0.05
)

// stepValue moves current one control step in direction and clamps the
// result to the control range. ok is false when the value would not change,
// so a pinned control greys out its button.
func stepValue(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	switch ctrl.Type {
	case core.ParamTypeInt:
		step = math.Max(math.Round(step), 1)
	case core.ParamTypeFloat:
		if step <= 0 {
			step = defaultFloatStep
		}
	default:
		return current, false
	}
	target := current + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// parseValue reads a snapshot value for the control's type.
func parseValue(ctrl core.ParameterControl, raw string) (float64, bool) {
	switch ctrl.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(raw)
		return float64(v), err == nil
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		return v, err == nil
	}
	return 0, false
}

// formatValue prints a value with as many decimals as the control step needs.
func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// controlRow places the i-th control row inside a panel of the given width
// and returns its top edge and the -/+ button rectangles.
func controlRow(width, i int) (top int, minus, plus image.Rectangle) {
	top = controlsTop + i*lineHeight
	y := top + (lineHeight-buttonSize)/2
	plus = image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
	minus = image.Rect(plus.Min.X-buttonGap-buttonSize, y, plus.Min.X-buttonGap, y+buttonSize)
	return top, minus, plus
}

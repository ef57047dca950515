package schelling

import (
	"strconv"

	"schelling/internal/core"
)

// Parameters reports the current configuration grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	side := w.cfg.Side()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("locations", "Locations", w.cfg.Locations),
				intParam("side", "Side", side),
				int64Param("seed", "Seed", w.seed),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				floatParam("fraction_a", "Group A fraction", w.cfg.FractionA),
				floatParam("fraction_b", "Group B fraction", w.cfg.FractionB),
			},
		},
		{
			Name: "Behaviour",
			Params: []core.Parameter{
				floatParam("threshold", "Threshold", w.engine.Threshold),
				{Key: "policy", Label: "Edge policy", Type: core.ParamTypeString, Value: w.engine.Policy.String()},
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "threshold", Label: "Threshold", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "fraction_a", Label: "Group A", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "fraction_b", Label: "Group B", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
	}
}

// SetFloatParameter updates threshold live, or a population fraction followed
// by a reset with the current seed. Values that would invalidate the config
// are rejected.
func (w *World) SetFloatParameter(key string, value float64) bool {
	value = roundTo(value, 4)
	switch key {
	case "threshold":
		engine, err := NewEngine(value, w.engine.Policy)
		if err != nil {
			return false
		}
		w.engine = engine
		w.cfg.Threshold = value
		// A new rule can unsettle a converged board.
		w.converged = false
		return true
	case "fraction_a", "fraction_b":
		next := w.cfg
		if key == "fraction_a" {
			next.FractionA = value
		} else {
			next.FractionB = value
		}
		if next.Validate() != nil {
			return false
		}
		w.cfg = next
		w.Reset(w.seed)
		return true
	}
	return false
}

// SetIntParameter reseeds the board.
func (w *World) SetIntParameter(key string, value int) bool {
	if key != "seed" || value <= 0 {
		return false
	}
	w.Reset(int64(value))
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

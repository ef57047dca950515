package app

import "schelling/internal/core"

type seeder interface {
	Seed() int64
}

// effectiveSeed reports the seed sim is actually running with. Worlds that
// substitute a configured seed for 0 expose it through Seed; for others the
// requested value is all there is.
func effectiveSeed(sim core.Sim, requested int64) int64 {
	if s, ok := sim.(seeder); ok {
		return s.Seed()
	}
	return requested
}

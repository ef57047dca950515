package schelling

import (
	"fmt"
	"math"
)

// SideFor returns floor(sqrt(locations)).
func SideFor(locations int) int {
	if locations < 1 {
		return 0
	}
	n := int(math.Sqrt(float64(locations)))
	for n*n > locations {
		n--
	}
	for (n+1)*(n+1) <= locations {
		n++
	}
	return n
}

// Initialize builds an N×N grid with N = floor(sqrt(locations)) and fills it
// by the same weighted draw the engine uses for redistribution. Pools are
// round(locations·fractionA) and round(locations·fractionB) agents; every
// remaining cell of the board stays empty.
func Initialize(locations int, fractionA, fractionB float64, rng Source) (*Grid, error) {
	if rng == nil {
		return nil, fmt.Errorf("initialize needs a random source: %w", ErrInvalidConfiguration)
	}
	n, red, blue, err := populationPools(locations, fractionA, fractionB)
	if err != nil {
		return nil, err
	}
	g, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	cells := n * n
	if err := redistribute(g, pools{red: red, blue: blue, vacant: cells - red - blue}, rng); err != nil {
		return nil, err
	}
	return g, nil
}

// populationPools returns the board side and the rounded agent counts for a
// population, or ErrInvalidConfiguration when they cannot be placed.
func populationPools(locations int, fractionA, fractionB float64) (n, red, blue int, err error) {
	if locations < 1 {
		return 0, 0, 0, fmt.Errorf("locations %d < 1: %w", locations, ErrInvalidConfiguration)
	}
	if !validFraction(fractionA) || !validFraction(fractionB) {
		return 0, 0, 0, fmt.Errorf("fractions %v/%v must lie in [0,1]: %w", fractionA, fractionB, ErrInvalidConfiguration)
	}
	if fractionA+fractionB > 1+1e-9 {
		return 0, 0, 0, fmt.Errorf("fractions %v+%v exceed 1: %w", fractionA, fractionB, ErrInvalidConfiguration)
	}
	n = SideFor(locations)
	red = int(math.Round(float64(locations) * fractionA))
	blue = int(math.Round(float64(locations) * fractionB))
	if red+blue > n*n {
		return 0, 0, 0, fmt.Errorf("%d agents do not fit on %dx%d board: %w", red+blue, n, n, ErrInvalidConfiguration)
	}
	return n, red, blue, nil
}

func validFraction(f float64) bool {
	return !math.IsNaN(f) && f >= 0 && f <= 1
}

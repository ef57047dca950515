package schelling

import (
	"fmt"
	"strings"
)

// EdgePolicy selects how neighborhoods are scanned and what ratio a cell with
// no occupied neighbors receives.
type EdgePolicy uint8

const (
	// EdgeSkip scans the full 3×3 window, skipping off-board coordinates. A
	// cell with no occupied neighbors has ratio 0 and is unsatisfied unless
	// the threshold is 0.
	EdgeSkip EdgePolicy = iota
	// EdgeClamped scans the window clamped to the board. A cell with no
	// occupied neighbors has ratio 1 and is satisfied.
	EdgeClamped
)

// ZeroNeighborRatio is the ratio assigned to an agent with no occupied neighbors.
func (p EdgePolicy) ZeroNeighborRatio() float64 {
	if p == EdgeClamped {
		return 1
	}
	return 0
}

func (p EdgePolicy) String() string {
	switch p {
	case EdgeClamped:
		return "clamped"
	case EdgeSkip:
		return "skip"
	default:
		return fmt.Sprintf("EdgePolicy(%d)", uint8(p))
	}
}

// ParseEdgePolicy accepts "skip" or "clamped" (case-insensitive).
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "fixed", "":
		return EdgeSkip, nil
	case "clamped", "clamp":
		return EdgeClamped, nil
	default:
		return EdgeSkip, fmt.Errorf("edge policy %q (valid: skip, clamped): %w", s, ErrInvalidConfiguration)
	}
}

// MarshalText implements encoding.TextMarshaler so configs round-trip names.
func (p EdgePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *EdgePolicy) UnmarshalText(b []byte) error {
	parsed, err := ParseEdgePolicy(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

package schelling

import "errors"

var (
	// ErrOutOfBounds is returned for coordinates outside [0, N).
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidConfiguration is returned for unusable initialization parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInternalInconsistency signals broken population accounting during
	// redistribution. The grid must not be used after it is returned.
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

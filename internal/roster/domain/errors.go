package domain

import "errors"

// Sentinel errors returned by the pure core. Application and infrastructure
// layers wrap these with errors.Is/errors.As-friendly context.
var (
	// ErrInvalidDemandShape is returned when a demand matrix is not a
	// dense 7x24 grid of non-negative integers.
	ErrInvalidDemandShape = errors.New("domain: demand matrix must be 7x24 with non-negative entries")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("domain: invalid configuration")

	// ErrInvalidTemplate is returned when a ShiftTemplate violates one of
	// its structural invariants (illegal start hour, missing/extra fields
	// for its type, out-of-range break offset).
	ErrInvalidTemplate = errors.New("domain: invalid shift template")
)

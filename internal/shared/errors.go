package shared

import "fmt"

var (
	// ErrRejected is the single failure signal for every domain operation.
	// Blank input, duplicate names and missing ids all collapse into this one
	// value: callers learn that the operation did not apply, nothing more.
	ErrRejected = fmt.Errorf("operation did not apply")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrInvalidSeed   = fmt.Errorf("invalid seed data")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

package patch

import "errors"

var (
	// ErrMalformedRule is returned when a Rule has an empty required field.
	ErrMalformedRule = errors.New("malformed patch rule")

	// ErrNoMatchFound is returned when the target array literal cannot be
	// located in non-empty contents.
	ErrNoMatchFound = errors.New("array literal not found")
)

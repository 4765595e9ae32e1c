package domain

import "errors"

var (
	// ErrNoItems indicates a receipt submission with no row carrying both a
	// name and a positive weight. The draft is left intact for correction.
	ErrNoItems = errors.New("at least one item with a name and positive weight is required")

	// ErrInvalidRate indicates a labor rate that is not a non-negative number.
	ErrInvalidRate = errors.New("labor rate must be a non-negative number")
)

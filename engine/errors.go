package engine

import "errors"

var (
	// ErrInvalidParameter is returned for non-positive player counts or hand
	// sizes, deals larger than the deck, and out-of-range seat indices.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyTrick is returned when resolving a trick with no cards.
	ErrEmptyTrick = errors.New("cannot resolve empty trick")
)

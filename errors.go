package visited

import "errors"

var (
	// ErrInvalidCapacity is returned when a capacity is negative.
	ErrInvalidCapacity = errors.New("capacity must not be negative")
)

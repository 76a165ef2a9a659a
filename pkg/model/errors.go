package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSortKey is returned for sort keys outside the closed set.
	ErrUnknownSortKey = errors.New("unknown sort key")

	// ErrInvalidMode is returned for pagination modes other than paged or infinite.
	ErrInvalidMode = errors.New("invalid pagination mode")
)

// InvalidTransitionError is returned when a phase transition is not allowed.
type InvalidTransitionError struct {
	From Phase
	To   Phase
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid phase transition: %s → %s", e.From, e.To)
}

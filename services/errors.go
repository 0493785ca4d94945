package services

import (
	"errors"
	"fmt"

	"labrise-backend/models"
)

var (
	// ErrNotFound is returned when an id does not resolve inside the
	// business partition. Callers decide whether that is a 404 or a 400.
	ErrNotFound = errors.New("record not found")

	// ErrRemovalNotAllowed is returned when queue policy forbids removing
	// an item in its current status.
	ErrRemovalNotAllowed = errors.New("removal not allowed for this status")
)

// TransitionError reports a rejected queue status change. The item is left
// untouched when this is returned.
type TransitionError struct {
	From models.QueueStatus
	To   models.QueueStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid queue transition: %s -> %s", e.From, e.To)
}

// IsInvalidTransition reports whether err carries a TransitionError.
func IsInvalidTransition(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}

package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveMembership rejects reservations from clients whose
	// memberships are inactive or outside their date range.
	ErrNoActiveMembership = errors.New("client has no active membership")

	// ErrClassFull rejects reservations for classes with no free seats.
	ErrClassFull = errors.New("class is fully booked")

	// ErrAlreadyCancelled rejects repeated cancellation of a reservation.
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
)

// ValidationError reports a domain-rule violation on a single field,
// keeping it distinguishable from storage failures.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

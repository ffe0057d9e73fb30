package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a transaction or batch does not exist.
var ErrNotFound = errors.New("not found")

// ErrConcurrentModification is returned when a conditional write lost the race against another writer.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrUnavailable is returned when the backing store timed out or could not be reached.
var ErrUnavailable = errors.New("storage unavailable")

// ErrAlreadyExists is returned when a record with the same identity is already stored.
var ErrAlreadyExists = errors.New("already exists")

// ErrDuplicateExternalID is returned when a merchant reuses an external id.
var ErrDuplicateExternalID = errors.New("duplicate external id for merchant")

// Unavailable marks err, returned by the backend while performing op, as retryable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrUnavailable, err)
}

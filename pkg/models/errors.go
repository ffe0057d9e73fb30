package models

import "errors"

// ErrValidation is returned for malformed input. Nothing is written when it is returned.
var ErrValidation = errors.New("validation error")

// ErrInvalidTransition is returned when the target status is not reachable from the current one.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidState is returned when an operation is not permitted in the current state of a batch.
var ErrInvalidState = errors.New("invalid state")

// ErrAlreadyPending is returned when a transaction is enqueued twice.
var ErrAlreadyPending = errors.New("transaction is already pending")

package apperrors

import "errors"

// ErrNotFound indicates that a requested account, transaction or position
// could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that mock data failed validation checks, e.g. a
// transaction referencing an account that was never registered.
var ErrValidation = errors.New("validation error")

// ErrBackendUnavailable indicates that the finance application could not be
// reached. Only the live backend produces it, so callers can always tell an
// unreachable application apart from a lookup failure.
var ErrBackendUnavailable = errors.New("backend unavailable")

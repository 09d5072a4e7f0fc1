package state

import "errors"

// Validation errors surfaced to the auth form. They never leave any state
// behind; the user re-submits.
var (
	ErrMissingFields    = errors.New("please complete all fields")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

package domain

import "errors"

// ErrInvalidID is returned when an ID is malformed or invalid.
var ErrInvalidID = errors.New("invalid ID")

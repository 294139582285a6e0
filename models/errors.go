package models

import "errors"

// Error kinds surfaced by the stores and services. Controllers pick status
// codes with errors.Is; anything outside this list is a storage failure and
// is reported as a generic server error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrNothingMatched     = errors.New("no records matched")
	ErrDuplicateVisit     = errors.New("visit already exists for this patient on this date")
	ErrMissingInput       = errors.New("required input missing")
	ErrInvalidField       = errors.New("invalid field value")
	ErrInvalidRange       = errors.New("invalid date range")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

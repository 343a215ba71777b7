package domain

import "errors"

var (
	// ErrInvalidInterval returned when start is not strictly before end or a bound is missing
	ErrInvalidInterval = errors.New("domain: invalid time interval")

	// ErrInvalidID returned for non-positive identifiers
	ErrInvalidID = errors.New("domain: id must be positive")

	// ErrBlankField returned when a required text field is empty
	ErrBlankField = errors.New("domain: required field is blank")

	// ErrInvalidStateChange returned when an entity leaves an already terminal state
	ErrInvalidStateChange = errors.New("domain: invalid state change")
)

package model

import "errors"

var (
	// ErrMissingField is returned by constructors when a required field is blank.
	ErrMissingField = errors.New("missing required field")
	// ErrNegativeAmount is returned when a salary or amount is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

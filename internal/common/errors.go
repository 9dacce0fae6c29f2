// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Precondition errors. Operations that receive a value violating a
	// precondition fail with one of these before mutating anything.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

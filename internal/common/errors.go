// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Dataset errors.
	ErrRowNotFound  = errors.New("invoice row not found")
	ErrEmptyDataset = errors.New("dataset has no rows")

	// Storage errors.
	ErrSessionNotFound  = errors.New("review session not found")
	ErrDuplicateSession = errors.New("review session already exists")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

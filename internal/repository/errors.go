// Package repository holds the record store backends and the sentinel errors
// they share.
package repository

import "errors"

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned for identifiers the store cannot parse.
	ErrInvalidID = errors.New("malformed record identifier")
	// ErrDuplicate is returned when a unique key is violated.
	ErrDuplicate = errors.New("duplicate key")
)

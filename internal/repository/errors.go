// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrStaleState is returned when a conditional update found the row in a
// different state than expected, typically because a concurrent request
// already moved it.
var ErrStaleState = errors.New("row changed state concurrently")

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the profile store
var (
	// ErrNameConflict is returned when a create or rename would duplicate a profile name
	ErrNameConflict = errors.New("profile name already exists")
	// ErrProfileNotFound is returned when an id or reference matches no profile
	ErrProfileNotFound = errors.New("profile does not exist")
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrPersistence matches every *PersistenceError
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError reports a field that blocks the requested operation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PersistenceError wraps an I/O failure while writing the store or the settings file.
// In-memory state is left as it was before the write.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersistence) match
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// LoadError describes why the store file could not be used and a default store was synthesized
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load profile store %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

package database

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when a statement is attempted on a closed
// connection. It is always wrapped in a StorageError.
var ErrClosed = errors.New("database connection is not open")

// ErrNotFound marks update/delete attempts against ids that do not exist,
// keeping them distinguishable from genuine write failures.
var ErrNotFound = errors.New("record not found")

// StorageError wraps an engine-level failure with the name of the
// attempted operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

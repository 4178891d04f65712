package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a rejected argument, such as an empty description.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound reports an update or delete of an id that is not in the store.
	ErrNotFound = errors.New("not found")
	// ErrIO reports a filesystem failure. Match it with errors.Is.
	ErrIO = errors.New("i/o error")
)

// IOError wraps a filesystem failure with the operation and path involved.
// It still satisfies errors.Is(err, ErrIO).
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

func notFound(id int) error {
	return fmt.Errorf("task with ID %d %w", id, ErrNotFound)
}

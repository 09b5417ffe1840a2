// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a category, page or product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for malformed pagination parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict is returned when a write collides with an existing row,
	// such as a duplicate product URL segment.
	ErrConflict = errors.New("conflict")

	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("storage error")
)

// StorageError wraps a failure from one of the stores. The catalog never
// retries; callers decide whether to.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorage) match any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

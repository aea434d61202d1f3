package storage

import (
	"errors"
	"fmt"

	"expensewise/internal/core"
)

var (
	// ErrNotFound is core.ErrNotFound so callers can match either.
	ErrNotFound = core.ErrNotFound
	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("storage failure")
)

// StorageError reports a failed persistence operation.
type StorageError struct {
	Op        string
	Namespace Namespace
	ID        string
	Err       error
}

func (e *StorageError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Namespace, e.Err)
	}
	return fmt.Sprintf("storage %s %s/%s: %v", e.Op, e.Namespace, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func notFound(ns Namespace, id string) error {
	return fmt.Errorf("%s/%s: %w", ns, id, ErrNotFound)
}

func storageErr(op string, ns Namespace, id string, err error) error {
	return &StorageError{Op: op, Namespace: ns, ID: id, Err: err}
}

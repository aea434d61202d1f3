package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError through errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLoanSettled is returned when settling a loan that is already paid.
	ErrLoanSettled = errors.New("loan already settled")
)

// ValidationError lists every invariant a draft violates. It is returned
// before any persistence attempt.
type ValidationError struct {
	Entity  string
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Reasons, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// reasons accumulates validation failures for one entity.
type reasons struct {
	entity string
	list   []string
}

func (r *reasons) add(format string, args ...any) {
	r.list = append(r.list, fmt.Sprintf(format, args...))
}

func (r *reasons) err() error {
	if len(r.list) == 0 {
		return nil
	}
	return &ValidationError{Entity: r.entity, Reasons: r.list}
}

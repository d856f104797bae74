package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotAdmin      = errors.New("insufficient permission")
	ErrStoreCorrupt  = errors.New("persisted state unreadable")
	ErrMaxLikes      = errors.New("uid already received maximum likes today")
	ErrLikeAPIFailed = errors.New("like service request failed")
)

// PersistenceKind distinguishes a failed load (the caller is running on
// defaults) from a failed save (in-memory state is ahead of disk).
type PersistenceKind string

const (
	KindLoad PersistenceKind = "load"
	KindSave PersistenceKind = "save"
)

// PersistenceError is returned by the durable stores. It never aborts a
// policy or quota decision; callers log it and keep serving from memory.
type PersistenceError struct {
	Kind PersistenceKind
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func Persistence(kind PersistenceKind, op string, err error) *PersistenceError {
	return &PersistenceError{Kind: kind, Op: op, Err: err}
}

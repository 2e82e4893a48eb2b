package db

import (
	"errors"
	"fmt"
)

// Kind classifies a StorageError by the stage that failed
type Kind int

const (
	KindOpen   Kind = iota + 1 // opening or configuring the database
	KindSchema                 // creating tables
	KindQuery                  // preparing or running a read
	KindExec                   // running a write
	KindDecode                 // a row did not have the shape we need
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindSchema:
		return "schema"
	case KindQuery:
		return "query"
	case KindExec:
		return "exec"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrNullColumn is wrapped by KindDecode errors when a required column is NULL
	ErrNullColumn = errors.New("unexpected NULL column")
	// ErrTaskNotFound is returned by TaskByName
	ErrTaskNotFound = errors.New("task not found")
)

// StorageError is the single error type returned by Store operations
type StorageError struct {
	Kind Kind
	Op   string
	Err  error
}

func newError(kind Kind, op string, err error) *StorageError {
	return &StorageError{Kind: kind, Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a StorageError of the given kind
func IsKind(err error, kind Kind) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == kind
}

func nullColumn(column string, eventID int64) error {
	return fmt.Errorf("column %s of event #%d: %w", column, eventID, ErrNullColumn)
}

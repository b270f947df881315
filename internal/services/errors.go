package services

import (
	"errors"
	"fmt"
)

// QueryError reports a failed single-statement operation
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup that matched zero rows where exactly one was expected
type NotFoundError struct {
	Entity string
	Key    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// ConflictError reports a write that would break an entity lifecycle rule
type ConflictError struct {
	Entity string
	Key    interface{}
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %v: %s", e.Entity, e.Key, e.Reason)
}

// TransactionStartError reports a failure to begin a scoped transaction
type TransactionStartError struct {
	Op  string
	Err error
}

func (e *TransactionStartError) Error() string {
	return fmt.Sprintf("%s: begin transaction: %v", e.Op, e.Err)
}

func (e *TransactionStartError) Unwrap() error { return e.Err }

// StatementError reports a failed statement inside a scoped transaction.
// The transaction has been rolled back when this error is returned.
type StatementError struct {
	Op   string
	Step string
	Err  error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Step, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// CommitError reports a failed commit. The transaction has been rolled back.
type CommitError struct {
	Op  string
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("%s: commit: %v", e.Op, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is, or wraps, a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

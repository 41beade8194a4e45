package gc

import "github.com/pkg/errors"

// FatalBorrowError is raised (via panic, never returned) when application
// code attempts to Deref a Gc[T] while a GcRefMut for the same cell is
// outstanding. It is a programmer error, not a recoverable condition, so
// it is never reduced to a sentinel the way a busy BorrowMut is.
type FatalBorrowError struct {
	cause error
}

func (e *FatalBorrowError) Error() string {
	return e.cause.Error()
}

func (e *FatalBorrowError) Unwrap() error {
	return e.cause
}

func newFatalBorrowError() *FatalBorrowError {
	return &FatalBorrowError{cause: errors.WithStack(errors.New("gc: cell is exclusively borrowed via GcRefMut"))}
}

package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/consistency/internal/repository"
)

var (
	// ErrPersistenceUnavailable matches every *PersistenceError.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	ErrNoOpenSession    = errors.New("no check-in session is open yet")
	ErrAlreadyCheckedIn = errors.New("already checked in for this session")
	ErrTaskRemoved      = errors.New("task has been removed")
	ErrInvalidTask      = errors.New("invalid task")
	ErrInvalidUser      = errors.New("invalid user settings")
)

// PersistenceError reports a failed read or write against the store, so a
// caller can tell "could not record" apart from "recorded as not completed".
// Partial is set when a check-in was created but the completion that
// prompted it was not written.
type PersistenceError struct {
	Op      string
	Partial bool
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Partial {
		return fmt.Sprintf("%s: check-in was opened but the completion was not saved: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceUnavailable, e.Err}
}

// persistence wraps a store failure. Lookups that simply found nothing and
// errors that are already classified pass through unchanged.
func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) || errors.Is(err, repository.ErrNotFound) {
		return err
	}
	for _, sentinel := range []error{ErrNoOpenSession, ErrAlreadyCheckedIn, ErrTaskRemoved, ErrInvalidTask, ErrInvalidUser} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return &PersistenceError{Op: op, Err: err}
}

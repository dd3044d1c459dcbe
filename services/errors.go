package services

import (
	"errors"
	"fmt"

	"github.com/sidhant-sriv/rentease-api/repository"
)

// Kind classifies domain failures; the API layer maps each to a status code.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindState      Kind = "state"
	KindInternal   Kind = "internal"
)

// Error is returned by every service operation that fails.
type Error struct {
	Op   string
	Kind Kind
	Msg  string // safe to show to clients
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%s: %s", e.Op, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a service error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func validation(op, msg string) error {
	return &Error{Op: op, Kind: KindValidation, Msg: msg}
}

func forbidden(op, msg string) error {
	return &Error{Op: op, Kind: KindForbidden, Msg: msg}
}

func conflict(op, msg string) error {
	return &Error{Op: op, Kind: KindConflict, Msg: msg}
}

func invalidState(op, msg string) error {
	return &Error{Op: op, Kind: KindState, Msg: msg}
}

// storeErr classifies a repository error. what names the entity for
// not-found messages, e.g. "booking".
func storeErr(op, what string, err error) error {
	var se *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &se):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Op: op, Kind: KindNotFound, Msg: what + " not found", Err: err}
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Op: op, Kind: KindConflict, Msg: what + " already exists", Err: err}
	}
	return &Error{Op: op, Kind: KindInternal, Msg: "internal error", Err: err}
}

package services

import (
	"errors"
	"fmt"

	"checkin-server/repo"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidRange Kind = "invalid_range"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation_error"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// Error is the only error type the services hand to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// fromStore maps a repository error onto a service error.
func fromStore(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: notFoundMsg, Err: err}
	case errors.Is(err, repo.ErrLockTimeout):
		return &Error{Kind: KindUnavailable, Message: "resource is busy, try again", Err: err}
	case errors.Is(err, repo.ErrDuplicate):
		return &Error{Kind: KindConflict, Message: "record already exists", Err: err}
	}
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

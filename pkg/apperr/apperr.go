// Package apperr classifies failures so the tool boundary can turn them into
// user-facing text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure class.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

// Sentinels usable with errors.Is.
var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	// Hint names the operation that fixes a not-found condition.
	Hint string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// Validation reports bad input; nothing has been written.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing lookup target and the tool that creates it.
func NotFound(msg, hint string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Hint: hint}
}

// Wrap marks err as internal with some context. A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Text renders err the way tools return it.
func Text(err error) string {
	if err == nil {
		return ""
	}
	e, ok := As(err)
	if !ok {
		return "Error: fallo interno: " + err.Error()
	}
	switch e.Kind {
	case KindValidation:
		return "Error: " + e.Message
	case KindNotFound:
		if e.Hint != "" {
			return fmt.Sprintf("Error: %s. Sugerencia: usa '%s' primero.", e.Message, e.Hint)
		}
		return "Error: " + e.Message
	default:
		return "Error: fallo interno: " + e.Error()
	}
}

package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business error. Each kind maps to one HTTP status and
// one message class, so callers never need to inspect error strings.
type Kind string

const (
	KindAlreadyExists      Kind = "already_exists"
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindIllegalTransition  Kind = "illegal_transition"
	KindSlotConflict       Kind = "slot_conflict"
	KindBackendUnavailable Kind = "backend_unavailable"
)

type BusinessError struct {
	Kind Kind
	Code string
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry blindly. Only transient
// backend failures qualify, and only for reads.
func (e BusinessError) Retryable() bool {
	return e.Kind == KindBackendUnavailable
}

// ErrBusiness builds an invalid-input error. Kept for call sites that only
// carry a code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindInvalidInput, Code: code}
}

func AlreadyExists(code string) error {
	return BusinessError{Kind: KindAlreadyExists, Code: code}
}

func NotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func InvalidInput(code string) error {
	return BusinessError{Kind: KindInvalidInput, Code: code}
}

func IllegalTransition(code string) error {
	return BusinessError{Kind: KindIllegalTransition, Code: code}
}

func SlotConflict(code string) error {
	return BusinessError{Kind: KindSlotConflict, Code: code}
}

func BackendUnavailable(code string, cause error) error {
	return BusinessError{Kind: KindBackendUnavailable, Code: code, Err: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of err, or "" when err is not a business error.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors for the conversion failure taxonomy. Internals wrap these
// with fmt.Errorf("...: %w", err); callers classify with errors.Is.
var (
	// ErrNotFound means an input file or folder does not exist.
	ErrNotFound = errors.New("input not found")

	// ErrInvalidInput means the input exists but is not a usable image or document.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEngineMissing means no engine able to perform the conversion is installed.
	ErrEngineMissing = errors.New("conversion engine not available")

	// ErrEngineFailed means the delegated conversion itself failed.
	ErrEngineFailed = errors.New("conversion engine failed")
)

// ErrorKind is the serializable name of a sentinel error.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "input-not-found"
	KindInvalidInput  ErrorKind = "invalid-input"
	KindEngineMissing ErrorKind = "engine-missing"
	KindEngineFailed  ErrorKind = "engine-error"
	KindOther         ErrorKind = "other"
)

// KindOf classifies err against the sentinel errors. It returns "" for nil.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrEngineMissing):
		return KindEngineMissing
	case errors.Is(err, ErrEngineFailed):
		return KindEngineFailed
	default:
		return KindOther
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindInvalidInput:
		return ErrInvalidInput
	case KindEngineMissing:
		return ErrEngineMissing
	case KindEngineFailed:
		return ErrEngineFailed
	}
	return nil
}

package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed backend call.
type ErrorKind int

const (
	// KindRequestFailed covers non-2xx responses and transport failures.
	KindRequestFailed ErrorKind = iota
	// KindParseError means the body was not valid JSON for the expected shape.
	KindParseError
)

func (k ErrorKind) String() string {
	switch k {
	case KindRequestFailed:
		return "request failed"
	case KindParseError:
		return "parse error"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that fails.
type Error struct {
	Kind    ErrorKind
	Path    string
	Status  int // HTTP status code, 0 for transport or parse failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detailed returns the message prefixed with the kind and path, for logs.
func (e *Error) Detailed() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Path, e.Message)
}

// Describe renders err for logs, with kind and path when it is an *Error.
func Describe(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detailed()
	}
	return err.Error()
}

// KindOf reports the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsRequestFailed reports whether err is a non-2xx or transport failure.
func IsRequestFailed(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindRequestFailed
}

// IsParseError reports whether err is a malformed body failure.
func IsParseError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindParseError
}

// Result carries either a value or the error that prevented it.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the result holds a value.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Resolve wraps a (value, error) pair into a Result.
func Resolve[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err}
}

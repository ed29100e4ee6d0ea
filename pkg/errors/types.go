// Package errors defines the coded errors returned by spatialnav packages.
// Callers branch on the code with IsCode; the context map carries the
// offending section, field or path.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode classifies an Error.
type ErrorCode string

const (
	// Layout and configuration
	ErrCodeConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrCodeConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Section registry
	ErrCodeSectionExists     ErrorCode = "SECTION_EXISTS"
	ErrCodeSectionNotFound   ErrorCode = "SECTION_NOT_FOUND"
	ErrCodeSectionIDRequired ErrorCode = "SECTION_ID_REQUIRED"

	ErrCodeInternal     ErrorCode = "INTERNAL"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Error is a coded error with optional key/value context.
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Context    map[string]any
}

// New creates an error with the given code.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Context: make(map[string]any)}
}

// Newf is New with a format string.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code to err. Wrapping nil returns nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Underlying = err
	return e
}

// SectionExists reports an attempt to add a section under a taken id.
func SectionExists(id string) *Error {
	return Newf(ErrCodeSectionExists, "section %q already exists", id).WithContext("section", id)
}

// SectionNotFound reports a reference to an unknown section id.
func SectionNotFound(id string) *Error {
	return Newf(ErrCodeSectionNotFound, "section %q does not exist", id).WithContext("section", id)
}

// SectionIDRequired reports a missing section id argument to op.
func SectionIDRequired(op string) *Error {
	return New(ErrCodeSectionIDRequired, "a section id is required").WithContext("op", op)
}

// WithContext sets one context value and returns e for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error formats as "[CODE] message {k: v, ...}: underlying" with context
// keys sorted.
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", e.Code, e.Message)

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %v", k, e.Context[k])
		}
		sb.WriteString("}")
	}

	if e.Underlying != nil {
		fmt.Fprintf(&sb, ": %v", e.Underlying)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// IsCode reports whether err or anything it wraps carries code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if navErr, ok := err.(*Error); ok && navErr.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, INTERNAL for
// uncoded errors and "" for nil.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var navErr *Error
	if stderrors.As(err, &navErr) {
		return navErr.Code
	}
	return ErrCodeInternal
}

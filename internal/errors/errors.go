// Package errors provides kinded errors for the doc-buildr pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Kind defines the category of error.
type Kind int

const (
	// KindUnknown is the kind of errors not created by this package.
	KindUnknown Kind = iota
	// KindInputUnavailable means the source text could not be read.
	KindInputUnavailable
	// KindStructuralMismatch means a tokenized span did not satisfy the
	// stricter declaration grammar of the parser.
	KindStructuralMismatch
	// KindConfiguration means flags, config file or pattern set are invalid.
	KindConfiguration
	// KindInternal marks a broken internal invariant.
	KindInternal
	// KindInvalidOutput means generated documentation failed validation or
	// drifted from what is on disk.
	KindInvalidOutput
)

// String returns the snake_case name used in log fields.
func (k Kind) String() string {
	switch k {
	case KindInputUnavailable:
		return "input_unavailable"
	case KindStructuralMismatch:
		return "structural_mismatch"
	case KindConfiguration:
		return "configuration"
	case KindInternal:
		return "internal"
	case KindInvalidOutput:
		return "invalid_output"
	default:
		return "unknown"
	}
}

// Error is a categorised error with optional attributes.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
	Attributes map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Underlying == nil:
		return e.Message
	case e.Message == "":
		return e.Underlying.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a new Error of the specified kind.
func New(kind Kind, msg string) error {
	return &Error{
		Kind:    kind,
		Message: msg,
	}
}

// Errorf creates a new Error of the specified kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err as a new Error of the specified kind. It returns nil when err is nil.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       kind,
		Message:    msg,
		Underlying: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Underlying: err,
	}
}

// Attr attaches an attribute to an error. Errors that are not *Error are
// wrapped as KindUnknown first.
func Attr(err error, key string, val any) error {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		e = &Error{
			Kind:       KindUnknown,
			Underlying: err,
		}
		err = e
	}

	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[key] = val
	return err
}

// GetKind returns the Kind of the first *Error in the chain, or KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetAttributes collects the attributes of every *Error in the chain.
// Outer attributes win over inner ones with the same key.
func GetAttributes(err error) map[string]any {
	attrs := make(map[string]any)
	var e *Error

	for tempErr := err; tempErr != nil; {
		if !errors.As(tempErr, &e) {
			break
		}
		for k, v := range e.Attributes {
			if _, ok := attrs[k]; !ok {
				attrs[k] = v
			}
		}
		tempErr = e.Underlying
	}

	return attrs
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

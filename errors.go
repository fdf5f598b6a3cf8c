package xmp

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnsupportedValue indicates a leaf value is not a bool, number, date or string.
	ErrUnsupportedValue = errors.New("value not supported")

	// ErrNestedArray indicates a sequence element is itself a sequence.
	ErrNestedArray = errors.New("nested arrays are not supported")

	// ErrMalformedOutput indicates the document could not be rendered as well-formed XML.
	ErrMalformedOutput = errors.New("malformed output")

	// ErrInvalidOption indicates a serializer option has an invalid value.
	ErrInvalidOption = errors.New("invalid option")

	// ErrDecode indicates a decoder failed to read its input.
	ErrDecode = errors.New("decode failed")
)

// UnsupportedValueError reports a value that cannot be classified.
type UnsupportedValueError struct {
	Path  string // XMP path of the property (e.g., "dc:creator[2]")
	Value any    // Offending value
	Cause error  // Marshaler failure, if any
}

func (e *UnsupportedValueError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrUnsupportedValue.Error(), describe(e.Value))
	if e.Path != "" {
		msg += " (property " + e.Path + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *UnsupportedValueError) Unwrap() error {
	return ErrUnsupportedValue
}

// NestedArrayError reports a sequence found directly inside a sequence.
type NestedArrayError struct {
	Path string // XMP path of the inner sequence
}

func (e *NestedArrayError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s (property %s)", ErrNestedArray.Error(), e.Path)
	}
	return ErrNestedArray.Error()
}

func (e *NestedArrayError) Unwrap() error {
	return ErrNestedArray
}

// MalformedOutputError reports a name or value that would make the document
// ill-formed. It matches both ErrMalformedOutput and its cause with errors.Is.
type MalformedOutputError struct {
	Name  string // Element or attribute name involved
	Cause error  // Underlying rendering or option error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrMalformedOutput.Error(), e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrMalformedOutput.Error(), e.Name)
}

func (e *MalformedOutputError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMalformedOutput}
	}
	return []error{ErrMalformedOutput, e.Cause}
}

// DecodeError reports a decoder failure.
type DecodeError struct {
	ContentType string // Decoder content type
	Cause       error  // Original error from the decoder
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.ContentType, ErrDecode.Error(), e.Cause)
	}
	return fmt.Sprintf("%s %s", e.ContentType, ErrDecode.Error())
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// NewDecodeError creates a DecodeError for decoder implementations.
func NewDecodeError(contentType string, cause error) error {
	return &DecodeError{
		ContentType: contentType,
		Cause:       cause,
	}
}

// newOptionError creates a MalformedOutputError for a rejected option.
func newOptionError(name, reason string) error {
	return &MalformedOutputError{
		Name:  name,
		Cause: fmt.Errorf("%w: %s %s", ErrInvalidOption, name, reason),
	}
}

func describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	switch v.(type) {
	case fmt.Stringer, error, string, float32, float64:
		return fmt.Sprintf("%v (%T)", v, v)
	}
	return fmt.Sprintf("%T", v)
}

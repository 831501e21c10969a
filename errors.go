package nbt

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownTypeID indicates a decoded type-id has no registered variant.
	ErrUnknownTypeID = errors.New("unknown type id")

	// ErrMalformedStream indicates the stream ended before a terminator or
	// fixed-size payload was fully read, or carried an impossible length.
	ErrMalformedStream = errors.New("malformed stream")

	// ErrVariantCollision indicates a type-id, variant or native type is already registered.
	ErrVariantCollision = errors.New("variant collision")

	// ErrUnregisteredVariant indicates a tag variant has no wire id and cannot be framed.
	ErrUnregisteredVariant = errors.New("unregistered variant")

	// ErrNoConverter indicates no converter applies to a tag variant or native type.
	ErrNoConverter = errors.New("no converter")

	// ErrHeterogeneousList indicates an element does not match a list's element type.
	ErrHeterogeneousList = errors.New("heterogeneous list")

	// ErrIDSpaceExhausted indicates no unused type-id remains.
	ErrIDSpaceExhausted = errors.New("type id space exhausted")

	// ErrEndTag indicates an End tag was read where a named tag was expected.
	ErrEndTag = errors.New("unexpected end tag")

	// ErrEmptyList indicates an empty sequence cannot establish a list element type.
	ErrEmptyList = errors.New("empty list")

	// ErrValueTooLarge indicates a value exceeds its wire length prefix or
	// the range of the type it is converted to.
	ErrValueTooLarge = errors.New("value too large")

	// ErrNilTag indicates a nil tag was passed where a tag is required.
	ErrNilTag = errors.New("nil tag")

	// ErrMaxDepth indicates nesting exceeded the configured maximum depth.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")

	// ErrNotCompound indicates a root tag is not a Compound.
	ErrNotCompound = errors.New("root tag is not a compound")

	// ErrNamedElement indicates a named tag was added to a List. List
	// elements are unnamed on the wire.
	ErrNamedElement = errors.New("named list element")

	// ErrNilFactory indicates a registered factory is nil or produced a nil tag.
	ErrNilFactory = errors.New("nil factory")
)

// StreamError represents a failure while reading or writing the byte stream.
// It unwraps to both the sentinel and the underlying I/O cause, so
// errors.Is(err, ErrMalformedStream) and errors.Is(err, io.ErrUnexpectedEOF)
// both hold for a truncated payload.
type StreamError struct {
	Op    string // Operation that failed (e.g. "read int32", "read compound")
	Err   error  // Sentinel error, may be nil for plain I/O failures
	Cause error  // Error from the underlying stream or codec
}

func (e *StreamError) Error() string {
	switch {
	case e.Err != nil && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Err.Error(), e.Cause)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return e.Op
}

func (e *StreamError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// RegistryError represents a type registry failure.
type RegistryError struct {
	Err     error   // Underlying sentinel error
	ID      int     // Type-id involved, -1 if not applicable
	Variant Variant // Variant involved, empty if not applicable
}

func (e *RegistryError) Error() string {
	if e.ID >= 0 && e.Variant != "" {
		return fmt.Sprintf("%s: id %d (variant %s)", e.Err.Error(), e.ID, e.Variant)
	}
	if e.ID >= 0 {
		return fmt.Sprintf("%s: id %d", e.Err.Error(), e.ID)
	}
	if e.Variant != "" {
		return fmt.Sprintf("%s: variant %s", e.Err.Error(), e.Variant)
	}
	return e.Err.Error()
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// ConversionError represents a converter registry failure.
type ConversionError struct {
	Err     error        // Underlying sentinel error
	Variant Variant      // Tag variant involved, empty if not applicable
	Type    reflect.Type // Native type involved, nil if not applicable
	Cause   error        // Error from a nested conversion
}

func (e *ConversionError) Error() string {
	msg := e.Err.Error()
	if e.Variant != "" {
		msg = fmt.Sprintf("%s for variant %s", msg, e.Variant)
	}
	if e.Type != nil {
		msg = fmt.Sprintf("%s for type %s", msg, e.Type)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConversionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// newStreamError creates a StreamError for a stream operation.
func newStreamError(op string, sentinel, cause error) error {
	return &StreamError{
		Op:    op,
		Err:   sentinel,
		Cause: cause,
	}
}

// newRegistryError creates a RegistryError.
func newRegistryError(sentinel error, id int, variant Variant) error {
	return &RegistryError{
		Err:     sentinel,
		ID:      id,
		Variant: variant,
	}
}

// newConversionError creates a ConversionError.
func newConversionError(sentinel error, variant Variant, typ reflect.Type, cause error) error {
	return &ConversionError{
		Err:     sentinel,
		Variant: variant,
		Type:    typ,
		Cause:   cause,
	}
}

package nbt

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

func TestStreamError_Is(t *testing.T) {
	err := newStreamError("read int32", ErrMalformedStream, io.ErrUnexpectedEOF)

	if !errors.Is(err, ErrMalformedStream) {
		t.Error("StreamError should unwrap to ErrMalformedStream")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("StreamError should unwrap to its cause")
	}
	if errors.Is(err, ErrUnknownTypeID) {
		t.Error("StreamError should not match ErrUnknownTypeID")
	}

	var se *StreamError
	if !errors.As(err, &se) || se.Op != "read int32" {
		t.Errorf("errors.As() = %+v, want Op read int32", se)
	}
}

func TestStreamError_Message(t *testing.T) {
	cause := errors.New("disk on fire")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel and cause",
			err:  newStreamError("read compound", ErrMalformedStream, io.ErrUnexpectedEOF),
			want: "read compound: malformed stream: unexpected EOF",
		},
		{
			name: "sentinel only",
			err:  newStreamError("read list", ErrMalformedStream, nil),
			want: "read list: malformed stream",
		},
		{
			name: "cause only",
			err:  newStreamError("write uint8", nil, cause),
			want: "write uint8: disk on fire",
		},
		{
			name: "op only",
			err:  &StreamError{Op: "read"},
			want: "read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "id and variant",
			err:  newRegistryError(ErrVariantCollision, 3, VariantInt),
			want: "variant collision: id 3 (variant Int)",
		},
		{
			name: "id only",
			err:  newRegistryError(ErrUnknownTypeID, 99, ""),
			want: "unknown type id: id 99",
		},
		{
			name: "variant only",
			err:  newRegistryError(ErrUnregisteredVariant, -1, "Point"),
			want: "unregistered variant: variant Point",
		},
		{
			name: "neither",
			err:  newRegistryError(ErrIDSpaceExhausted, -1, ""),
			want: "type id space exhausted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryError_Is(t *testing.T) {
	err := newRegistryError(ErrUnknownTypeID, 99, "")

	if !errors.Is(err, ErrUnknownTypeID) {
		t.Error("RegistryError should unwrap to ErrUnknownTypeID")
	}

	var re *RegistryError
	if !errors.As(err, &re) || re.ID != 99 {
		t.Errorf("errors.As() = %+v, want ID 99", re)
	}
}

func TestConversionError(t *testing.T) {
	cause := newConversionError(ErrEmptyList, VariantList, reflect.TypeFor[[]any](), nil)
	err := newConversionError(ErrNoConverter, VariantCompound, nil, cause)

	if !errors.Is(err, ErrNoConverter) {
		t.Error("ConversionError should unwrap to ErrNoConverter")
	}
	if !errors.Is(err, ErrEmptyList) {
		t.Error("ConversionError should unwrap to its cause")
	}

	want := "no converter for variant Compound: empty list for variant List for type []interface {}"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

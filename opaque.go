package nbt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"github.com/mitchellh/copystructure"
)

// SerializableTag holds an arbitrary Go value encoded with the stream's Codec.
//
// The codec bytes are framed by an int32 length. A decoded value has the
// generic shape produced by the codec (maps, slices, scalars), not the
// original Go type.
type SerializableTag struct {
	name  string
	value any
}

// NewSerializable creates a Serializable tag.
func NewSerializable(name string, v any) *SerializableTag {
	return &SerializableTag{name: name, value: v}
}

// Name returns the tag's name.
func (t *SerializableTag) Name() string { return t.name }

// Variant returns VariantSerializable.
func (t *SerializableTag) Variant() Variant { return VariantSerializable }

// Value returns the tag's value.
func (t *SerializableTag) Value() any { return t.value }

// Set replaces the value.
func (t *SerializableTag) Set(v any) { t.value = v }

// ReadPayload decodes the Serializable payload from r.
func (t *SerializableTag) ReadPayload(r *Reader) error {
	v, err := readOpaque(r)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the Serializable payload to w.
func (t *SerializableTag) WritePayload(w *Writer) error {
	return writeOpaque(w, t.value)
}

// Clone deep-copies the value; values that cannot be copied are shared.
func (t *SerializableTag) Clone() Tag {
	return NewSerializable(t.name, deepCopy(t.value))
}

// Equal reports whether other is a Serializable tag with the same name and
// an equivalent value; see opaqueEqual.
func (t *SerializableTag) Equal(other Tag) bool {
	o, ok := other.(*SerializableTag)
	return ok && o != nil && t.name == o.name && opaqueEqual(t.value, o.value)
}

// String renders the tag for debugging.
func (t *SerializableTag) String() string { return describe(t, fmt.Sprint(t.value)) }

// SerializableArrayTag holds a sequence of arbitrary Go values, each encoded
// with the stream's Codec and framed by its own int32 length.
type SerializableArrayTag struct{ array[any] }

// NewSerializableArray creates a SerializableArray tag holding a copy of v.
func NewSerializableArray(name string, v []any) *SerializableArrayTag {
	return &SerializableArrayTag{newArray(name, v)}
}

// Variant returns VariantSerializableArray.
func (t *SerializableArrayTag) Variant() Variant { return VariantSerializableArray }

// ReadPayload decodes the SerializableArray payload from r.
func (t *SerializableArrayTag) ReadPayload(r *Reader) error {
	v, err := readArray(r, func() (any, error) { return readOpaque(r) })
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the SerializableArray payload to w.
func (t *SerializableArrayTag) WritePayload(w *Writer) error {
	return writeArray(w, t.value, func(v any) error { return writeOpaque(w, v) })
}

// Clone returns a copy of the tag.
func (t *SerializableArrayTag) Clone() Tag {
	values := make([]any, len(t.value))
	for i, v := range t.value {
		values[i] = deepCopy(v)
	}
	return &SerializableArrayTag{array[any]{name: t.name, value: values}}
}

// Equal reports whether other is a SerializableArray tag with the same name
// and element-wise equivalent values.
func (t *SerializableArrayTag) Equal(other Tag) bool {
	o, ok := other.(*SerializableArrayTag)
	return ok && o != nil && t.name == o.name && slices.EqualFunc(t.value, o.value, opaqueEqual)
}

// String renders the tag for debugging.
func (t *SerializableArrayTag) String() string { return describe(t, joinValues(t.value)) }

func readOpaque(r *Reader) (any, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	var v any
	if err := r.Codec().Unmarshal(data, &v); err != nil {
		return nil, newStreamError("read serializable", ErrMalformedStream, err)
	}
	return v, nil
}

func writeOpaque(w *Writer, v any) error {
	data, err := w.Codec().Marshal(v)
	if err != nil {
		return newStreamError("write serializable", nil, err)
	}
	if err := w.WriteLength(len(data)); err != nil {
		return err
	}
	return w.WriteBytes(data)
}

// opaqueEqual compares opaque values by their generic shape, so a value
// equals what any codec decodes it back to: int(1), int8(1) and float64(1)
// are equal, as are a struct and the map a codec decodes it into. Values
// without a JSON form compare with reflect.DeepEqual.
func opaqueEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	na, ok := normalizeOpaque(a)
	if !ok {
		return false
	}
	nb, ok := normalizeOpaque(b)
	return ok && reflect.DeepEqual(na, nb)
}

// normalizeOpaque converts v into maps, slices, strings, bools and
// json.Number values.
func normalizeOpaque(v any) (any, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	return out, true
}

func deepCopy(v any) any {
	c, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return c
}

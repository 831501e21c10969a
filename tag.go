package nbt

import (
	"fmt"
	"math"
	"strings"
)

// Variant names a tag variant. It identifies the variant in the type
// registry and the converter registry and prefixes the describe output.
type Variant string

// Built-in variants.
const (
	VariantEnd               Variant = "End"
	VariantByte              Variant = "Byte"
	VariantShort             Variant = "Short"
	VariantInt               Variant = "Int"
	VariantLong              Variant = "Long"
	VariantFloat             Variant = "Float"
	VariantDouble            Variant = "Double"
	VariantByteArray         Variant = "ByteArray"
	VariantString            Variant = "String"
	VariantList              Variant = "List"
	VariantCompound          Variant = "Compound"
	VariantIntArray          Variant = "IntArray"
	VariantLongArray         Variant = "LongArray"
	VariantDoubleArray       Variant = "DoubleArray"
	VariantFloatArray        Variant = "FloatArray"
	VariantSerializableArray Variant = "SerializableArray"
	VariantSerializable      Variant = "Serializable"
	VariantShortArray        Variant = "ShortArray"
	VariantStringArray       Variant = "StringArray"
)

// Tag is a named, typed node of an NBT tree.
//
// The name is fixed at construction. Custom variants implement Tag and are
// made decodable by registering a Factory with a Registry.
type Tag interface {
	// Name returns the tag's name. It may be empty and never changes.
	Name() string

	// Variant returns the variant this tag belongs to.
	Variant() Variant

	// Value returns the tag's value. Array values are copies.
	Value() any

	// ReadPayload decodes the variant payload, without id or name.
	ReadPayload(r *Reader) error

	// WritePayload encodes the variant payload, without id or name.
	WritePayload(w *Writer) error

	// Clone returns a deep copy.
	Clone() Tag

	// Equal reports whether other has the same variant, name and value.
	Equal(other Tag) bool

	// String renders the tag as "Variant(name) { value }".
	String() string
}

// Equal reports whether a and b are structurally equal. Two nil tags are equal.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// describe renders the debug form shared by every built-in variant.
func describe(t Tag, value string) string {
	var b strings.Builder
	b.WriteString(string(t.Variant()))
	if t.Name() != "" {
		b.WriteByte('(')
		b.WriteString(t.Name())
		b.WriteByte(')')
	}
	b.WriteString(" { ")
	b.WriteString(value)
	b.WriteString(" }")
	return b.String()
}

// joinValues renders a sequence as "[a, b, c]".
func joinValues[T any](values []T) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}

// floatEqual compares floats by value, treating NaN as equal to NaN.
func floatEqual[T float32 | float64](a, b T) bool {
	return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
}

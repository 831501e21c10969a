package nbt

import "fmt"

// scalar holds the name and single value shared by every scalar variant.
type scalar[T any] struct {
	name  string
	value T
}

// Name returns the tag's name.
func (s *scalar[T]) Name() string { return s.name }

// Value returns the tag's value.
func (s *scalar[T]) Value() any { return s.value }

// Get returns the typed value.
func (s *scalar[T]) Get() T { return s.value }

// Set replaces the value.
func (s *scalar[T]) Set(v T) { s.value = v }

// ByteTag holds a signed 8-bit integer.
type ByteTag struct{ scalar[int8] }

// NewByte creates a Byte tag.
func NewByte(name string, v int8) *ByteTag {
	return &ByteTag{scalar[int8]{name: name, value: v}}
}

// Variant returns VariantByte.
func (t *ByteTag) Variant() Variant { return VariantByte }

// ReadPayload decodes the Byte payload from r.
func (t *ByteTag) ReadPayload(r *Reader) error {
	v, err := r.ReadInt8()
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the Byte payload to w.
func (t *ByteTag) WritePayload(w *Writer) error { return w.WriteInt8(t.value) }

// Clone returns a copy of the tag.
func (t *ByteTag) Clone() Tag {
	c := *t
	return &c
}

// Equal reports whether other is a Byte tag with the same name and value.
func (t *ByteTag) Equal(other Tag) bool {
	o, ok := other.(*ByteTag)
	return ok && o != nil && t.name == o.name && t.value == o.value
}

// String renders the tag for debugging.
func (t *ByteTag) String() string { return describe(t, fmt.Sprint(t.value)) }

// ShortTag holds a signed 16-bit integer.
type ShortTag struct{ scalar[int16] }

// NewShort creates a Short tag.
func NewShort(name string, v int16) *ShortTag {
	return &ShortTag{scalar[int16]{name: name, value: v}}
}

// Variant returns VariantShort.
func (t *ShortTag) Variant() Variant { return VariantShort }

// ReadPayload decodes the Short payload from r.
func (t *ShortTag) ReadPayload(r *Reader) error {
	v, err := r.ReadInt16()
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the Short payload to w.
func (t *ShortTag) WritePayload(w *Writer) error { return w.WriteInt16(t.value) }

// Clone returns a copy of the tag.
func (t *ShortTag) Clone() Tag {
	c := *t
	return &c
}

// Equal reports whether other is a Short tag with the same name and value.
func (t *ShortTag) Equal(other Tag) bool {
	o, ok := other.(*ShortTag)
	return ok && o != nil && t.name == o.name && t.value == o.value
}

// String renders the tag for debugging.
func (t *ShortTag) String() string { return describe(t, fmt.Sprint(t.value)) }

// IntTag holds a signed 32-bit integer.
type IntTag struct{ scalar[int32] }

// NewInt creates an Int tag.
func NewInt(name string, v int32) *IntTag {
	return &IntTag{scalar[int32]{name: name, value: v}}
}

// Variant returns VariantInt.
func (t *IntTag) Variant() Variant { return VariantInt }

// ReadPayload decodes the Int payload from r.
func (t *IntTag) ReadPayload(r *Reader) error {
	v, err := r.ReadInt32()
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the Int payload to w.
func (t *IntTag) WritePayload(w *Writer) error { return w.WriteInt32(t.value) }

// Clone returns a copy of the tag.
func (t *IntTag) Clone() Tag {
	c := *t
	return &c
}

// Equal reports whether other is a Int tag with the same name and value.
func (t *IntTag) Equal(other Tag) bool {
	o, ok := other.(*IntTag)
	return ok && o != nil && t.name == o.name && t.value == o.value
}

// String renders the tag for debugging.
func (t *IntTag) String() string { return describe(t, fmt.Sprint(t.value)) }

// LongTag holds a signed 64-bit integer.
type LongTag struct{ scalar[int64] }

// NewLong creates a Long tag.
func NewLong(name string, v int64) *LongTag {
	return &LongTag{scalar[int64]{name: name, value: v}}
}

// Variant returns VariantLong.
func (t *LongTag) Variant() Variant { return VariantLong }

// ReadPayload decodes the Long payload from r.
func (t *LongTag) ReadPayload(r *Reader) error {
	v, err := r.ReadInt64()
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the Long payload to w.
func (t *LongTag) WritePayload(w *Writer) error { return w.WriteInt64(t.value) }

// Clone returns a copy of the tag.
func (t *LongTag) Clone() Tag {
	c := *t
	return &c
}

// Equal reports whether other is a Long tag with the same name and value.
func (t *LongTag) Equal(other Tag) bool {
	o, ok := other.(*LongTag)
	return ok && o != nil && t.name == o.name && t.value == o.value
}

// String renders the tag for debugging.
func (t *LongTag) String() string { return describe(t, fmt.Sprint(t.value)) }

// FloatTag holds a 32-bit IEEE754 float.
type FloatTag struct{ scalar[float32] }

// NewFloat creates a Float tag.
func NewFloat(name string, v float32) *FloatTag {
	return &FloatTag{scalar[float32]{name: name, value: v}}
}

// Variant returns VariantFloat.
func (t *FloatTag) Variant() Variant { return VariantFloat }

// ReadPayload decodes the Float payload from r.
func (t *FloatTag) ReadPayload(r *Reader) error {
	v, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the Float payload to w.
func (t *FloatTag) WritePayload(w *Writer) error { return w.WriteFloat32(t.value) }

// Clone returns a copy of the tag.
func (t *FloatTag) Clone() Tag {
	c := *t
	return &c
}

// Equal reports whether other is a Float tag with the same name and value.
func (t *FloatTag) Equal(other Tag) bool {
	o, ok := other.(*FloatTag)
	return ok && o != nil && t.name == o.name && floatEqual(t.value, o.value)
}

// String renders the tag for debugging.
func (t *FloatTag) String() string { return describe(t, fmt.Sprint(t.value)) }

// DoubleTag holds a 64-bit IEEE754 float.
type DoubleTag struct{ scalar[float64] }

// NewDouble creates a Double tag.
func NewDouble(name string, v float64) *DoubleTag {
	return &DoubleTag{scalar[float64]{name: name, value: v}}
}

// Variant returns VariantDouble.
func (t *DoubleTag) Variant() Variant { return VariantDouble }

// ReadPayload decodes the Double payload from r.
func (t *DoubleTag) ReadPayload(r *Reader) error {
	v, err := r.ReadFloat64()
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the Double payload to w.
func (t *DoubleTag) WritePayload(w *Writer) error { return w.WriteFloat64(t.value) }

// Clone returns a copy of the tag.
func (t *DoubleTag) Clone() Tag {
	c := *t
	return &c
}

// Equal reports whether other is a Double tag with the same name and value.
func (t *DoubleTag) Equal(other Tag) bool {
	o, ok := other.(*DoubleTag)
	return ok && o != nil && t.name == o.name && floatEqual(t.value, o.value)
}

// String renders the tag for debugging.
func (t *DoubleTag) String() string { return describe(t, fmt.Sprint(t.value)) }

// StringTag holds UTF-8 text of at most 65535 encoded bytes.
type StringTag struct{ scalar[string] }

// NewString creates a String tag.
func NewString(name, v string) *StringTag {
	return &StringTag{scalar[string]{name: name, value: v}}
}

// Variant returns VariantString.
func (t *StringTag) Variant() Variant { return VariantString }

// ReadPayload decodes the String payload from r.
func (t *StringTag) ReadPayload(r *Reader) error {
	v, err := r.ReadString()
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the String payload to w.
func (t *StringTag) WritePayload(w *Writer) error { return w.WriteString(t.value) }

// Clone returns a copy of the tag.
func (t *StringTag) Clone() Tag {
	c := *t
	return &c
}

// Equal reports whether other is a String tag with the same name and value.
func (t *StringTag) Equal(other Tag) bool {
	o, ok := other.(*StringTag)
	return ok && o != nil && t.name == o.name && t.value == o.value
}

// String renders the tag for debugging.
func (t *StringTag) String() string { return describe(t, t.value) }

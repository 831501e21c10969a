package nbt

import "slices"

// maxPrealloc bounds the capacity reserved from an untrusted length prefix.
const maxPrealloc = 4096

// array holds the name and element sequence shared by every array variant.
// Values and Value return copies; At and SetAt address the backing slice.
type array[T any] struct {
	name  string
	value []T
}

// Name returns the tag's name.
func (a *array[T]) Name() string { return a.name }

// Value returns a copy of the elements.
func (a *array[T]) Value() any { return a.Values() }

// Values returns a copy of the elements.
func (a *array[T]) Values() []T { return slices.Clone(a.value) }

// SetValues replaces the elements with a copy of v. A nil v is ignored.
func (a *array[T]) SetValues(v []T) {
	if v == nil {
		return
	}
	a.value = slices.Clone(v)
}

// Len returns the number of elements.
func (a *array[T]) Len() int { return len(a.value) }

// At returns the element at index i.
func (a *array[T]) At(i int) T { return a.value[i] }

// SetAt replaces the element at index i in place.
func (a *array[T]) SetAt(i int, v T) { a.value[i] = v }

func newArray[T any](name string, v []T) array[T] {
	if v == nil {
		v = []T{}
	}
	return array[T]{name: name, value: slices.Clone(v)}
}

// readArray reads an int32 element count followed by that many elements.
func readArray[T any](r *Reader, read func() (T, error)) ([]T, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(n, maxPrealloc))
	for range n {
		v, err := read()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// writeArray writes an int32 element count followed by every element.
func writeArray[T any](w *Writer, values []T, write func(T) error) error {
	if err := w.WriteLength(len(values)); err != nil {
		return err
	}
	for _, v := range values {
		if err := write(v); err != nil {
			return err
		}
	}
	return nil
}

// ByteArrayTag holds a sequence of bytes.
type ByteArrayTag struct{ array[byte] }

// NewByteArray creates a ByteArray tag holding a copy of v.
func NewByteArray(name string, v []byte) *ByteArrayTag {
	return &ByteArrayTag{newArray(name, v)}
}

// Variant returns VariantByteArray.
func (t *ByteArrayTag) Variant() Variant { return VariantByteArray }

// ReadPayload decodes the ByteArray payload from r.
func (t *ByteArrayTag) ReadPayload(r *Reader) error {
	n, err := r.ReadLength()
	if err != nil {
		return err
	}
	v, err := r.ReadBytes(n)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the ByteArray payload to w.
func (t *ByteArrayTag) WritePayload(w *Writer) error {
	if err := w.WriteLength(len(t.value)); err != nil {
		return err
	}
	return w.WriteBytes(t.value)
}

// Clone returns a copy of the tag.
func (t *ByteArrayTag) Clone() Tag { return NewByteArray(t.name, t.value) }

// Equal reports whether other is a ByteArray tag with the same name and value.
func (t *ByteArrayTag) Equal(other Tag) bool {
	o, ok := other.(*ByteArrayTag)
	return ok && o != nil && t.name == o.name && slices.Equal(t.value, o.value)
}

// String renders the tag for debugging.
func (t *ByteArrayTag) String() string { return describe(t, joinValues(t.value)) }

// ShortArrayTag holds a sequence of signed 16-bit integers.
type ShortArrayTag struct{ array[int16] }

// NewShortArray creates a ShortArray tag holding a copy of v.
func NewShortArray(name string, v []int16) *ShortArrayTag {
	return &ShortArrayTag{newArray(name, v)}
}

// Variant returns VariantShortArray.
func (t *ShortArrayTag) Variant() Variant { return VariantShortArray }

// ReadPayload decodes the ShortArray payload from r.
func (t *ShortArrayTag) ReadPayload(r *Reader) error {
	v, err := readArray(r, r.ReadInt16)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the ShortArray payload to w.
func (t *ShortArrayTag) WritePayload(w *Writer) error {
	return writeArray(w, t.value, w.WriteInt16)
}

// Clone returns a copy of the tag.
func (t *ShortArrayTag) Clone() Tag { return NewShortArray(t.name, t.value) }

// Equal reports whether other is a ShortArray tag with the same name and value.
func (t *ShortArrayTag) Equal(other Tag) bool {
	o, ok := other.(*ShortArrayTag)
	return ok && o != nil && t.name == o.name && slices.Equal(t.value, o.value)
}

// String renders the tag for debugging.
func (t *ShortArrayTag) String() string { return describe(t, joinValues(t.value)) }

// IntArrayTag holds a sequence of signed 32-bit integers.
type IntArrayTag struct{ array[int32] }

// NewIntArray creates an IntArray tag holding a copy of v.
func NewIntArray(name string, v []int32) *IntArrayTag {
	return &IntArrayTag{newArray(name, v)}
}

// Variant returns VariantIntArray.
func (t *IntArrayTag) Variant() Variant { return VariantIntArray }

// ReadPayload decodes the IntArray payload from r.
func (t *IntArrayTag) ReadPayload(r *Reader) error {
	v, err := readArray(r, r.ReadInt32)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the IntArray payload to w.
func (t *IntArrayTag) WritePayload(w *Writer) error {
	return writeArray(w, t.value, w.WriteInt32)
}

// Clone returns a copy of the tag.
func (t *IntArrayTag) Clone() Tag { return NewIntArray(t.name, t.value) }

// Equal reports whether other is a IntArray tag with the same name and value.
func (t *IntArrayTag) Equal(other Tag) bool {
	o, ok := other.(*IntArrayTag)
	return ok && o != nil && t.name == o.name && slices.Equal(t.value, o.value)
}

// String renders the tag for debugging.
func (t *IntArrayTag) String() string { return describe(t, joinValues(t.value)) }

// LongArrayTag holds a sequence of signed 64-bit integers.
type LongArrayTag struct{ array[int64] }

// NewLongArray creates a LongArray tag holding a copy of v.
func NewLongArray(name string, v []int64) *LongArrayTag {
	return &LongArrayTag{newArray(name, v)}
}

// Variant returns VariantLongArray.
func (t *LongArrayTag) Variant() Variant { return VariantLongArray }

// ReadPayload decodes the LongArray payload from r.
func (t *LongArrayTag) ReadPayload(r *Reader) error {
	v, err := readArray(r, r.ReadInt64)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the LongArray payload to w.
func (t *LongArrayTag) WritePayload(w *Writer) error {
	return writeArray(w, t.value, w.WriteInt64)
}

// Clone returns a copy of the tag.
func (t *LongArrayTag) Clone() Tag { return NewLongArray(t.name, t.value) }

// Equal reports whether other is a LongArray tag with the same name and value.
func (t *LongArrayTag) Equal(other Tag) bool {
	o, ok := other.(*LongArrayTag)
	return ok && o != nil && t.name == o.name && slices.Equal(t.value, o.value)
}

// String renders the tag for debugging.
func (t *LongArrayTag) String() string { return describe(t, joinValues(t.value)) }

// FloatArrayTag holds a sequence of 32-bit floats.
type FloatArrayTag struct{ array[float32] }

// NewFloatArray creates a FloatArray tag holding a copy of v.
func NewFloatArray(name string, v []float32) *FloatArrayTag {
	return &FloatArrayTag{newArray(name, v)}
}

// Variant returns VariantFloatArray.
func (t *FloatArrayTag) Variant() Variant { return VariantFloatArray }

// ReadPayload decodes the FloatArray payload from r.
func (t *FloatArrayTag) ReadPayload(r *Reader) error {
	v, err := readArray(r, r.ReadFloat32)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the FloatArray payload to w.
func (t *FloatArrayTag) WritePayload(w *Writer) error {
	return writeArray(w, t.value, w.WriteFloat32)
}

// Clone returns a copy of the tag.
func (t *FloatArrayTag) Clone() Tag { return NewFloatArray(t.name, t.value) }

// Equal reports whether other is a FloatArray tag with the same name and value.
func (t *FloatArrayTag) Equal(other Tag) bool {
	o, ok := other.(*FloatArrayTag)
	return ok && o != nil && t.name == o.name && slices.EqualFunc(t.value, o.value, floatEqual[float32])
}

// String renders the tag for debugging.
func (t *FloatArrayTag) String() string { return describe(t, joinValues(t.value)) }

// DoubleArrayTag holds a sequence of 64-bit floats.
type DoubleArrayTag struct{ array[float64] }

// NewDoubleArray creates a DoubleArray tag holding a copy of v.
func NewDoubleArray(name string, v []float64) *DoubleArrayTag {
	return &DoubleArrayTag{newArray(name, v)}
}

// Variant returns VariantDoubleArray.
func (t *DoubleArrayTag) Variant() Variant { return VariantDoubleArray }

// ReadPayload decodes the DoubleArray payload from r.
func (t *DoubleArrayTag) ReadPayload(r *Reader) error {
	v, err := readArray(r, r.ReadFloat64)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the DoubleArray payload to w.
func (t *DoubleArrayTag) WritePayload(w *Writer) error {
	return writeArray(w, t.value, w.WriteFloat64)
}

// Clone returns a copy of the tag.
func (t *DoubleArrayTag) Clone() Tag { return NewDoubleArray(t.name, t.value) }

// Equal reports whether other is a DoubleArray tag with the same name and value.
func (t *DoubleArrayTag) Equal(other Tag) bool {
	o, ok := other.(*DoubleArrayTag)
	return ok && o != nil && t.name == o.name && slices.EqualFunc(t.value, o.value, floatEqual[float64])
}

// String renders the tag for debugging.
func (t *DoubleArrayTag) String() string { return describe(t, joinValues(t.value)) }

// StringArrayTag holds a sequence of UTF-8 strings, each length-prefixed on the wire.
type StringArrayTag struct{ array[string] }

// NewStringArray creates a StringArray tag holding a copy of v.
func NewStringArray(name string, v []string) *StringArrayTag {
	return &StringArrayTag{newArray(name, v)}
}

// Variant returns VariantStringArray.
func (t *StringArrayTag) Variant() Variant { return VariantStringArray }

// ReadPayload decodes the StringArray payload from r.
func (t *StringArrayTag) ReadPayload(r *Reader) error {
	v, err := readArray(r, r.ReadString)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

// WritePayload encodes the StringArray payload to w.
func (t *StringArrayTag) WritePayload(w *Writer) error {
	return writeArray(w, t.value, w.WriteString)
}

// Clone returns a copy of the tag.
func (t *StringArrayTag) Clone() Tag { return NewStringArray(t.name, t.value) }

// Equal reports whether other is a StringArray tag with the same name and value.
func (t *StringArrayTag) Equal(other Tag) bool {
	o, ok := other.(*StringArrayTag)
	return ok && o != nil && t.name == o.name && slices.Equal(t.value, o.value)
}

// String renders the tag for debugging.
func (t *StringArrayTag) String() string { return describe(t, joinValues(t.value)) }

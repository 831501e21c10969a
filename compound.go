package nbt

import (
	"errors"
	"io"
	"iter"
	"slices"
	"strings"
)

// CompoundTag holds uniquely named child tags in insertion order.
//
// Children are keyed by their own name. Putting a tag under a name that is
// already present replaces the previous child in its original position.
type CompoundTag struct {
	name  string
	keys  []string
	value map[string]Tag
}

// NewCompound creates a Compound holding tags. Later tags replace earlier
// tags of the same name.
func NewCompound(name string, tags ...Tag) *CompoundTag {
	c := &CompoundTag{
		name:  name,
		value: make(map[string]Tag, len(tags)),
	}
	for _, t := range tags {
		if t != nil {
			c.Put(t)
		}
	}
	return c
}

// Name returns the tag's name.
func (c *CompoundTag) Name() string { return c.name }

// Variant returns VariantCompound.
func (c *CompoundTag) Variant() Variant { return VariantCompound }

// Value returns a copy of the name to child mapping.
func (c *CompoundTag) Value() any {
	m := make(map[string]Tag, len(c.value))
	for k, t := range c.value {
		m[k] = t
	}
	return m
}

// Len returns the number of children.
func (c *CompoundTag) Len() int { return len(c.keys) }

// IsEmpty reports whether the compound has no children.
func (c *CompoundTag) IsEmpty() bool { return len(c.keys) == 0 }

// Has reports whether a child named name exists.
func (c *CompoundTag) Has(name string) bool {
	_, ok := c.value[name]
	return ok
}

// Get returns the child named name, or nil.
func (c *CompoundTag) Get(name string) Tag { return c.value[name] }

// Put stores t under its name and returns the child it replaced, if any.
// A nil t is ignored.
func (c *CompoundTag) Put(t Tag) Tag {
	if t == nil {
		return nil
	}
	name := t.Name()
	prev, ok := c.value[name]
	if !ok {
		c.keys = append(c.keys, name)
	}
	c.value[name] = t
	return prev
}

// Remove deletes the child named name and returns it, or nil.
func (c *CompoundTag) Remove(name string) Tag {
	prev, ok := c.value[name]
	if !ok {
		return nil
	}
	delete(c.value, name)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == name })
	return prev
}

// Clear removes every child.
func (c *CompoundTag) Clear() {
	c.keys = nil
	clear(c.value)
}

// Keys returns the child names in insertion order.
func (c *CompoundTag) Keys() []string { return slices.Clone(c.keys) }

// Tags returns the children in insertion order.
func (c *CompoundTag) Tags() []Tag {
	tags := make([]Tag, len(c.keys))
	for i, k := range c.keys {
		tags[i] = c.value[k]
	}
	return tags
}

// All iterates over the children in insertion order.
func (c *CompoundTag) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, k := range c.keys {
			if !yield(k, c.value[k]) {
				return
			}
		}
	}
}

// Path walks nested compounds by name and returns the compound at the end
// of steps. It reports false if a step is missing or not a Compound.
func (c *CompoundTag) Path(steps ...string) (*CompoundTag, bool) {
	cur := c
	for _, step := range steps {
		next, ok := cur.value[step].(*CompoundTag)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// ReadPayload decodes the Compound payload from r.
func (c *CompoundTag) ReadPayload(r *Reader) error {
	if err := r.enter("read compound"); err != nil {
		return err
	}
	defer r.leave()

	children := make([]Tag, 0)
	for {
		id, err := r.readID()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return newStreamError("read compound", ErrMalformedStream, io.ErrUnexpectedEOF)
			}
			return newStreamError("read compound", nil, err)
		}
		if id == 0 {
			break
		}
		child, err := r.readNamed(id)
		if err != nil {
			return err
		}
		children = append(children, child)
	}

	for _, child := range children {
		c.Put(child)
	}
	return nil
}

// WritePayload encodes the Compound payload to w.
func (c *CompoundTag) WritePayload(w *Writer) error {
	for _, k := range c.keys {
		if err := w.WriteTag(c.value[k]); err != nil {
			return err
		}
	}
	return w.WriteUint8(0)
}

// Clone returns a deep copy; every child is cloned.
func (c *CompoundTag) Clone() Tag {
	cl := &CompoundTag{
		name:  c.name,
		keys:  slices.Clone(c.keys),
		value: make(map[string]Tag, len(c.value)),
	}
	for k, t := range c.value {
		cl.value[k] = t.Clone()
	}
	return cl
}

// Equal compares names and children by key. Insertion order is not part
// of the value; compare Keys to check it.
func (c *CompoundTag) Equal(other Tag) bool {
	o, ok := other.(*CompoundTag)
	if !ok || o == nil || c.name != o.name || len(c.value) != len(o.value) {
		return false
	}
	for k, t := range c.value {
		if !Equal(t, o.value[k]) {
			return false
		}
	}
	return true
}

// String renders the tag for debugging.
func (c *CompoundTag) String() string {
	var b strings.Builder
	writeChildren(&b, '{', '}', c.Tags())
	return describe(c, b.String())
}

// getAs returns the child named name if it is of type T.
func getAs[T Tag](c *CompoundTag, name string) (T, bool) {
	t, ok := c.value[name].(T)
	return t, ok
}

// GetByte returns the value of the Byte child named name, or 0.
func (c *CompoundTag) GetByte(name string) int8 {
	if t, ok := getAs[*ByteTag](c, name); ok {
		return t.value
	}
	return 0
}

// SetByte stores a Byte child.
func (c *CompoundTag) SetByte(name string, v int8) { c.Put(NewByte(name, v)) }

// GetBool returns true if the Byte child named name is non-zero.
func (c *CompoundTag) GetBool(name string) bool { return c.GetByte(name) != 0 }

// SetBool stores a Byte child holding 1 or 0.
func (c *CompoundTag) SetBool(name string, v bool) {
	var b int8
	if v {
		b = 1
	}
	c.SetByte(name, b)
}

// GetShort returns the value of the Short child named name, or 0.
func (c *CompoundTag) GetShort(name string) int16 {
	if t, ok := getAs[*ShortTag](c, name); ok {
		return t.value
	}
	return 0
}

// SetShort stores a Short child.
func (c *CompoundTag) SetShort(name string, v int16) { c.Put(NewShort(name, v)) }

// GetInt returns the value of the Int child named name, or 0.
func (c *CompoundTag) GetInt(name string) int32 {
	if t, ok := getAs[*IntTag](c, name); ok {
		return t.value
	}
	return 0
}

// SetInt stores an Int child.
func (c *CompoundTag) SetInt(name string, v int32) { c.Put(NewInt(name, v)) }

// GetLong returns the value of the Long child named name, or 0.
func (c *CompoundTag) GetLong(name string) int64 {
	if t, ok := getAs[*LongTag](c, name); ok {
		return t.value
	}
	return 0
}

// SetLong stores a Long child.
func (c *CompoundTag) SetLong(name string, v int64) { c.Put(NewLong(name, v)) }

// GetFloat returns the value of the Float child named name, or 0.
func (c *CompoundTag) GetFloat(name string) float32 {
	if t, ok := getAs[*FloatTag](c, name); ok {
		return t.value
	}
	return 0
}

// SetFloat stores a Float child.
func (c *CompoundTag) SetFloat(name string, v float32) { c.Put(NewFloat(name, v)) }

// GetDouble returns the value of the Double child named name, or 0.
func (c *CompoundTag) GetDouble(name string) float64 {
	if t, ok := getAs[*DoubleTag](c, name); ok {
		return t.value
	}
	return 0
}

// SetDouble stores a Double child.
func (c *CompoundTag) SetDouble(name string, v float64) { c.Put(NewDouble(name, v)) }

// GetString returns the value of the String child named name, or "".
func (c *CompoundTag) GetString(name string) string {
	if t, ok := getAs[*StringTag](c, name); ok {
		return t.value
	}
	return ""
}

// SetString stores a String child.
func (c *CompoundTag) SetString(name, v string) { c.Put(NewString(name, v)) }

// GetByteArray returns a copy of the ByteArray child named name, or an empty slice.
func (c *CompoundTag) GetByteArray(name string) []byte {
	if t, ok := getAs[*ByteArrayTag](c, name); ok {
		return t.Values()
	}
	return []byte{}
}

// SetByteArray stores a ByteArray child.
func (c *CompoundTag) SetByteArray(name string, v []byte) { c.Put(NewByteArray(name, v)) }

// GetShortArray returns a copy of the ShortArray child named name, or an empty slice.
func (c *CompoundTag) GetShortArray(name string) []int16 {
	if t, ok := getAs[*ShortArrayTag](c, name); ok {
		return t.Values()
	}
	return []int16{}
}

// SetShortArray stores a ShortArray child.
func (c *CompoundTag) SetShortArray(name string, v []int16) { c.Put(NewShortArray(name, v)) }

// GetIntArray returns a copy of the IntArray child named name, or an empty slice.
func (c *CompoundTag) GetIntArray(name string) []int32 {
	if t, ok := getAs[*IntArrayTag](c, name); ok {
		return t.Values()
	}
	return []int32{}
}

// SetIntArray stores an IntArray child.
func (c *CompoundTag) SetIntArray(name string, v []int32) { c.Put(NewIntArray(name, v)) }

// GetLongArray returns a copy of the LongArray child named name, or an empty slice.
func (c *CompoundTag) GetLongArray(name string) []int64 {
	if t, ok := getAs[*LongArrayTag](c, name); ok {
		return t.Values()
	}
	return []int64{}
}

// SetLongArray stores a LongArray child.
func (c *CompoundTag) SetLongArray(name string, v []int64) { c.Put(NewLongArray(name, v)) }

// GetFloatArray returns a copy of the FloatArray child named name, or an empty slice.
func (c *CompoundTag) GetFloatArray(name string) []float32 {
	if t, ok := getAs[*FloatArrayTag](c, name); ok {
		return t.Values()
	}
	return []float32{}
}

// SetFloatArray stores a FloatArray child.
func (c *CompoundTag) SetFloatArray(name string, v []float32) { c.Put(NewFloatArray(name, v)) }

// GetDoubleArray returns a copy of the DoubleArray child named name, or an empty slice.
func (c *CompoundTag) GetDoubleArray(name string) []float64 {
	if t, ok := getAs[*DoubleArrayTag](c, name); ok {
		return t.Values()
	}
	return []float64{}
}

// SetDoubleArray stores a DoubleArray child.
func (c *CompoundTag) SetDoubleArray(name string, v []float64) { c.Put(NewDoubleArray(name, v)) }

// GetStringArray returns a copy of the StringArray child named name, or an empty slice.
func (c *CompoundTag) GetStringArray(name string) []string {
	if t, ok := getAs[*StringArrayTag](c, name); ok {
		return t.Values()
	}
	return []string{}
}

// SetStringArray stores a StringArray child.
func (c *CompoundTag) SetStringArray(name string, v []string) { c.Put(NewStringArray(name, v)) }

// GetList returns the List child named name, or nil.
func (c *CompoundTag) GetList(name string) *ListTag {
	t, _ := getAs[*ListTag](c, name)
	return t
}

// GetCompound returns the Compound child named name, or nil.
func (c *CompoundTag) GetCompound(name string) *CompoundTag {
	t, _ := getAs[*CompoundTag](c, name)
	return t
}

// GetSerializable returns the value of the Serializable child named name, or nil.
func (c *CompoundTag) GetSerializable(name string) any {
	if t, ok := getAs[*SerializableTag](c, name); ok {
		return t.value
	}
	return nil
}

// SetSerializable stores a Serializable child.
func (c *CompoundTag) SetSerializable(name string, v any) { c.Put(NewSerializable(name, v)) }

// GetSerializableArray returns a copy of the SerializableArray child named
// name, or an empty slice.
func (c *CompoundTag) GetSerializableArray(name string) []any {
	if t, ok := getAs[*SerializableArrayTag](c, name); ok {
		return t.Values()
	}
	return []any{}
}

// SetSerializableArray stores a SerializableArray child.
func (c *CompoundTag) SetSerializableArray(name string, v []any) {
	c.Put(NewSerializableArray(name, v))
}

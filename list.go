package nbt

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// ListTag holds an ordered sequence of unnamed tags sharing one variant.
//
// The element type is fixed at construction or established by the first
// element added. An empty list decoded from the wire has no element type
// (VariantEnd).
type ListTag struct {
	name  string
	elem  Variant
	value []Tag
}

// NewList creates an empty List whose elements must be of variant elem.
// Pass VariantEnd to let the first added element establish the type.
func NewList(name string, elem Variant) *ListTag {
	if elem == "" {
		elem = VariantEnd
	}
	return &ListTag{name: name, elem: elem, value: []Tag{}}
}

// NewListOf creates a List holding tags, typed by the first tag.
// It fails with ErrHeterogeneousList if the tags differ in variant and with
// ErrNamedElement if any tag has a name.
func NewListOf(name string, tags ...Tag) (*ListTag, error) {
	l := NewList(name, VariantEnd)
	if err := l.SetTags(tags); err != nil {
		return nil, err
	}
	return l, nil
}

// Name returns the tag's name.
func (l *ListTag) Name() string { return l.name }

// Variant returns VariantList.
func (l *ListTag) Variant() Variant { return VariantList }

// Value returns a copy of the element slice.
func (l *ListTag) Value() any { return l.Tags() }

// ElementType returns the element variant, or VariantEnd if none is established.
func (l *ListTag) ElementType() Variant { return l.elem }

// Len returns the number of elements.
func (l *ListTag) Len() int { return len(l.value) }

// Get returns the element at index i.
func (l *ListTag) Get(i int) Tag { return l.value[i] }

// Tags returns a copy of the element slice. The elements themselves are shared.
func (l *ListTag) Tags() []Tag { return slices.Clone(l.value) }

// All iterates over the elements in order.
func (l *ListTag) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range l.value {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Add appends t. The first element establishes the element type of an
// untyped list; afterwards a mismatched variant fails with ErrHeterogeneousList.
// Elements must be unnamed; a named tag fails with ErrNamedElement.
func (l *ListTag) Add(t Tag) error {
	if t == nil {
		return ErrNilTag
	}
	if t.Name() != "" {
		return fmt.Errorf("%w: %q", ErrNamedElement, t.Name())
	}
	if l.elem == VariantEnd {
		l.elem = t.Variant()
	} else if t.Variant() != l.elem {
		return fmt.Errorf("%w: %s in list of %s", ErrHeterogeneousList, t.Variant(), l.elem)
	}
	l.value = append(l.value, t)
	return nil
}

// Remove deletes the first element equal to t and reports whether one was found.
func (l *ListTag) Remove(t Tag) bool {
	i := slices.IndexFunc(l.value, func(e Tag) bool { return Equal(e, t) })
	if i < 0 {
		return false
	}
	l.value = slices.Delete(l.value, i, i+1)
	return true
}

// SetTags replaces every element. Elements must be unnamed and share the
// list's element type, or one another's if the list is untyped.
func (l *ListTag) SetTags(tags []Tag) error {
	elem := l.elem
	for _, t := range tags {
		if t == nil {
			return ErrNilTag
		}
		if t.Name() != "" {
			return fmt.Errorf("%w: %q", ErrNamedElement, t.Name())
		}
		if elem == VariantEnd {
			elem = t.Variant()
		} else if t.Variant() != elem {
			return fmt.Errorf("%w: %s in list of %s", ErrHeterogeneousList, t.Variant(), elem)
		}
	}
	l.elem = elem
	l.value = slices.Clone(tags)
	return nil
}

// ReadPayload decodes the List payload from r.
func (l *ListTag) ReadPayload(r *Reader) error {
	if err := r.enter("read list"); err != nil {
		return err
	}
	defer r.leave()

	id, err := r.ReadUint8()
	if err != nil {
		return err
	}
	count, err := r.ReadLength()
	if err != nil {
		return err
	}

	if id == 0 {
		if count != 0 {
			return newStreamError("read list", ErrMalformedStream, fmt.Errorf("%d elements without element type", count))
		}
		l.elem = VariantEnd
		l.value = []Tag{}
		return nil
	}

	elem, err := r.Registry().New(id, "")
	if err != nil {
		return err
	}

	elems := make([]Tag, 0, min(count, maxPrealloc))
	for range count {
		t, err := r.Registry().New(id, "")
		if err != nil {
			return err
		}
		if err := t.ReadPayload(r); err != nil {
			return err
		}
		elems = append(elems, t)
	}

	l.elem = elem.Variant()
	l.value = elems
	return nil
}

// WritePayload encodes the List payload to w.
func (l *ListTag) WritePayload(w *Writer) error {
	if len(l.value) == 0 {
		if err := w.WriteUint8(0); err != nil {
			return err
		}
		return w.WriteLength(0)
	}

	id, ok := w.Registry().ID(l.elem)
	if !ok || id == 0 {
		return newRegistryError(ErrUnregisteredVariant, -1, l.elem)
	}
	if err := w.WriteUint8(id); err != nil {
		return err
	}
	if err := w.WriteLength(len(l.value)); err != nil {
		return err
	}
	for _, t := range l.value {
		if err := t.WritePayload(w); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy; every element is cloned.
func (l *ListTag) Clone() Tag {
	c := &ListTag{name: l.name, elem: l.elem, value: make([]Tag, len(l.value))}
	for i, t := range l.value {
		c.value[i] = t.Clone()
	}
	return c
}

// Equal compares names and elements. The element type of an empty list is
// not part of its value.
func (l *ListTag) Equal(other Tag) bool {
	o, ok := other.(*ListTag)
	if !ok || o == nil || l.name != o.name {
		return false
	}
	return slices.EqualFunc(l.value, o.value, Equal)
}

// String renders the tag for debugging.
func (l *ListTag) String() string {
	var b strings.Builder
	writeChildren(&b, '[', ']', l.value)
	return describe(l, b.String())
}

func writeChildren(w io.StringWriter, open, closing byte, tags []Tag) {
	_, _ = w.WriteString(string(open))
	for i, t := range tags {
		if i > 0 {
			_, _ = w.WriteString(", ")
		}
		_, _ = w.WriteString(t.String())
	}
	_, _ = w.WriteString(string(closing))
}

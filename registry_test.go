package nbt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
)

// pointTag is a custom variant holding two int32 coordinates.
type pointTag struct {
	name string
	x, y int32
}

func newPoint(name string) Tag { return &pointTag{name: name} }

func (p *pointTag) Name() string     { return p.name }
func (p *pointTag) Variant() Variant { return "Point" }
func (p *pointTag) Value() any       { return [2]int32{p.x, p.y} }

func (p *pointTag) ReadPayload(r *Reader) error {
	x, err := r.ReadInt32()
	if err != nil {
		return err
	}
	y, err := r.ReadInt32()
	if err != nil {
		return err
	}
	p.x, p.y = x, y
	return nil
}

func (p *pointTag) WritePayload(w *Writer) error {
	if err := w.WriteInt32(p.x); err != nil {
		return err
	}
	return w.WriteInt32(p.y)
}

func (p *pointTag) Clone() Tag {
	c := *p
	return &c
}

func (p *pointTag) Equal(other Tag) bool {
	o, ok := other.(*pointTag)
	return ok && o != nil && *p == *o
}

func (p *pointTag) String() string { return describe(p, fmt.Sprintf("%d, %d", p.x, p.y)) }

func TestNewRegistry_Builtins(t *testing.T) {
	want := []Entry{
		{1, VariantByte}, {2, VariantShort}, {3, VariantInt}, {4, VariantLong},
		{5, VariantFloat}, {6, VariantDouble}, {7, VariantByteArray}, {8, VariantString},
		{9, VariantList}, {10, VariantCompound}, {11, VariantIntArray}, {12, VariantLongArray},
		{60, VariantDoubleArray}, {61, VariantFloatArray}, {63, VariantSerializableArray},
		{64, VariantSerializable}, {65, VariantShortArray}, {66, VariantStringArray},
	}

	got := NewRegistry().Entries()
	if len(got) != len(want) {
		t.Fatalf("Entries() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRegistry_LookupAndID(t *testing.T) {
	r := NewRegistry()

	for _, e := range r.Entries() {
		f, ok := r.Lookup(e.ID)
		if !ok {
			t.Fatalf("Lookup(%d) not found", e.ID)
		}
		if v := f("x").Variant(); v != e.Variant {
			t.Errorf("Lookup(%d) variant = %s, want %s", e.ID, v, e.Variant)
		}
		if id, ok := r.ID(e.Variant); !ok || id != e.ID {
			t.Errorf("ID(%s) = %d, %v; want %d", e.Variant, id, ok, e.ID)
		}
	}

	if id, ok := r.ID(VariantEnd); !ok || id != 0 {
		t.Errorf("ID(End) = %d, %v; want 0, true", id, ok)
	}
	if _, ok := r.ID("Point"); ok {
		t.Error("ID(Point) should not be found before registration")
	}
}

func TestRegistry_New(t *testing.T) {
	r := NewRegistry()

	tag, err := r.New(3, "hp")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if tag.Name() != "hp" || tag.Variant() != VariantInt {
		t.Errorf("New() = %s, want Int(hp)", tag)
	}

	_, err = r.New(200, "x")
	if !errors.Is(err, ErrUnknownTypeID) {
		t.Fatalf("New(200) error = %v, want ErrUnknownTypeID", err)
	}
	var re *RegistryError
	if !errors.As(err, &re) || re.ID != 200 {
		t.Errorf("New(200) error = %+v, want RegistryError with ID 200", err)
	}
}

func TestRegistry_RegisterCustom(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(100, newPoint); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	root := NewCompound("root", &pointTag{name: "spawn", x: -7, y: 64})

	var buf bytes.Buffer
	if err := Encode(context.Background(), &buf, root, WithRegistry(r)); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	got, err := Decode(context.Background(), &buf, WithRegistry(r))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !Equal(got, root) {
		t.Errorf("Decode() = %s, want %s", got, root)
	}
}

func TestRegistry_UnregisteredCustomVariant(t *testing.T) {
	root := NewCompound("root", &pointTag{name: "spawn"})

	var buf bytes.Buffer
	err := Encode(context.Background(), &buf, root, WithRegistry(NewRegistry()))
	if !errors.Is(err, ErrUnregisteredVariant) {
		t.Errorf("Encode() error = %v, want ErrUnregisteredVariant", err)
	}
}

func TestRegistry_RegisterCollision(t *testing.T) {
	tests := []struct {
		name string
		id   uint8
		f    Factory
	}{
		{"taken id", 3, newPoint},
		{"taken variant", 101, func(name string) Tag { return NewInt(name, 0) }},
		{"reserved id", 0, newPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			before := len(r.Entries())

			err := r.Register(tt.id, tt.f)
			if !errors.Is(err, ErrVariantCollision) {
				t.Errorf("Register() error = %v, want ErrVariantCollision", err)
			}
			if after := len(r.Entries()); after != before {
				t.Errorf("Entries() len = %d after failed Register, want %d", after, before)
			}
		})
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRegister() on a taken id should panic")
		}
	}()
	NewRegistry().MustRegister(1, newPoint)
}

func TestRegistry_NextID(t *testing.T) {
	r := NewRegistry()

	id, err := r.NextID()
	if err != nil {
		t.Fatalf("NextID() error: %v", err)
	}
	if id != 80 {
		t.Errorf("NextID() = %d, want 80", id)
	}

	if err := r.Register(81, newPoint); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	id, err = r.NextID()
	if err != nil {
		t.Fatalf("NextID() error: %v", err)
	}
	if id != 82 {
		t.Errorf("NextID() = %d, want 82 (81 is taken)", id)
	}
}

func TestRegistry_NextIDExhausted(t *testing.T) {
	r := NewRegistry()

	// 80..255 is 176 ids.
	for i := 0; i < 176; i++ {
		if _, err := r.NextID(); err != nil {
			t.Fatalf("NextID() call %d error: %v", i, err)
		}
	}

	_, err := r.NextID()
	if !errors.Is(err, ErrIDSpaceExhausted) {
		t.Errorf("NextID() error = %v, want ErrIDSpaceExhausted", err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	defer Reset()

	if DefaultRegistry() != DefaultRegistry() {
		t.Fatal("DefaultRegistry() should return the same instance")
	}

	if err := Register(120, newPoint); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if _, ok := DefaultRegistry().Lookup(120); !ok {
		t.Fatal("Lookup(120) should find the registered factory")
	}

	Reset()

	if _, ok := DefaultRegistry().Lookup(120); ok {
		t.Error("Reset() should remove custom registrations")
	}
	if _, ok := DefaultRegistry().Lookup(10); !ok {
		t.Error("Reset() should keep built-in registrations")
	}
}

func TestRegistry_NilFactory(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(81, nil); !errors.Is(err, ErrNilFactory) {
		t.Errorf("Register(nil) error = %v, want ErrNilFactory", err)
	}
	if err := r.Register(82, func(string) Tag { return nil }); !errors.Is(err, ErrNilFactory) {
		t.Errorf("Register(nil product) error = %v, want ErrNilFactory", err)
	}
	if _, ok := r.Lookup(81); ok {
		t.Error("rejected factory was registered")
	}
}

func TestRegistry_FactoryReturnsNilLater(t *testing.T) {
	r := NewRegistry()
	calls := 0
	err := r.Register(83, func(name string) Tag {
		calls++
		if calls > 1 {
			return nil
		}
		return newPoint(name)
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if _, err := r.New(83, "p"); !errors.Is(err, ErrNilFactory) {
		t.Errorf("New() error = %v, want ErrNilFactory", err)
	}

	input := []byte{83, 0x00, 0x00, 0, 0, 0, 1, 0, 0, 0, 2}
	tag, err := NewReader(bytes.NewReader(input), WithRegistry(r)).ReadTag()
	if !errors.Is(err, ErrNilFactory) {
		t.Errorf("ReadTag() error = %v, want ErrNilFactory", err)
	}
	if tag != nil {
		t.Errorf("ReadTag() tag = %s, want nil", tag)
	}

	list := []byte{0x09, 0x00, 0x00, 83, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 2}
	if _, err := NewReader(bytes.NewReader(list), WithRegistry(r)).ReadTag(); !errors.Is(err, ErrNilFactory) {
		t.Errorf("ReadTag(list) error = %v, want ErrNilFactory", err)
	}
}

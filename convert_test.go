package nbt

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"
)

type celsius int32

type rgb [3]byte

type sample32 []celsius

type label struct{ text string }

func (l label) String() string { return "label:" + l.text }

// stringerConverter encodes any fmt.Stringer as a String tag.
type stringerConverter struct{}

func (stringerConverter) ToValue(_ *Converters, t Tag) (any, error) { return t.Value(), nil }

func (stringerConverter) ToTag(_ *Converters, name string, v any) (Tag, error) {
	return NewString(name, v.(fmt.Stringer).String()), nil
}

func TestConverters_BuiltinSymmetry(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		variant Variant
	}{
		{"int8", int8(-5), VariantByte},
		{"int16", int16(300), VariantShort},
		{"int32", int32(1 << 20), VariantInt},
		{"int64", int64(1 << 40), VariantLong},
		{"float32", float32(1.5), VariantFloat},
		{"float64", 2.25, VariantDouble},
		{"string", "hello", VariantString},
		{"bytes", []byte{1, 2}, VariantByteArray},
		{"int16s", []int16{1, -1}, VariantShortArray},
		{"int32s", []int32{7}, VariantIntArray},
		{"int64s", []int64{8, 9}, VariantLongArray},
		{"float32s", []float32{0.5}, VariantFloatArray},
		{"float64s", []float64{0.25}, VariantDoubleArray},
		{"strings", []string{"a", "b"}, VariantStringArray},
		{"list", []any{int32(1), int32(2)}, VariantList},
		{"compound", map[string]any{"a": "x", "b": int8(1)}, VariantCompound},
		{"objects", Objects{"x", true}, VariantSerializableArray},
		{"opaque", uint64(9), VariantSerializable},
	}

	c := NewConverters()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := c.ToTag("v", tt.value)
			if err != nil {
				t.Fatalf("ToTag() error: %v", err)
			}
			if tag.Variant() != tt.variant {
				t.Errorf("ToTag() variant = %s, want %s", tag.Variant(), tt.variant)
			}
			if tag.Name() != "v" {
				t.Errorf("ToTag() name = %q, want v", tag.Name())
			}

			got, err := c.ToValue(tag)
			if err != nil {
				t.Fatalf("ToValue() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.value) {
				t.Errorf("ToValue() = %#v, want %#v", got, tt.value)
			}
		})
	}
}

func TestConverters_Fallback(t *testing.T) {
	n := int32(11)

	tests := []struct {
		name  string
		value any
		want  Tag
	}{
		{"named scalar", celsius(21), NewInt("v", 21)},
		{"pointer", &n, NewInt("v", 11)},
		{"int", 7, NewLong("v", 7)},
		{"named slice", sample32{1, 2}, NewIntArray("v", []int32{1, 2})},
		{"byte array", rgb{1, 2, 3}, NewByteArray("v", []byte{1, 2, 3})},
		{"string map", map[string]int{"a": 1}, NewCompound("v", NewLong("a", 1))},
		{"unsigned", uint(3), NewSerializable("v", uint(3))},
	}

	c := NewConverters()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ToTag("v", tt.value)
			if err != nil {
				t.Fatalf("ToTag() error: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("ToTag() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConverters_InterfaceFallback(t *testing.T) {
	c := NewConverters()
	stringer := reflect.TypeFor[fmt.Stringer]()
	if err := c.RegisterType(stringer, stringerConverter{}); err != nil {
		t.Fatalf("RegisterType() error: %v", err)
	}

	got, err := c.ToTag("l", label{text: "hi"})
	if err != nil {
		t.Fatalf("ToTag() error: %v", err)
	}
	if !Equal(got, NewString("l", "label:hi")) {
		t.Errorf("ToTag() = %s, want String(l) { label:hi }", got)
	}

	// Canonical types win over interfaces.
	got, err = c.ToTag("n", celsius(4))
	if err != nil {
		t.Fatalf("ToTag() error: %v", err)
	}
	if got.Variant() != VariantInt {
		t.Errorf("ToTag(celsius) variant = %s, want Int", got.Variant())
	}
}

func TestConverters_Closure(t *testing.T) {
	c := NewConverters()
	stringer := reflect.TypeFor[fmt.Stringer]()
	if err := c.RegisterType(stringer, stringerConverter{}); err != nil {
		t.Fatalf("RegisterType() error: %v", err)
	}

	tests := []struct {
		name string
		typ  reflect.Type
		want []reflect.Type
	}{
		{
			"named scalar",
			reflect.TypeFor[celsius](),
			[]reflect.Type{reflect.TypeFor[celsius](), reflect.TypeFor[int32](), anyType},
		},
		{
			"pointer",
			reflect.TypeFor[*celsius](),
			[]reflect.Type{reflect.TypeFor[*celsius](), reflect.TypeFor[celsius](), reflect.TypeFor[int32](), anyType},
		},
		{
			"named slice",
			reflect.TypeFor[sample32](),
			[]reflect.Type{reflect.TypeFor[sample32](), reflect.TypeFor[[]int32](), slicesAny, anyType},
		},
		{
			"byte array",
			reflect.TypeFor[rgb](),
			[]reflect.Type{reflect.TypeFor[rgb](), bytesType, slicesAny, anyType},
		},
		{
			"string map",
			reflect.TypeFor[map[string]int](),
			[]reflect.Type{reflect.TypeFor[map[string]int](), mapAny, anyType},
		},
		{
			"stringer",
			reflect.TypeFor[label](),
			[]reflect.Type{reflect.TypeFor[label](), stringer, anyType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Closure(tt.typ)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Closure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConverters_Nil(t *testing.T) {
	c := NewConverters()

	tag, err := c.ToTag("x", nil)
	if tag != nil || err != nil {
		t.Errorf("ToTag(nil) = %v, %v, want nil, nil", tag, err)
	}
	v, err := c.ToValue(nil)
	if v != nil || err != nil {
		t.Errorf("ToValue(nil) = %v, %v, want nil, nil", v, err)
	}
}

func TestConverters_NoConverterForVariant(t *testing.T) {
	_, err := NewConverters().ToValue(&pointTag{name: "p", x: 1, y: 2})
	if !errors.Is(err, ErrNoConverter) {
		t.Errorf("ToValue(Point) error = %v, want ErrNoConverter", err)
	}
	var ce *ConversionError
	if !errors.As(err, &ce) || ce.Variant != "Point" {
		t.Errorf("ToValue(Point) error = %#v, want ConversionError for Point", err)
	}
}

func TestConverters_ListErrors(t *testing.T) {
	c := NewConverters()

	if _, err := c.ToTag("l", []any{}); !errors.Is(err, ErrEmptyList) {
		t.Errorf("ToTag(empty) error = %v, want ErrEmptyList", err)
	}
	if _, err := c.ToTag("l", []any{int32(1), "x"}); !errors.Is(err, ErrHeterogeneousList) {
		t.Errorf("ToTag(mixed) error = %v, want ErrHeterogeneousList", err)
	}
	if _, err := c.ToTag("l", []any{int32(1), nil}); !errors.Is(err, ErrNilTag) {
		t.Errorf("ToTag(nil element) error = %v, want ErrNilTag", err)
	}
}

func TestConverters_CompoundSkipsNil(t *testing.T) {
	got, err := NewConverters().ToTag("c", map[string]any{"b": "x", "a": nil})
	if err != nil {
		t.Fatalf("ToTag() error: %v", err)
	}
	comp := got.(*CompoundTag)
	if comp.Len() != 1 || !comp.Has("b") {
		t.Errorf("ToTag() = %s, want only child b", comp)
	}
}

func TestConverters_RegisterCollision(t *testing.T) {
	c := NewConverters()

	err := c.Register(VariantInt, reflect.TypeFor[celsius](), stringerConverter{})
	if !errors.Is(err, ErrVariantCollision) {
		t.Errorf("Register(taken variant) error = %v, want ErrVariantCollision", err)
	}
	err = c.Register("Celsius", reflect.TypeFor[int32](), stringerConverter{})
	if !errors.Is(err, ErrVariantCollision) {
		t.Errorf("Register(taken type) error = %v, want ErrVariantCollision", err)
	}
	err = c.RegisterType(reflect.TypeFor[string](), stringerConverter{})
	if !errors.Is(err, ErrVariantCollision) {
		t.Errorf("RegisterType(taken type) error = %v, want ErrVariantCollision", err)
	}
}

func TestConverters_CustomVariant(t *testing.T) {
	c := NewConverters()
	if err := c.Register("Point", reflect.TypeFor[[2]int32](), pointConverter{}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	tag, err := c.ToTag("p", [2]int32{3, 4})
	if err != nil {
		t.Fatalf("ToTag() error: %v", err)
	}
	if !Equal(tag, &pointTag{name: "p", x: 3, y: 4}) {
		t.Errorf("ToTag() = %s", tag)
	}

	v, err := c.ToValue(tag)
	if err != nil {
		t.Fatalf("ToValue() error: %v", err)
	}
	if v != [2]int32{3, 4} {
		t.Errorf("ToValue() = %v", v)
	}
}

type pointConverter struct{}

func (pointConverter) ToValue(_ *Converters, t Tag) (any, error) { return t.Value(), nil }

func (pointConverter) ToTag(_ *Converters, name string, v any) (Tag, error) {
	p := v.([2]int32)
	return &pointTag{name: name, x: p[0], y: p[1]}, nil
}

func TestDefaultConverters(t *testing.T) {
	if DefaultConverters() != DefaultConverters() {
		t.Error("DefaultConverters() returned different registries")
	}
	tag, err := ToTag("x", int16(3))
	if err != nil {
		t.Fatalf("ToTag() error: %v", err)
	}
	v, err := ToValue(tag)
	if err != nil || v != int16(3) {
		t.Errorf("ToValue() = %v, %v", v, err)
	}
}

func TestCoerce_Range(t *testing.T) {
	if _, err := coerce[int8](int64(127)); err != nil {
		t.Errorf("coerce[int8](127) error: %v", err)
	}
	if _, err := coerce[int8](int64(128)); !errors.Is(err, ErrValueTooLarge) {
		t.Errorf("coerce[int8](128) error = %v, want ErrValueTooLarge", err)
	}
	if _, err := coerce[[]int16]([]int64{1, 1 << 20}); !errors.Is(err, ErrValueTooLarge) {
		t.Errorf("coerce[[]int16] error = %v, want ErrValueTooLarge", err)
	}
	if _, err := coerce[int64](uint64(1 << 63)); !errors.Is(err, ErrValueTooLarge) {
		t.Errorf("coerce[int64](1<<63) error = %v, want ErrValueTooLarge", err)
	}
	if _, err := coerce[int32]("x"); !errors.Is(err, ErrNoConverter) {
		t.Errorf("coerce[int32](string) error = %v, want ErrNoConverter", err)
	}
}

func TestConverters_TagSymmetry(t *testing.T) {
	list, err := NewListOf("list", NewInt("", 1), NewInt("", 2))
	if err != nil {
		t.Fatalf("NewListOf() error: %v", err)
	}
	items, err := NewListOf("items",
		NewCompound("", NewString("id", "stone"), NewByte("count", 3)),
		NewCompound("", NewString("id", "torch"), NewByte("count", 1)),
	)
	if err != nil {
		t.Fatalf("NewListOf() error: %v", err)
	}
	inner, _ := NewListOf("", NewShort("", 7))
	lists, err := NewListOf("lists", inner)
	if err != nil {
		t.Fatalf("NewListOf() error: %v", err)
	}
	ints, _ := NewListOf("ints", NewLong("", 1), NewLong("", 2))
	nested := NewCompound("nested",
		ints,
		NewCompound("inner", NewString("label", "x"), NewDouble("d", 0.5)),
		NewIntArray("ia", []int32{1}),
	)

	tags := []Tag{
		NewByte("byte", -1),
		NewShort("short", 2),
		NewInt("int", 3),
		NewLong("long", 4),
		NewFloat("float", 5.5),
		NewDouble("double", 6.25),
		NewString("string", "seven"),
		NewByteArray("byteArray", []byte{8, 9}),
		NewShortArray("shortArray", []int16{10}),
		NewIntArray("intArray", []int32{11, 12}),
		NewLongArray("longArray", []int64{13}),
		NewFloatArray("floatArray", []float32{14}),
		NewDoubleArray("doubleArray", []float64{15}),
		NewStringArray("stringArray", []string{"a", "b"}),
		list,
		items,
		lists,
		nested,
		NewSerializableArray("objects", []any{"x", true, int64(3)}),
		NewSerializable("opaque", uint64(16)),
	}

	c := NewConverters()
	for _, tag := range tags {
		t.Run(tag.Name(), func(t *testing.T) {
			v, err := c.ToValue(tag)
			if err != nil {
				t.Fatalf("ToValue() error: %v", err)
			}
			got, err := c.ToTag(tag.Name(), v)
			if err != nil {
				t.Fatalf("ToTag() error: %v", err)
			}
			if !Equal(got, tag) {
				t.Errorf("ToTag(ToValue()) = %s, want %s", got, tag)
			}
		})
	}
}

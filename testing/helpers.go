// Package testing provides test utilities for nbt.
package testing

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/nbt"
)

// Sample returns a Compound named "root" holding one child of every
// built-in variant, plus a nested Compound and a List of Compounds.
//
// Serializable payloads include integers and nested maps, which each opaque
// codec decodes into its own generic shape.
func Sample() *nbt.CompoundTag {
	root := nbt.NewCompound("root")
	root.SetByte("byte", math.MinInt8)
	root.SetShort("short", math.MaxInt16)
	root.SetInt("int", -42)
	root.SetLong("long", math.MaxInt64)
	root.SetFloat("float", 1.5)
	root.SetDouble("double", -0.25)
	root.SetString("string", "héllo wörld")
	root.SetByteArray("byteArray", []byte{0, 1, 0xff})
	root.SetShortArray("shortArray", []int16{-1, 0, 1})
	root.SetIntArray("intArray", []int32{math.MinInt32, 7})
	root.SetLongArray("longArray", []int64{1 << 40})
	root.SetFloatArray("floatArray", []float32{0.5, -2})
	root.SetDoubleArray("doubleArray", []float64{math.Pi})
	root.SetStringArray("stringArray", []string{"", "a", "bc"})
	root.SetSerializable("serializable", "opaque")
	root.SetSerializable("serializableInt", 42)
	root.SetSerializable("serializableMap", map[string]any{
		"level": 3,
		"name":  "spawn",
		"tags":  []any{"a", "b"},
		"pos":   map[string]any{"x": 1.5, "y": -64},
	})
	root.Put(nbt.NewSerializableArray("serializableArray", []any{"x", true, 7}))
	root.Put(nbt.NewList("emptyList", nbt.VariantEnd))

	ints, err := nbt.NewListOf("ints", nbt.NewInt("", 1), nbt.NewInt("", 2), nbt.NewInt("", 3))
	if err != nil {
		panic(err)
	}
	root.Put(ints)

	items, err := nbt.NewListOf("items",
		nbt.NewCompound("", nbt.NewString("id", "stone"), nbt.NewByte("count", 64)),
		nbt.NewCompound("", nbt.NewString("id", "torch"), nbt.NewByte("count", 3)),
	)
	if err != nil {
		panic(err)
	}
	root.Put(items)

	root.Put(nbt.NewCompound("nested",
		nbt.NewCompound("deeper", nbt.NewLong("ticks", 24000)),
		nbt.NewString("label", "inner"),
	))
	return root
}

// Variants returns the variants present in Sample, excluding End.
func Variants() []nbt.Variant {
	return []nbt.Variant{
		nbt.VariantByte, nbt.VariantShort, nbt.VariantInt, nbt.VariantLong,
		nbt.VariantFloat, nbt.VariantDouble, nbt.VariantByteArray, nbt.VariantString,
		nbt.VariantList, nbt.VariantCompound, nbt.VariantIntArray, nbt.VariantLongArray,
		nbt.VariantDoubleArray, nbt.VariantFloatArray, nbt.VariantSerializableArray,
		nbt.VariantSerializable, nbt.VariantShortArray, nbt.VariantStringArray,
	}
}

// MustMarshal encodes tag, failing the test on error.
func MustMarshal(t testing.TB, tag nbt.Tag, opts ...nbt.Option) []byte {
	t.Helper()
	data, err := nbt.Marshal(context.Background(), tag, opts...)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	return data
}

// RoundTrip encodes and decodes tag and fails the test if the result is
// not Equal to tag. It returns the decoded tag.
func RoundTrip(t testing.TB, tag nbt.Tag, opts ...nbt.Option) nbt.Tag {
	t.Helper()
	data := MustMarshal(t, tag, opts...)
	got, err := nbt.Unmarshal(context.Background(), data, opts...)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := Diff(tag, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
	return got
}

// Diff returns a readable diff of the renderings of want and got, or ""
// if they are Equal.
func Diff(want, got nbt.Tag) string {
	if nbt.Equal(want, got) {
		return ""
	}
	diff := cmp.Diff(render(want), render(got))
	if diff == "" {
		// Equal renderings can hide differences such as child order.
		return "tags differ but render identically"
	}
	return diff
}

func render(t nbt.Tag) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Player is a struct used to exercise the struct converter.
type Player struct {
	Name      string            `nbt:"name"`
	Health    float32           `nbt:"health"`
	Level     int               `nbt:"level"`
	Position  Vec3              `nbt:"pos"`
	Inventory []Item            `nbt:"inventory"`
	Tags      []string          `nbt:"tags"`
	Stats     map[string]int32  `nbt:"stats"`
	Spawn     *Vec3             `nbt:"spawn"`
	Meta      map[string]string `nbt:"meta"`
	Session   string            `nbt:"-"`
}

// Vec3 is a nested struct of Player.
type Vec3 struct {
	X, Y, Z float64
}

// Item is a struct held in a Player slice.
type Item struct {
	ID    string `nbt:"id"`
	Count int8   `nbt:"count"`
}

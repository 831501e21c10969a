package nbt_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/zoobzio/nbt"
	nbttest "github.com/zoobzio/nbt/testing"
)

func TestMarshal_RootScenario(t *testing.T) {
	root := nbt.NewCompound("root",
		nbt.NewInt("a", 42),
		nbt.NewString("b", "x"),
		nbt.NewList("c", nbt.VariantEnd),
	)

	want := []byte{
		0x0a, 0x00, 0x04, 'r', 'o', 'o', 't',
		0x03, 0x00, 0x01, 'a', 0x00, 0x00, 0x00, 0x2a,
		0x08, 0x00, 0x01, 'b', 0x00, 0x01, 'x',
		0x09, 0x00, 0x01, 'c', 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00,
	}

	got := nbttest.MustMarshal(t, root)
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal() = % x, want % x", got, want)
	}

	decoded, err := nbt.Unmarshal(context.Background(), got)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := nbttest.Diff(root, decoded); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Sample(t *testing.T) {
	got := nbttest.RoundTrip(t, nbttest.Sample())

	comp, ok := got.(*nbt.CompoundTag)
	if !ok {
		t.Fatalf("decoded root is %T, want *nbt.CompoundTag", got)
	}
	want := nbttest.Sample().Keys()
	keys := comp.Keys()
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestUnmarshal_MissingEnd(t *testing.T) {
	data := nbttest.MustMarshal(t, nbt.NewCompound("root", nbt.NewInt("a", 1)))
	truncated := data[:len(data)-1]

	tag, err := nbt.Unmarshal(context.Background(), truncated)
	if !errors.Is(err, nbt.ErrMalformedStream) {
		t.Errorf("Unmarshal() error = %v, want ErrMalformedStream", err)
	}
	if tag != nil {
		t.Errorf("Unmarshal() tag = %s, want nil", tag)
	}
}

func TestUnmarshal_MaxDepth(t *testing.T) {
	deep := nbt.NewCompound("l0",
		nbt.NewCompound("l1",
			nbt.NewCompound("l2", nbt.NewInt("x", 1)),
		),
	)
	data := nbttest.MustMarshal(t, deep)

	if _, err := nbt.Unmarshal(context.Background(), data, nbt.WithMaxDepth(3)); err != nil {
		t.Errorf("Unmarshal(depth 3) error: %v", err)
	}

	tag, err := nbt.Unmarshal(context.Background(), data, nbt.WithMaxDepth(2))
	if !errors.Is(err, nbt.ErrMaxDepth) {
		t.Errorf("Unmarshal(depth 2) error = %v, want ErrMaxDepth", err)
	}
	if !errors.Is(err, nbt.ErrMalformedStream) {
		t.Errorf("Unmarshal(depth 2) error = %v, want ErrMalformedStream", err)
	}
	if tag != nil {
		t.Error("Unmarshal() returned a partial tree")
	}
}

func TestUnmarshal_Empty(t *testing.T) {
	_, err := nbt.Unmarshal(context.Background(), nil)
	if !errors.Is(err, io.EOF) {
		t.Errorf("Unmarshal(nil) error = %v, want io.EOF", err)
	}
}

func TestEncode_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := nbt.Encode(context.Background(), &buf, nil); !errors.Is(err, nbt.ErrNilTag) {
		t.Errorf("Encode(nil) error = %v, want ErrNilTag", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode(nil) wrote %d bytes", buf.Len())
	}
}


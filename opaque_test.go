package nbt

import (
	"context"
	"testing"

	"github.com/zoobzio/nbt/bson"
	"github.com/zoobzio/nbt/cbor"
	"github.com/zoobzio/nbt/json"
	"github.com/zoobzio/nbt/msgpack"
	"github.com/zoobzio/nbt/yaml"
)

func TestSerializable_RoundTripEqual(t *testing.T) {
	codecs := map[string]Codec{
		"msgpack": msgpack.New(),
		"json":    json.New(),
		"yaml":    yaml.New(),
		"cbor":    cbor.New(),
		"bson":    bson.New(),
	}
	tags := []Tag{
		NewSerializable("int", 5),
		NewSerializable("uint", uint16(9)),
		NewSerializable("float", 2.5),
		NewSerializable("map", map[string]any{"a": 1, "b": []any{"x", 2}}),
		NewSerializable("struct", struct {
			Name  string `json:"name" msgpack:"name" yaml:"name" cbor:"name" bson:"name"`
			Level int    `json:"level" msgpack:"level" yaml:"level" cbor:"level" bson:"level"`
		}{Name: "ada", Level: 3}),
		NewSerializableArray("array", []any{1, "two", map[string]any{"three": 3}}),
	}

	for name, codec := range codecs {
		for _, tag := range tags {
			t.Run(name+"/"+tag.Name(), func(t *testing.T) {
				data, err := Marshal(context.Background(), tag, WithCodec(codec))
				if err != nil {
					t.Fatalf("Marshal() error: %v", err)
				}
				got, err := Unmarshal(context.Background(), data, WithCodec(codec))
				if err != nil {
					t.Fatalf("Unmarshal() error: %v", err)
				}
				if !Equal(tag, got) {
					t.Errorf("round-trip = %s, want %s", got, tag)
				}
			})
		}
	}
}

func TestSerializable_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same int", 1, 1, true},
		{"int widths", 1, int8(1), true},
		{"int and float", 1, float64(1), true},
		{"maps", map[string]any{"a": 1}, map[string]any{"a": int64(1)}, true},
		{"different ints", 1, 2, false},
		{"different maps", map[string]any{"a": 1}, map[string]any{"a": 2}, false},
		{"string and int", "1", 1, false},
		{"nil and value", nil, 0, false},
		{"no json form", make(chan int), make(chan int), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSerializable("s", tt.a).Equal(NewSerializable("s", tt.b))
			if got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

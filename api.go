// Package nbt implements NBT, a self-describing tree-shaped binary format.
//
// An NBT document is a tree of named, typed tags. Every tag on the wire is
// framed as a one-byte type-id, a length-prefixed UTF-8 name and a
// variant-specific payload. Compound tags hold an ordered set of uniquely
// named children terminated by an End byte (0x00); List tags hold a
// homogeneous sequence of unnamed payloads.
//
// # Tag Model
//
// Each variant is a concrete type implementing Tag:
//
//	root := nbt.NewCompound("root",
//	    nbt.NewInt("a", 42),
//	    nbt.NewString("b", "x"),
//	    nbt.NewList("c", nbt.VariantEnd),
//	)
//
// Array tags return copies from Values and expose At/SetAt for in-place edits.
// Clone is always deep and Equal compares names and values recursively.
//
// # Encoding
//
//	data, err := nbt.Marshal(ctx, root)
//	tag, err := nbt.Unmarshal(ctx, data)
//
// For streams, NewReader and NewWriter operate directly on the caller's
// io.Reader/io.Writer and never buffer or close it.
//
// # Type Registry
//
// A Registry maps wire type-ids to variant factories. NewRegistry returns a
// registry holding every built-in variant; custom variants are added with
// Register, typically with an id from NextID:
//
//	reg := nbt.NewRegistry()
//	id, _ := reg.NextID()
//	reg.MustRegister(id, func(name string) nbt.Tag { return newUUIDTag(name) })
//	tag, err := nbt.Unmarshal(ctx, data, nbt.WithRegistry(reg))
//
// # Converters
//
// Converters translate tag trees to and from plain Go values:
//
//	v, _ := nbt.ToValue(root)          // map[string]any{"a": int32(42), ...}
//	tag, _ := nbt.ToTag("root", v)
//
// Values whose exact type has no converter resolve through a deterministic
// fallback closure (pointer element, canonical unnamed type, registered
// interfaces, then the opaque Serializable fallback).
//
// # Opaque Payloads
//
// Serializable tags carry arbitrary Go values encoded by a Codec. The default
// is MessagePack; the following codec implementations are available as
// subpackages:
//
//   - msgpack - MessagePack encoding (application/msgpack)
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - cbor - CBOR encoding (application/cbor)
//   - bson - BSON encoding (application/bson)
package nbt

// Codec provides content-type aware marshaling for opaque tag payloads.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/msgpack").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

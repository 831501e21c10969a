// Package msgpack provides a MessagePack codec for Serializable tag payloads.
// It is the default codec of readers and writers.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
)

// ContentType is the MIME type for MessagePack.
const ContentType = "application/msgpack"

// Codec encodes opaque values as MessagePack.
type Codec struct{}

// New returns a MessagePack codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes v as MessagePack.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v. Maps decode into
// map[string]any when v points to an empty interface.
func (c *Codec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

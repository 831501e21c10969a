// Package json provides a JSON codec for Serializable tag payloads.
package json

import (
	"encoding/json"
)

// ContentType is the MIME type for JSON.
const ContentType = "application/json"

// Codec encodes opaque values as JSON.
type Codec struct{}

// New returns a JSON codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for JSON.
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes v as JSON.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v. Numbers decoded into an empty
// interface become float64.
func (c *Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

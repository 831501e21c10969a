// Package yaml provides a YAML codec for Serializable tag payloads.
package yaml

import (
	"gopkg.in/yaml.v3"
)

// ContentType is the MIME type for YAML.
const ContentType = "application/yaml"

// Codec encodes opaque values as YAML.
type Codec struct{}

// New returns a YAML codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for YAML.
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes v as YAML.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

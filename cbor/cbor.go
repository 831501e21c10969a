// Package cbor provides a CBOR codec for Serializable tag payloads.
//
// Values are encoded with Core Deterministic Encoding, so equal values
// always produce identical bytes. This makes cbor the codec of choice for
// fingerprinting trees that hold Serializable tags.
package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// ContentType is the MIME type for CBOR.
const ContentType = "application/cbor"

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: encoder initialization failed: " + err.Error())
	}

	// Opaque values decode into any; string-keyed maps match what the
	// other codecs produce.
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: decoder initialization failed: " + err.Error())
	}
}

// Codec encodes opaque values as deterministic CBOR.
type Codec struct{}

// New returns a CBOR codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for CBOR.
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes v as CBOR using Core Deterministic Encoding.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

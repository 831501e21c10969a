// Package bson provides a BSON codec for Serializable tag payloads.
//
// BSON documents must be maps or structs, so every value is wrapped in a
// single-field document {"v": value}.
package bson

import (
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

// ContentType is the MIME type for BSON.
const ContentType = "application/bson"

// Codec encodes opaque values as wrapped BSON documents.
type Codec struct{}

// New returns a BSON codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for BSON.
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes v as the document {"v": v}.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(bson.M{"v": v})
}

// Unmarshal decodes a document produced by Marshal and stores its "v"
// field in v, which must be a non-nil pointer. Nested documents decoded
// into an empty interface become bson.M values.
func (c *Codec) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("bson: unmarshal target must be a non-nil pointer, got %T", v)
	}

	holder := reflect.New(reflect.StructOf([]reflect.StructField{{
		Name: "V",
		Type: rv.Elem().Type(),
		Tag:  `bson:"v"`,
	}}))

	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return err
	}
	dec.DefaultDocumentM()
	if err := dec.Decode(holder.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(holder.Elem().Field(0))
	return nil
}

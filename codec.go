package nbt

import (
	"bytes"
	"context"
	"io"
	"time"
)

// Decode reads one complete tag from r.
//
// Signals are emitted around the operation. A failed decode returns a nil
// Tag; no partially built tree is exposed.
func Decode(ctx context.Context, r io.Reader, opts ...Option) (Tag, error) {
	rd := NewReader(r, opts...)
	contentType := rd.Codec().ContentType()

	start := time.Now()
	emitDecodeStart(ctx, contentType)

	tag, err := rd.ReadTag()
	if err != nil {
		tag = nil
	}
	emitDecodeComplete(ctx, contentType, tag, time.Since(start), err)
	return tag, err
}

// Unmarshal decodes one complete tag from data.
func Unmarshal(ctx context.Context, data []byte, opts ...Option) (Tag, error) {
	return Decode(ctx, bytes.NewReader(data), opts...)
}

// Encode writes tag to w as a complete tag: type-id, name and payload.
func Encode(ctx context.Context, w io.Writer, tag Tag, opts ...Option) error {
	if tag == nil {
		return ErrNilTag
	}
	cw := &countingWriter{w: w}
	wr := NewWriter(cw, opts...)
	contentType := wr.Codec().ContentType()

	start := time.Now()
	emitEncodeStart(ctx, contentType, tag)

	err := wr.WriteTag(tag)
	emitEncodeComplete(ctx, contentType, tag, cw.n, time.Since(start), err)
	return err
}

// Marshal encodes tag into a new byte slice.
func Marshal(ctx context.Context, tag Tag, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(ctx, &buf, tag, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// countingWriter tracks the number of bytes written for signal payloads.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

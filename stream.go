package nbt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Reader decodes tags and wire primitives from an io.Reader.
//
// The Reader reads exactly the bytes it needs and never buffers ahead or
// closes the underlying stream, so the caller may continue reading after a
// tag.
type Reader struct {
	r     io.Reader
	cfg   config
	depth int
	buf   [8]byte
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	return &Reader{
		r:   r,
		cfg: newConfig(opts),
	}
}

// Registry returns the type registry used by the Reader.
func (r *Reader) Registry() *Registry { return r.cfg.registry }

// Codec returns the codec used for Serializable payloads.
func (r *Reader) Codec() Codec { return r.cfg.codec }

// ReadTag reads one complete tag: type-id, name and payload.
//
// It returns io.EOF if the stream is exhausted before the first byte and
// ErrEndTag if the next tag is a bare End tag. A failed read returns a nil Tag.
func (r *Reader) ReadTag() (Tag, error) {
	id, err := r.readID()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, newStreamError("read type id", nil, err)
	}
	if id == 0 {
		return nil, ErrEndTag
	}
	return r.readNamed(id)
}

// readID reads a type-id byte, returning the stream's error untouched.
func (r *Reader) readID() (uint8, error) {
	b := r.buf[:1]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return 0, err
	}
	return b[0], nil
}

// readNamed reads the name and payload of a tag whose id was already consumed.
func (r *Reader) readNamed(id uint8) (Tag, error) {
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	tag, err := r.cfg.registry.New(id, name)
	if err != nil {
		return nil, err
	}
	if err := tag.ReadPayload(r); err != nil {
		return nil, err
	}
	return tag, nil
}

// enter records one level of nesting, failing past the configured depth.
func (r *Reader) enter(op string) error {
	if r.cfg.maxDepth > 0 && r.depth >= r.cfg.maxDepth {
		return newStreamError(op, ErrMalformedStream, ErrMaxDepth)
	}
	r.depth++
	return nil
}

func (r *Reader) leave() { r.depth-- }

// fill reads exactly n bytes into the scratch buffer.
func (r *Reader) fill(op string, n int) ([]byte, error) {
	b := r.buf[:n]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, readError(op, err)
	}
	return b, nil
}

// readError maps stream exhaustion to ErrMalformedStream.
func readError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newStreamError(op, ErrMalformedStream, io.ErrUnexpectedEOF)
	}
	return newStreamError(op, nil, err)
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.fill("read uint8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads one signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.fill("read int8", 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.fill("read uint16", 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	b, err := r.fill("read int16", 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.fill("read int32", 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadInt64 reads a big-endian signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.fill("read int64", 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadFloat32 reads a big-endian IEEE754 32-bit float.
func (r *Reader) ReadFloat32() (float32, error) {
	b, err := r.fill("read float32", 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadFloat64 reads a big-endian IEEE754 64-bit float.
func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.fill("read float64", 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadLength reads a signed 32-bit element count. Negative counts are malformed.
func (r *Reader) ReadLength() (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, newStreamError("read length", ErrMalformedStream, fmt.Errorf("negative length %d", n))
	}
	return int(n), nil
}

// ReadBytes reads exactly n bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(min(n, 64*maxPrealloc))
	if _, err := io.CopyN(&buf, r.r, int64(n)); err != nil {
		return nil, readError("read bytes", err)
	}
	return buf.Bytes(), nil
}

// ReadString reads a UTF-8 string with an unsigned 16-bit byte length prefix.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Writer encodes tags and wire primitives to an io.Writer.
// The Writer never buffers or closes the underlying stream.
type Writer struct {
	w   io.Writer
	cfg config
	buf [8]byte
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{
		w:   w,
		cfg: newConfig(opts),
	}
}

// Registry returns the type registry used by the Writer.
func (w *Writer) Registry() *Registry { return w.cfg.registry }

// Codec returns the codec used for Serializable payloads.
func (w *Writer) Codec() Codec { return w.cfg.codec }

// WriteTag writes one complete tag: type-id, name and payload.
func (w *Writer) WriteTag(t Tag) error {
	if t == nil {
		return ErrNilTag
	}
	id, ok := w.cfg.registry.ID(t.Variant())
	if !ok || id == 0 {
		return newRegistryError(ErrUnregisteredVariant, -1, t.Variant())
	}
	if err := w.WriteUint8(id); err != nil {
		return err
	}
	if err := w.WriteString(t.Name()); err != nil {
		return err
	}
	return t.WritePayload(w)
}

func (w *Writer) write(op string, b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return newStreamError(op, nil, err)
	}
	return nil
}

// WriteUint8 writes one unsigned byte.
func (w *Writer) WriteUint8(v uint8) error {
	w.buf[0] = v
	return w.write("write uint8", w.buf[:1])
}

// WriteInt8 writes one signed byte.
func (w *Writer) WriteInt8(v int8) error {
	w.buf[0] = byte(v)
	return w.write("write int8", w.buf[:1])
}

// WriteUint16 writes a big-endian unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.write("write uint16", w.buf[:2])
}

// WriteInt16 writes a big-endian signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) error {
	binary.BigEndian.PutUint16(w.buf[:2], uint16(v))
	return w.write("write int16", w.buf[:2])
}

// WriteInt32 writes a big-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	return w.write("write int32", w.buf[:4])
}

// WriteInt64 writes a big-endian signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) error {
	binary.BigEndian.PutUint64(w.buf[:8], uint64(v))
	return w.write("write int64", w.buf[:8])
}

// WriteFloat32 writes a big-endian IEEE754 32-bit float.
func (w *Writer) WriteFloat32(v float32) error {
	binary.BigEndian.PutUint32(w.buf[:4], math.Float32bits(v))
	return w.write("write float32", w.buf[:4])
}

// WriteFloat64 writes a big-endian IEEE754 64-bit float.
func (w *Writer) WriteFloat64(v float64) error {
	binary.BigEndian.PutUint64(w.buf[:8], math.Float64bits(v))
	return w.write("write float64", w.buf[:8])
}

// WriteLength writes a signed 32-bit element count.
func (w *Writer) WriteLength(n int) error {
	if n < 0 || n > math.MaxInt32 {
		return newStreamError("write length", ErrValueTooLarge, fmt.Errorf("length %d", n))
	}
	return w.WriteInt32(int32(n))
}

// WriteBytes writes b verbatim.
func (w *Writer) WriteBytes(b []byte) error {
	return w.write("write bytes", b)
}

// WriteString writes a UTF-8 string with an unsigned 16-bit byte length prefix.
func (w *Writer) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return newStreamError("write string", ErrValueTooLarge, fmt.Errorf("%d bytes", len(s)))
	}
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	return w.write("write string", []byte(s))
}

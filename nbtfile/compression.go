package nbtfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects how a file body is compressed.
type Compression int

const (
	None Compression = 0 // None writes the tag stream as is.
	Gzip Compression = 1 // Gzip is the conventional NBT file compression.
	Zstd Compression = 2 // Zstd trades compatibility for speed and ratio.
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", int(c))
}

// ParseCompression parses a compression name as printed by String.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	}
	return None, fmt.Errorf("unsupported compression %q", s)
}

var (
	gzipMagic = []byte{0x1f, 0x8b, 0x08}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Detect reports the compression of a stream from its leading bytes.
// A raw tag stream starts with a type-id and never matches either magic.
func Detect(source []byte) Compression {
	switch {
	case bytes.HasPrefix(source, gzipMagic):
		return Gzip
	case bytes.HasPrefix(source, zstdMagic):
		return Zstd
	}
	return None
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// decompress wraps r in the decompressor its leading bytes call for.
func decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	buf := bufio.NewReader(r)
	magic, err := buf.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, None, err
	}

	c := Detect(magic)
	switch c {
	case Gzip:
		gz, err := gzip.NewReader(buf)
		if err != nil {
			return nil, c, err
		}
		return gz, c, nil
	case Zstd:
		zr, err := zstd.NewReader(buf)
		if err != nil {
			return nil, c, err
		}
		return readCloser{Reader: zr, close: func() error { zr.Close(); return nil }}, c, nil
	}
	return io.NopCloser(buf), c, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// compress wraps w in a compressor. Closing the result flushes the
// compressor but leaves w open.
func compress(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	}
	return nil, fmt.Errorf("unsupported compression %s", c)
}

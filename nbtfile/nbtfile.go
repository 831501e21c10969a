// Package nbtfile reads and writes NBT files: a single named root Compound,
// usually gzip-compressed.
//
// Reads detect gzip and zstd from the stream's magic bytes, so any file
// written by this package reads back without options.
package nbtfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zoobzio/nbt"
)

// ReadFile reads the root Compound stored at path.
func ReadFile(ctx context.Context, path string, opts ...Option) (*nbt.CompoundTag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return read(ctx, f, path, newConfig(opts))
}

// Read reads a root Compound from r.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*nbt.CompoundTag, error) {
	return read(ctx, r, "", newConfig(opts))
}

func read(ctx context.Context, r io.Reader, path string, cfg config) (root *nbt.CompoundTag, err error) {
	start := time.Now()
	c := None
	defer func() {
		emitReadComplete(ctx, path, c, time.Since(start), err)
	}()

	body, c, err := decompress(r)
	if err != nil {
		return nil, fmt.Errorf("open %s stream: %w", c, err)
	}
	defer body.Close()

	tag, err := nbt.Decode(ctx, body, cfg.opts...)
	if err != nil {
		return nil, err
	}
	root, ok := tag.(*nbt.CompoundTag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", nbt.ErrNotCompound, tag.Variant())
	}
	return root, nil
}

// WriteFile writes root to path, creating parent directories and
// truncating any existing file.
func WriteFile(ctx context.Context, path string, root *nbt.CompoundTag, opts ...Option) (err error) {
	cfg := newConfig(opts)
	if root == nil {
		return nbt.ErrNilTag
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(cfg.perm))
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return write(ctx, f, path, root, cfg)
}

// Write writes root to w.
func Write(ctx context.Context, w io.Writer, root *nbt.CompoundTag, opts ...Option) error {
	cfg := newConfig(opts)
	if root == nil {
		return nbt.ErrNilTag
	}
	return write(ctx, w, "", root, cfg)
}

func write(ctx context.Context, w io.Writer, path string, root *nbt.CompoundTag, cfg config) (err error) {
	start := time.Now()
	defer func() {
		emitWriteComplete(ctx, path, cfg.compression, time.Since(start), err)
	}()

	body, err := compress(w, cfg.compression)
	if err != nil {
		return err
	}
	if err := nbt.Encode(ctx, body, root, cfg.opts...); err != nil {
		_ = body.Close()
		return err
	}
	return body.Close()
}

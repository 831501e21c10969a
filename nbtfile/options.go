package nbtfile

import "github.com/zoobzio/nbt"

type config struct {
	compression Compression
	perm        uint32
	opts        []nbt.Option
}

// Option configures a file read or write.
type Option func(*config)

// WithCompression sets the compression used when writing. Reads detect
// compression from the stream. The default is Gzip.
func WithCompression(c Compression) Option {
	return func(cfg *config) {
		cfg.compression = c
	}
}

// WithPerm sets the permission bits of files created by WriteFile.
// The default is 0o644.
func WithPerm(perm uint32) Option {
	return func(cfg *config) {
		cfg.perm = perm
	}
}

// WithOptions passes codec options (registry, opaque codec, depth limit)
// through to the tag reader and writer.
func WithOptions(opts ...nbt.Option) Option {
	return func(cfg *config) {
		cfg.opts = append(cfg.opts, opts...)
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		compression: Gzip,
		perm:        0o644,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

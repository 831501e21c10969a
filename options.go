package nbt

import "github.com/zoobzio/nbt/msgpack"

// DefaultMaxDepth is the default limit on List/Compound nesting during decode.
const DefaultMaxDepth = 512

// config holds the settings shared by Reader, Writer and the codec entry points.
type config struct {
	registry *Registry
	codec    Codec
	maxDepth int
}

// Option configures a Reader, Writer or codec entry point.
type Option func(*config)

// WithRegistry sets the type registry used to resolve type-ids.
// The default is DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithCodec sets the codec used for Serializable payloads.
// The default is MessagePack.
func WithCodec(codec Codec) Option {
	return func(c *config) {
		c.codec = codec
	}
}

// WithMaxDepth sets the maximum List/Compound nesting accepted by a decode.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

func newConfig(opts []Option) config {
	c := config{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	if c.codec == nil {
		c.codec = msgpack.New()
	}
	return c
}

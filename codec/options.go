package codec

// Limits bounds what a decoder will read. Zero fields take the default.
type Limits struct {
	MaxDocumentSize int64
}

func defaultLimits() Limits {
	return Limits{
		MaxDocumentSize: 256 << 20, // 256 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxDocumentSize <= 0 {
		l.MaxDocumentSize = d.MaxDocumentSize
	}
	return l
}

type config struct {
	indent bool
	limits Limits
}

// Option configures Encode and Decode.
type Option func(*config)

// WithIndent controls indentation of XML and JSON output. Indented output
// is the default; protobuf ignores it.
func WithIndent(v bool) Option {
	return func(c *config) { c.indent = v }
}

func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}

func newConfig(opts []Option) config {
	cfg := config{indent: true, limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

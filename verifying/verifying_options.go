package verifying

import (
	"io"

	"go.uber.org/zap"
)

type option struct {
	// rand is the source of challenge ids and challenged indices.
	rand   io.Reader
	logger *zap.Logger
}

func applyOpts(options ...OptionFunc) *option {
	opts := &option{
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(opts)
	}
	if opts.logger == nil {
		opts.logger = zap.NewNop()
	}
	return opts
}

type OptionFunc func(*option)

// WithRandomness sets the random source. Defaults to crypto/rand.Reader.
func WithRandomness(r io.Reader) OptionFunc {
	return func(o *option) {
		o.rand = r
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) {
		o.logger = logger
	}
}

package protocol

import (
	"errors"
	"io"

	"go.uber.org/zap"
)

type option struct {
	// seed of the tiling; drawn from rand when nil.
	seed *int64
	// rand is the source of every random choice made by the protocol.
	rand   io.Reader
	logger *zap.Logger
}

func defaultOpts() *option {
	return &option{
		logger: zap.NewNop(),
	}
}

func (o *option) validate() error {
	if o.logger == nil {
		return errors.New("`logger` is required")
	}
	return nil
}

type OptionFunc func(*option) error

func WithSeed(seed int64) OptionFunc {
	return func(o *option) error {
		o.seed = &seed
		return nil
	}
}

// WithRandomness sets the random source. Defaults to crypto/rand.Reader.
// The source must be safe for concurrent use when shared by parallel trials.
func WithRandomness(r io.Reader) OptionFunc {
	return func(o *option) error {
		o.rand = r
		return nil
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		o.logger = logger
		return nil
	}
}

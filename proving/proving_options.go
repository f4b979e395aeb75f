package proving

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/shared"
)

type option struct {
	// start is the first position of the walk; a uniformly random tile when nil.
	start *shared.Point
	// rand is the source of the start position and the commitment nonce.
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

// WithStart fixes the starting position of the walk, which makes the witness reproducible.
func WithStart(p shared.Point) OptionFunc {
	return func(o *option) error {
		o.start = &p
		return nil
	}
}

// WithRandomness sets the random source. Defaults to crypto/rand.Reader.
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

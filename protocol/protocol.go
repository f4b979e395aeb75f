// Package protocol ties the tiling, the prover and the verifier together into a single session:
// setup, witness, challenge, response and verdict.
package protocol

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/config"
	"github.com/Danielskry/SpectralZK/internal/random"
	"github.com/Danielskry/SpectralZK/proving"
	"github.com/Danielskry/SpectralZK/shared"
	"github.com/Danielskry/SpectralZK/tiling"
	"github.com/Danielskry/SpectralZK/verifying"
)

type (
	Instance  = shared.Instance
	Witness   = shared.Witness
	Challenge = shared.Challenge
	Response  = shared.Response
)

type Protocol struct {
	tiler  *tiling.Tiler
	rand   io.Reader
	logger *zap.Logger
}

// New sets up a protocol. Without WithSeed the tiling seed is a fresh random 32-bit value.
func New(opts ...OptionFunc) (*Protocol, error) {
	options := defaultOpts()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	var seed int64
	if options.seed != nil {
		seed = *options.seed
	} else {
		s, err := random.Uint32(options.rand)
		if err != nil {
			return nil, fmt.Errorf("protocol: draw seed: %w", err)
		}
		seed = int64(s)
	}

	options.logger.Debug("protocol: initialized", zap.Int64("seed", seed))
	return &Protocol{
		tiler:  tiling.New(seed),
		rand:   random.Source(options.rand),
		logger: options.logger,
	}, nil
}

func (p *Protocol) Seed() int64 {
	return p.tiler.Seed()
}

// CreateInstance generates the public size x size tiling.
func (p *Protocol) CreateInstance(size int) (*Instance, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", shared.ErrInvalidSize, size)
	}
	inst := shared.NewInstance(p.tiler.GenerateRegion(size, size), size, p.Seed())
	p.logger.Debug("protocol: created instance", zap.Int("size", size), zap.Int("tiles", inst.Len()))
	return inst, nil
}

// GenerateWitness walks a secret path of at most pathLength steps and commits to it.
// Options given by the caller take precedence over the protocol's randomness and logger.
func (p *Protocol) GenerateWitness(inst *Instance, pathLength int, opts ...proving.OptionFunc) (*Witness, error) {
	base := []proving.OptionFunc{
		proving.WithRandomness(p.rand),
		proving.WithLogger(p.logger),
	}
	return proving.GenerateWitness(inst, pathLength, append(base, opts...)...)
}

func (p *Protocol) CreateChallenge(inst *Instance, commitment string, numChallenges int) (*Challenge, error) {
	return verifying.CreateChallenge(inst, commitment, numChallenges,
		verifying.WithRandomness(p.rand),
		verifying.WithLogger(p.logger),
	)
}

// RespondToChallenge reveals the challenged steps of the witness. It returns nil if either
// argument is missing.
func (p *Protocol) RespondToChallenge(w *Witness, ch *Challenge) *Response {
	if w == nil || ch == nil {
		return nil
	}
	return proving.Respond(w, ch)
}

func (p *Protocol) VerifyResponse(inst *Instance, ch *Challenge, resp *Response) bool {
	return verifying.VerifyResponse(inst, ch, resp, verifying.WithLogger(p.logger))
}

// Transcript holds every artifact of one session.
type Transcript struct {
	Seed      int64
	Instance  *Instance
	Witness   *Witness
	Challenge *Challenge
	Response  *Response

	Verified bool
	// Reason is the verification failure, nil when Verified.
	Reason error
}

// Run executes a full session with the sizes from cfg. The context is checked between steps.
func (p *Protocol) Run(ctx context.Context, cfg config.Config, opts ...proving.OptionFunc) (*Transcript, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Transcript{Seed: p.Seed()}
	var err error

	if t.Instance, err = p.CreateInstance(cfg.Size); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t.Witness, err = p.GenerateWitness(t.Instance, cfg.PathLength, opts...); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t.Challenge, err = p.CreateChallenge(t.Instance, t.Witness.Commitment, cfg.NumChallenges); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.Response = p.RespondToChallenge(t.Witness, t.Challenge)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.Reason = verifying.Verify(t.Instance, t.Challenge, t.Response)
	t.Verified = t.Reason == nil

	p.logger.Debug("protocol: session completed",
		zap.Int64("seed", t.Seed),
		zap.Int("path_length", t.Response.PathLength),
		zap.Int("revealed", len(t.Response.RevealedSteps)),
		zap.Bool("verified", t.Verified),
	)
	return t, nil
}

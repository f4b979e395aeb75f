// Package verifying implements the verifier's side of the protocol: issuing challenges and
// checking the prover's responses against the public instance.
package verifying

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/shared"
)

type (
	Instance     = shared.Instance
	Challenge    = shared.Challenge
	Response     = shared.Response
	RevealedStep = shared.RevealedStep
)

var (
	ErrChallengeIDMismatch = errors.New("challenge id mismatch")
	ErrCommitmentMismatch  = errors.New("commitment mismatch")
	ErrMissingStep         = errors.New("challenged step not revealed")
	ErrAbsentStep          = errors.New("revealed step is absent")
	ErrUnknownPoint        = errors.New("revealed point is not part of the instance")
	ErrLabelMismatch       = errors.New("revealed label does not match the instance")
	ErrUnsolicitedStep     = errors.New("revealed step was not challenged")
	ErrPathLength          = errors.New("path length out of range")
)

// Verify checks a response against the challenge it answers and the public instance.
// It returns nil if the response is valid, or an error describing the first violation otherwise.
//
// Only the revealed steps are checked against the instance; the commitment opening carried in the
// response is not.
func Verify(inst *Instance, ch *Challenge, resp *Response) error {
	switch {
	case inst == nil:
		return shared.ErrInstanceMissing
	case ch == nil:
		return shared.ErrChallengeMissing
	case resp == nil:
		return errors.New("response is missing")
	}

	if resp.ChallengeID != ch.ID {
		return fmt.Errorf("%w: expected %q, given %q", ErrChallengeIDMismatch, ch.ID, resp.ChallengeID)
	}
	if resp.Commitment != ch.Commitment {
		return ErrCommitmentMismatch
	}

	// A repeated index is answered by its last entry.
	revealed := make(map[int]RevealedStep, len(resp.RevealedSteps))
	for _, rs := range resp.RevealedSteps {
		revealed[rs.Index] = rs
	}

	challenged := shared.SetOf(ch.Positions...)
	for _, idx := range ch.Positions {
		if idx >= resp.PathLength {
			continue
		}
		rs, ok := revealed[idx]
		if !ok {
			return fmt.Errorf("%w: index %d", ErrMissingStep, idx)
		}
		if err := checkStep(inst, rs); err != nil {
			return err
		}
	}

	for _, entry := range resp.RevealedSteps {
		idx := entry.Index
		if idx >= resp.PathLength {
			continue
		}
		if !challenged.Has(idx) {
			return fmt.Errorf("%w: index %d", ErrUnsolicitedStep, idx)
		}
		if err := checkStep(inst, revealed[idx]); err != nil {
			return err
		}
	}

	if resp.PathLength < 0 || resp.PathLength > inst.Len() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPathLength, resp.PathLength, inst.Len())
	}
	return nil
}

// VerifyResponse reports whether resp is a valid answer to ch for inst.
func VerifyResponse(inst *Instance, ch *Challenge, resp *Response, opts ...OptionFunc) bool {
	options := applyOpts(opts...)

	if err := Verify(inst, ch, resp); err != nil {
		options.logger.Debug("verifying: response rejected", zap.Error(err))
		return false
	}
	options.logger.Debug("verifying: response accepted", zap.String("challenge", ch.ID))
	return true
}

func checkStep(inst *Instance, rs RevealedStep) error {
	if !rs.Present() {
		return fmt.Errorf("%w: index %d", ErrAbsentStep, rs.Index)
	}
	label, ok := inst.Tile(*rs.Point)
	if !ok {
		return fmt.Errorf("%w: index %d, point %v", ErrUnknownPoint, rs.Index, *rs.Point)
	}
	if label != rs.Label {
		return fmt.Errorf("%w: index %d, expected %v, given %v", ErrLabelMismatch, rs.Index, label, rs.Label)
	}
	return nil
}

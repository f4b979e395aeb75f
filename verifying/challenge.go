package verifying

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/internal/random"
	"github.com/Danielskry/SpectralZK/shared"
)

// ChallengeIDBytes is the number of random bytes in a challenge id.
const ChallengeIDBytes = 8

// CreateChallenge picks up to numChallenges distinct path indices in [0, size*size) uniformly at
// random and binds them to the announced commitment.
//
// The indices are drawn independently of the commitment; they are not derived from it.
func CreateChallenge(inst *Instance, commitment string, numChallenges int, opts ...OptionFunc) (*Challenge, error) {
	if inst == nil {
		return nil, shared.ErrInstanceMissing
	}
	options := applyOpts(opts...)

	id, err := random.Hex(options.rand, ChallengeIDBytes)
	if err != nil {
		return nil, fmt.Errorf("verifying: draw challenge id: %w", err)
	}

	space := inst.Size * inst.Size
	target := min(numChallenges, space)

	positions := make(shared.IndexSet, max(target, 0))
	for len(positions) < target {
		idx, err := random.Intn(options.rand, space)
		if err != nil {
			return nil, fmt.Errorf("verifying: draw challenge index: %w", err)
		}
		positions[idx] = true
	}

	ch := &Challenge{
		ID:         id,
		Positions:  positions.AsSortedSlice(),
		Commitment: commitment,
	}
	options.logger.Debug("verifying: created challenge",
		zap.String("id", ch.ID),
		zap.Ints("positions", ch.Positions),
	)
	return ch, nil
}

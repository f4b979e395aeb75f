// Package proving implements the prover's side of the protocol: finding and committing to a
// path through an instance, and revealing challenged steps of it.
package proving

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/commitment"
	"github.com/Danielskry/SpectralZK/internal/random"
	"github.com/Danielskry/SpectralZK/shared"
	"github.com/Danielskry/SpectralZK/tiling"
)

type (
	Instance  = shared.Instance
	Witness   = shared.Witness
	Challenge = shared.Challenge
	Response  = shared.Response
	Point     = shared.Point
	Step      = shared.Step
)

// GenerateWitness walks at most pathLength steps through inst and commits to the path taken.
// The walk is deterministic for a fixed start: it always moves to the smallest unvisited
// neighbor by (x, y), and stops early on a dead end or when the start is not part of inst.
func GenerateWitness(inst *Instance, pathLength int, opts ...OptionFunc) (*Witness, error) {
	if inst == nil {
		return nil, shared.ErrInstanceMissing
	}
	if pathLength < 0 {
		return nil, fmt.Errorf("%w: %d", shared.ErrInvalidPathLength, pathLength)
	}

	options := defaultOpts()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	logger := options.logger

	var start Point
	switch {
	case options.start != nil:
		start = *options.start
	case inst.Len() > 0:
		points := inst.Points()
		idx, err := random.Intn(options.rand, len(points))
		if err != nil {
			return nil, fmt.Errorf("proving: choose start: %w", err)
		}
		start = points[idx]
	default:
		logger.Debug("proving: empty instance, no start position")
	}

	path := walk(inst, start, pathLength)

	c, nonce, err := commitment.CreateVector(CommitmentValue(path), commitment.WithRandomness(options.rand))
	if err != nil {
		return nil, fmt.Errorf("proving: commit to path: %w", err)
	}

	logger.Debug("proving: generated witness",
		zap.Stringer("start", start),
		zap.Int("requested", pathLength),
		zap.Int("length", len(path)),
		zap.String("commitment", c),
	)
	return shared.NewWitness(path, c, nonce), nil
}

func walk(inst *Instance, start Point, length int) []Step {
	// A path never repeats a tile, so it cannot outgrow the instance.
	capacity := min(length, inst.Len())
	path := make([]Step, 0, capacity)
	visited := make(map[Point]struct{}, capacity)

	current := start
	for i := 0; i < length; i++ {
		label, ok := inst.Tile(current)
		if !ok {
			break
		}
		if _, seen := visited[current]; seen {
			break
		}

		path = append(path, Step{Point: current, Label: label})
		visited[current] = struct{}{}

		var next *Point
		for _, n := range tiling.Neighbors(current) {
			if !inst.Contains(n) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}
			if next == nil || n.Less(*next) {
				n := n
				next = &n
			}
		}
		if next == nil {
			break
		}
		current = *next
	}
	return path
}

// CommitmentValue renders a path as the ordered (point, label) text pairs a witness commits to.
// An opened commitment can be audited with commitment.Verify(w.Commitment, CommitmentValue(path), w.Nonce).
func CommitmentValue(path []Step) [][2]string {
	steps := make([][2]string, len(path))
	for i, s := range path {
		steps[i] = [2]string{s.Point.String(), string(s.Label)}
	}
	return steps
}

// Respond reveals the witness steps at the challenged indices. Indices outside the path are
// answered with an absent entry. The commitment and nonce are carried over from the witness.
func Respond(w *Witness, ch *Challenge) *Response {
	revealed := make([]shared.RevealedStep, 0, len(ch.Positions))
	for _, idx := range ch.Positions {
		step, ok := w.Step(idx)
		if !ok {
			revealed = append(revealed, shared.RevealedStep{Index: idx})
			continue
		}
		p := step.Point
		revealed = append(revealed, shared.RevealedStep{
			Index: idx,
			Point: &p,
			Label: step.Label,
		})
	}

	return &Response{
		ChallengeID:   ch.ID,
		RevealedSteps: revealed,
		PathLength:    w.Len(),
		Commitment:    w.Commitment,
		Nonce:         w.Nonce,
	}
}

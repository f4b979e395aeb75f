package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/commitment"
	"github.com/Danielskry/SpectralZK/config"
	"github.com/Danielskry/SpectralZK/protocol"
	"github.com/Danielskry/SpectralZK/shared"
	"github.com/Danielskry/SpectralZK/tiling"
)

const (
	checkTilingSeed  = 123
	checkTilingSide  = 10
	checkMinLabels   = 4
	checkMaxPeriod   = 5
	checkRepetition  = 0.5
	checkSessionSeed = 42
	checkTrials      = 20
	checkSuccessRate = 0.95
)

var errCheck = errors.New("check failed")

type check struct {
	name string
	run  func(ctx context.Context, logger *zap.Logger) error
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Self-check the commitment, the tiling properties and honest sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runSelfCheck(cmd.Context(), cmd.OutOrStdout(), logger)
		},
	}
}

func selfChecks() []check {
	return []check{
		{"point distance", checkDistance},
		{"commitment", checkCommitment},
		{"tiling determinism", checkDeterminism},
		{"tiling distribution", checkDistribution},
		{"aperiodicity", checkAperiodicity},
		{"protocol session", checkSession},
		{"consistency", checkConsistency},
	}
}

func runSelfCheck(ctx context.Context, w io.Writer, logger *zap.Logger) error {
	header(w, "SpectralZK self-check")

	failed := 0
	data := make([][]string, 0)
	for _, c := range selfChecks() {
		if err := ctx.Err(); err != nil {
			return err
		}
		result := "ok"
		if err := c.run(ctx, logger); err != nil {
			failed++
			result = err.Error()
			logger.Warn("self-check failed", zap.String("check", c.name), zap.Error(err))
		}
		data = append(data, []string{c.name, result})
	}
	report(w, []string{"check", "result"}, data)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errCheck, failed, len(data))
	}
	fmt.Fprintln(w, "\nAll checks passed. This does not prove cryptographic security.")
	return nil
}

func checkDistance(context.Context, *zap.Logger) error {
	if d := shared.NewPoint(0, 0).DistanceTo(shared.NewPoint(3, 4)); d != 5 {
		return fmt.Errorf("%w: distance (0, 0)-(3, 4) is %v", errCheck, d)
	}
	return nil
}

func checkCommitment(context.Context, *zap.Logger) error {
	value := "secret_value"
	c, nonce, err := commitment.Create(value)
	if err != nil {
		return err
	}
	switch {
	case len(c) != 64:
		return fmt.Errorf("%w: commitment length %d", errCheck, len(c))
	case !commitment.Verify(c, value, nonce):
		return fmt.Errorf("%w: valid opening rejected", errCheck)
	case commitment.Verify(c, "wrong_value", nonce):
		return fmt.Errorf("%w: wrong value accepted", errCheck)
	}
	return nil
}

func checkDeterminism(context.Context, *zap.Logger) error {
	pos := shared.NewPoint(5, 7)
	if a, b := tiling.New(checkTilingSeed).TileType(pos, nil), tiling.New(checkTilingSeed).TileType(pos, nil); a != b {
		return fmt.Errorf("%w: %v labeled %s and %s", errCheck, pos, a, b)
	}
	return nil
}

func checkDistribution(context.Context, *zap.Logger) error {
	region := tiling.New(checkTilingSeed).GenerateRegion(checkTilingSide, checkTilingSide)
	if len(region) != checkTilingSide*checkTilingSide {
		return fmt.Errorf("%w: %d tiles", errCheck, len(region))
	}
	if n := len(tiling.Distribution(region)); n < checkMinLabels {
		return fmt.Errorf("%w: only %d distinct labels", errCheck, n)
	}
	return nil
}

func checkAperiodicity(context.Context, *zap.Logger) error {
	region := tiling.New(checkTilingSeed).GenerateRegion(checkTilingSide, checkTilingSide)
	for p, rate := range tiling.CheckPeriodicity(region, checkMaxPeriod) {
		if rate >= checkRepetition {
			return fmt.Errorf("%w: period (%d,%d) repeats %s", errCheck, p.X, p.Y, percent(rate))
		}
	}
	return nil
}

func checkSession(_ context.Context, logger *zap.Logger) error {
	p, err := protocol.New(protocol.WithSeed(checkSessionSeed), protocol.WithLogger(logger))
	if err != nil {
		return err
	}
	inst, err := p.CreateInstance(5)
	if err != nil {
		return err
	}
	if inst.Len() != 25 {
		return fmt.Errorf("%w: %d tiles", errCheck, inst.Len())
	}

	witness, err := p.GenerateWitness(inst, 8)
	if err != nil {
		return err
	}
	if witness.Len() != 8 {
		return fmt.Errorf("%w: path of %d steps", errCheck, witness.Len())
	}
	for i, step := range witness.Path() {
		if label, ok := inst.Tile(step.Point); !ok || label != step.Label {
			return fmt.Errorf("%w: step %d is not on the tiling", errCheck, i)
		}
	}

	ch, err := p.CreateChallenge(inst, witness.Commitment, 3)
	if err != nil {
		return err
	}
	resp := p.RespondToChallenge(witness, ch)
	if len(resp.RevealedSteps) != len(ch.Positions) {
		return fmt.Errorf("%w: %d steps revealed for %d positions", errCheck, len(resp.RevealedSteps), len(ch.Positions))
	}
	if !p.VerifyResponse(inst, ch, resp) {
		return fmt.Errorf("%w: honest response rejected", errCheck)
	}

	for i, rs := range resp.RevealedSteps {
		if !rs.Present() {
			continue
		}
		bad := *resp
		bad.RevealedSteps = append([]shared.RevealedStep(nil), resp.RevealedSteps...)
		bad.RevealedSteps[i].Label = "X"
		if p.VerifyResponse(inst, ch, &bad) {
			return fmt.Errorf("%w: tampered response accepted", errCheck)
		}
		break
	}
	return nil
}

func checkConsistency(ctx context.Context, logger *zap.Logger) error {
	cfg := config.DefaultConfig().WithSeed(0)
	cfg.Size = 4
	cfg.PathLength = 6
	cfg.NumChallenges = 2

	res, err := protocol.RunTrials(ctx, cfg, checkTrials, protocol.WithLogger(logger))
	if err != nil {
		return err
	}
	if rate := res.SuccessRate(); rate < checkSuccessRate {
		return fmt.Errorf("%w: success rate %s", errCheck, percent(rate))
	}
	return nil
}

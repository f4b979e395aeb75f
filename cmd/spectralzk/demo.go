package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/config"
	"github.com/Danielskry/SpectralZK/persistence"
	"github.com/Danielskry/SpectralZK/protocol"
	"github.com/Danielskry/SpectralZK/proving"
	"github.com/Danielskry/SpectralZK/shared"
	"github.com/Danielskry/SpectralZK/tiling"
	"github.com/Danielskry/SpectralZK/verifying"
)

const shownSteps = 3

func newDemoCmd() *cobra.Command {
	var (
		startX, startY float64
		recordFile     string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through a single session step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			var opts []proving.OptionFunc
			if cmd.Flags().Changed("start-x") || cmd.Flags().Changed("start-y") {
				opts = append(opts, proving.WithStart(shared.NewPoint(startX, startY)))
			}
			return runDemo(cmd.Context(), cmd.OutOrStdout(), cfg.ProtocolCfg, recordFile, logger, opts...)
		},
	}

	cmd.Flags().Float64Var(&startX, "start-x", 0, "x coordinate of the first step (random tile when unset)")
	cmd.Flags().Float64Var(&startY, "start-y", 0, "y coordinate of the first step (random tile when unset)")
	cmd.Flags().StringVar(&recordFile, "record", "", "write the public session record to this file")
	return cmd
}

func protocolOpts(cfg *config.Config, logger *zap.Logger) []protocol.OptionFunc {
	opts := []protocol.OptionFunc{protocol.WithLogger(logger)}
	if cfg.Seed != nil {
		opts = append(opts, protocol.WithSeed(*cfg.Seed))
	}
	return opts
}

func runDemo(ctx context.Context, w io.Writer, cfg *config.Config, recordFile string, logger *zap.Logger, opts ...proving.OptionFunc) error {
	header(w, "SpectralZK session")

	fmt.Fprintln(w, "\n1. SETUP")
	p, err := protocol.New(protocolOpts(cfg, logger)...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Protocol initialized with seed: %d\n", p.Seed())

	t := time.Now()
	inst, err := p.CreateInstance(cfg.Size)
	if err != nil {
		return err
	}
	setupTime := time.Since(t)
	fmt.Fprintf(w, "Created %dx%d tiling with %d tiles in %s\n", cfg.Size, cfg.Size, inst.Len(), round(setupTime))
	printTilingSample(w, inst)

	fmt.Fprintln(w, "\nPeriod analysis (lower is better):")
	reportPeriods(w, tiling.CheckPeriodicity(inst.Tiles(), cfg.MaxPeriod))

	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n2. WITNESS (prover)")
	t = time.Now()
	witness, err := p.GenerateWitness(inst, cfg.PathLength, opts...)
	if err != nil {
		return err
	}
	witnessTime := time.Since(t)
	fmt.Fprintf(w, "Generated path of %d steps in %s\n", witness.Len(), round(witnessTime))
	fmt.Fprintf(w, "Path commitment: %s...\n", witness.Commitment[:16])

	fmt.Fprintf(w, "\nFirst %d steps of the secret path:\n", min(shownSteps, witness.Len()))
	for i := 0; i < min(shownSteps, witness.Len()); i++ {
		step, _ := witness.Step(i)
		fmt.Fprintf(w, "  Step %d: %v -> %s\n", i, step.Point, step.Label)
	}
	if witness.Len() > shownSteps {
		fmt.Fprintln(w, "  ... (remaining steps hidden)")
	}

	fmt.Fprintln(w, "\n3. CHALLENGE (verifier)")
	ch, err := p.CreateChallenge(inst, witness.Commitment, cfg.NumChallenges)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Challenge ID: %s\n", ch.ID)
	fmt.Fprintf(w, "Requested positions: %v\n", ch.Positions)

	fmt.Fprintln(w, "\n4. RESPONSE (prover)")
	resp := p.RespondToChallenge(witness, ch)
	data := make([][]string, 0, len(resp.RevealedSteps))
	for _, rs := range resp.RevealedSteps {
		if !rs.Present() {
			data = append(data, []string{strconv.Itoa(rs.Index), "out of bounds", "-"})
			continue
		}
		data = append(data, []string{strconv.Itoa(rs.Index), rs.Point.String(), string(rs.Label)})
	}
	report(w, []string{"index", "point", "label"}, data)
	fmt.Fprintf(w, "Information revealed: %s\n", revealedShare(resp))

	fmt.Fprintln(w, "\n5. VERIFICATION (verifier)")
	t = time.Now()
	reason := verifying.Verify(inst, ch, resp)
	verifyTime := time.Since(t)
	fmt.Fprintf(w, "Verification completed in %s\n", round(verifyTime))

	if recordFile != "" {
		rec, err := persistence.NewRecord(&protocol.Transcript{
			Seed:      p.Seed(),
			Instance:  inst,
			Witness:   witness,
			Challenge: ch,
			Response:  resp,
			Verified:  reason == nil,
			Reason:    reason,
		})
		if err != nil {
			return err
		}
		if err := persistence.SaveRecord(recordFile, rec); err != nil {
			return err
		}
		fmt.Fprintf(w, "Session record written to %s\n", recordFile)
	}

	header(w, "Summary")
	fmt.Fprintf(w, "Total protocol time: %s\n", round(setupTime+witnessTime+verifyTime))
	fmt.Fprintf(w, "Tiling size: %dx%d = %d tiles\n", cfg.Size, cfg.Size, inst.Len())
	fmt.Fprintf(w, "Path length: %d steps\n", resp.PathLength)
	if reason != nil {
		fmt.Fprintf(w, "Verification: FAILED (%v)\n", reason)
		return fmt.Errorf("%w: %v", ErrVerificationFailed, reason)
	}
	fmt.Fprintln(w, "Verification: PASSED")
	return nil
}

func revealedShare(resp *shared.Response) string {
	n := len(resp.RevealedSteps)
	if resp.PathLength == 0 {
		return fmt.Sprintf("%d/0 steps", n)
	}
	return fmt.Sprintf("%d/%d steps (%s)", n, resp.PathLength, percent(float64(n)/float64(resp.PathLength)))
}

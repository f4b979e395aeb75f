package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/persistence"
	"github.com/Danielskry/SpectralZK/protocol"
)

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <record>",
		Short: "Re-check a recorded session against the tiling regenerated from its seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runReplay(cmd.OutOrStdout(), args[0], logger)
		},
	}
}

func runReplay(w io.Writer, filename string, logger *zap.Logger) error {
	rec, err := persistence.LoadRecord(filename)
	if err != nil {
		return err
	}

	header(w, fmt.Sprintf("Replaying %s", filename))
	fmt.Fprintf(w, "Seed: %d, tiling: %dx%d\n", rec.Seed, rec.Size, rec.Size)
	fmt.Fprintf(w, "Challenge ID: %s, positions: %v\n", rec.Challenge.ID, rec.Challenge.Positions)
	fmt.Fprintf(w, "Recorded verdict: %s\n", verdict(rec.Verified))

	reason := persistence.Reverify(rec, protocol.WithLogger(logger))
	fmt.Fprintf(w, "Replayed verdict: %s\n", verdict(reason == nil))

	if (reason == nil) != rec.Verified {
		return fmt.Errorf("recorded verdict does not match replay (%v)", reason)
	}
	if reason != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, reason)
	}
	return nil
}

func verdict(ok bool) string {
	if ok {
		return "PASSED"
	}
	return "FAILED"
}

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/config"
	"github.com/Danielskry/SpectralZK/protocol"
)

func newTrialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trials",
		Short: "Run independent sessions concurrently and report the success rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			_, err = runTrials(cmd.Context(), cmd.OutOrStdout(), cfg.ProtocolCfg, logger)
			return err
		},
	}
}

func runTrials(ctx context.Context, w io.Writer, cfg *config.Config, logger *zap.Logger) (*protocol.TrialsReport, error) {
	header(w, fmt.Sprintf("Running %d trials", cfg.Trials))

	res, err := protocol.RunTrials(ctx, *cfg, cfg.Trials, protocol.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	data := make([][]string, 0, len(res.Results))
	for i, r := range res.Results {
		verdict := "valid"
		if !r.Verified {
			verdict = "INVALID"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Session.String(),
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.PathLength),
			strconv.Itoa(r.Revealed),
			verdict,
			round(r.Duration),
		})
	}
	report(w, []string{"trial", "session", "seed", "path", "revealed", "verdict", "time"}, data)

	lo, hi, avg := res.MinMaxAvg()
	fmt.Fprintln(w, "\nResults:")
	fmt.Fprintf(w, "  Success rate: %s (%d/%d)\n", percent(res.SuccessRate()), res.Successes, len(res.Results))
	fmt.Fprintf(w, "  Average time: %s\n", round(avg))
	fmt.Fprintf(w, "  Time range: %s - %s\n", round(lo), round(hi))
	fmt.Fprintf(w, "  Wall time: %s\n", round(res.Elapsed))

	if res.Successes != len(res.Results) {
		return res, fmt.Errorf("%w: %d of %d trials", ErrVerificationFailed, len(res.Results)-res.Successes, len(res.Results))
	}
	return res, nil
}

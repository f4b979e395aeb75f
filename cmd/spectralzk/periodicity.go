package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Danielskry/SpectralZK/config"
	"github.com/Danielskry/SpectralZK/protocol"
	"github.com/Danielskry/SpectralZK/tiling"
)

func newPeriodicityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periodicity",
		Short: "Report label distribution and repetition per period for a generated tiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runPeriodicity(cmd.OutOrStdout(), cfg.ProtocolCfg, logger)
		},
	}
}

func runPeriodicity(w io.Writer, cfg *config.Config, logger *zap.Logger) error {
	p, err := protocol.New(protocolOpts(cfg, logger)...)
	if err != nil {
		return err
	}
	inst, err := p.CreateInstance(cfg.Size)
	if err != nil {
		return err
	}

	header(w, fmt.Sprintf("Tiling %dx%d, seed %d", cfg.Size, cfg.Size, p.Seed()))

	fmt.Fprintln(w, "\nTile distribution:")
	dist := reportDistribution(w, inst.Tiles())

	fmt.Fprintf(w, "\nPeriodicity up to %d:\n", cfg.MaxPeriod)
	worst := reportPeriods(w, tiling.CheckPeriodicity(inst.Tiles(), cfg.MaxPeriod))

	fmt.Fprintf(w, "\nDistinct labels: %d, max repetition: %s\n", len(dist), percent(worst))
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kochabx/keysort/equivalence"
	"github.com/kochabx/keysort/log"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that all sort strategies agree on random datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, withBinds(map[string]string{
				"check.size":    "size",
				"check.trials":  "trials",
				"check.workers": "workers",
			}))
			if err != nil {
				return err
			}

			return run(cmd.Context(), s, "check", func(ctx context.Context, logger *log.Logger) error {
				summary, err := equivalence.Trials(ctx, equivalence.TrialOptions{
					Size:    s.Check.Size,
					Trials:  s.Check.Trials,
					Workers: s.Check.Workers,
					Seed:    s.Seed,
					Logger:  logger,
				})
				if err != nil {
					logger.Error().Err(err).Msg("equivalence check failed")
					return err
				}

				logger.Info().
					Int("trials", summary.Trials).
					Int("size", s.Check.Size).
					Dur("elapsed", summary.Elapsed).
					Msg("equivalence check passed")
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d/%d trials of size %d agree\n", summary.Passed, summary.Trials, s.Check.Size)
				return nil
			})
		},
	}

	cmd.Flags().Int("size", 100, "dataset length per trial")
	cmd.Flags().Int("trials", 1, "number of datasets to check")
	cmd.Flags().Int("workers", 1, "concurrent trials")
	return cmd
}

// =============================================================================
// Lotto QR Generator - Round Command
// =============================================================================
//
// This file defines the 'round' command, which prints the draw round on sale
// at a given instant according to the configured weekly schedule.
//
// COMMAND USAGE:
//   lottoqr round                              # The round on sale now
//   lottoqr round --at 2026-02-14T20:00:00+09:00
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// roundAt is the instant to evaluate, in RFC 3339.
var roundAt string

// roundCmd represents the 'round' command.
var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Print the draw round on sale",
	Long: `Print the draw round on sale now, or at the instant given with --at.
The schedule (first draw date, weekly cutoff, and time zone) comes from the
round section of the configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		calc, err := a.cfg.RoundCalculator()
		if err != nil {
			return err
		}

		at := time.Now()
		if roundAt != "" {
			at, err = time.Parse(time.RFC3339, roundAt)
			if err != nil {
				return fmt.Errorf("invalid --at %q: %w", roundAt, err)
			}
		}

		r := calc.Round(at)
		a.logger.Debug("computed round", "at", at.In(calc.Location), "round", int(r))
		fmt.Fprintln(cmd.OutOrStdout(), r)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roundCmd)

	roundCmd.Flags().StringVar(&roundAt, "at", "", "Instant to evaluate in RFC 3339 (default: now)")
}

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var forceRollover bool

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Run the daily rollover once and exit",
	RunE:  runRollover,
}

func init() {
	rolloverCmd.Flags().BoolVar(&forceRollover, "force", false, "run even if today's rollover already ran")
}

func runRollover(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.rollover.Execute(cmd.Context(), forceRollover)
	if err != nil {
		return err
	}

	log.Info().
		Str("date", report.Date).
		Bool("ran", report.Ran).
		Msg("rollover finished")
	return nil
}

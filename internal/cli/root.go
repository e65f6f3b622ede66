package cli

import (
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "ice-routes",
	Short: "Ice delivery routes service",
	Long: `Backend for the ice delivery routes.

Functions:
- Resolve which clients each route visits today
- Track the delivery run of every route (one active client at a time)
- Close orders, decrement the driver's on-board inventory
- Run the daily rollover that resets yesterday's state`,
	SilenceUsage: true,
}

// Execute roda o comando raiz.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(rolloverCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(createDriverCmd)
}

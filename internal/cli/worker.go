package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/ice-routes/internal/scheduler"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the daily rollover worker",
	Long:  `Run only the daily rollover scheduler, for deployments where the API runs with rollover.enabled=false`,
	RunE:  runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scheduler.Run(ctx, a.cfg.Rollover, a.rollover); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	log.Info().Msg("Worker shutting down gracefully")
	return nil
}

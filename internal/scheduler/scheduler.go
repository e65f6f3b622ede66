package scheduler

import (
	"context"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/ice-routes/internal/config"
	"github.com/BruksfildServices01/ice-routes/internal/domain/rollover"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// Runner executa o fechamento diário.
type Runner interface {
	Execute(ctx context.Context, force bool) (*rollover.Report, error)
}

// Run agenda o fechamento no cron configurado (fuso do negócio) e
// bloqueia até ctx ser cancelado. Na subida roda uma vez para
// recuperar um dia perdido com o processo parado.
func Run(ctx context.Context, cfg config.RolloverConfig, runner Runner) error {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(timezone.Location(timezone.Business())),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create scheduler")
	}

	_, err = s.NewJob(
		gocron.CronJob(cfg.Cron, false),
		gocron.NewTask(func() {
			runOnce(ctx, runner)
		}),
		gocron.WithName(rollover.JobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return errors.Wrapf(err, "invalid rollover cron %q", cfg.Cron)
	}

	log.Info().
		Str("cron", cfg.Cron).
		Str("timezone", timezone.Business()).
		Msg("rollover scheduler started")

	s.Start()

	runOnce(ctx, runner)

	<-ctx.Done()

	log.Info().Msg("rollover scheduler stopping")
	return s.Shutdown()
}

func runOnce(ctx context.Context, runner Runner) {
	report, err := runner.Execute(ctx, false)
	if err != nil {
		log.Error().Err(err).Msg("daily rollover failed")
		return
	}

	if !report.Ran {
		log.Debug().Str("date", report.Date).Msg("daily rollover already done")
	}
}

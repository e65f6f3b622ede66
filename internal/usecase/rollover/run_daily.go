package rollover

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	rollover "github.com/BruksfildServices01/ice-routes/internal/domain/rollover"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// Cache guarda a data do último fechamento entre processos.
type Cache interface {
	Get(ctx context.Context, key string, value any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// ======================================================
// RunDaily
// ======================================================

type RunDaily struct {
	repo  rollover.Repository
	cache Cache
	audit *audit.Dispatcher
	now   func() time.Time
	key   string

	mu      sync.Mutex
	lastRun time.Time
}

func NewRunDaily(
	repo rollover.Repository,
	cache Cache,
	audit *audit.Dispatcher,
	cacheKey string,
) *RunDaily {
	return &RunDaily{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   timezone.Now,
		key:   cacheKey,
	}
}

// Execute roda o fechamento do dia. Sem force, não repete num dia já fechado.
func (uc *RunDaily) Execute(ctx context.Context, force bool) (*rollover.Report, error) {
	today := timezone.DateOf(uc.now())
	report := &rollover.Report{Date: timezone.FormatDate(today)}

	err := uc.repo.Transaction(ctx, func(tx rollover.Repository) error {

		// 1️⃣ Trava a marca d'água (serializa execuções concorrentes)
		job, err := tx.LockJob(ctx, rollover.JobName)
		if err != nil {
			return err
		}
		if !force && !rollover.Due(job.LastRunDate, today) {
			return nil
		}

		// 2️⃣ Extemporâneos vencidos
		if report.PurgedExtemporaneous, err = tx.PurgeExtemporaneousBefore(ctx, today); err != nil {
			return err
		}

		// 3️⃣ Acompanhamento de dias anteriores volta a pendente
		if report.ResetPastTracking, err = tx.ResetTrackingBefore(ctx, today); err != nil {
			return err
		}

		// 4️⃣ "activo" perdido no dia de hoje
		if report.ResetStrayActive, err = tx.ResetActiveOn(ctx, today); err != nil {
			return err
		}

		// 5️⃣ Marca extemporânea de pedidos antigos
		if report.ClearedOrderFlags, err = tx.ClearExtemporaneousOrdersBefore(ctx, today); err != nil {
			return err
		}

		details, _ := json.Marshal(report)
		job.LastRunDate = today
		job.Details = string(details)
		report.Ran = true

		return tx.SaveJob(ctx, job)
	})
	if err != nil {
		return nil, err
	}

	uc.remember(ctx, today)

	if report.Ran {
		log.Info().
			Str("date", report.Date).
			Int64("purged_extemporaneous", report.PurgedExtemporaneous).
			Int64("reset_past_tracking", report.ResetPastTracking).
			Int64("reset_stray_active", report.ResetStrayActive).
			Int64("cleared_order_flags", report.ClearedOrderFlags).
			Msg("daily rollover")

		uc.audit.Dispatch(audit.Event{
			Action:   "daily_rollover",
			Entity:   "daily_job",
			EntityID: rollover.JobName,
			Metadata: report,
		})
	}

	return report, nil
}

// EnsureToday roda o fechamento apenas se a marca d'água for anterior a hoje.
// Consulta a memória do processo, depois o cache e por fim o banco.
func (uc *RunDaily) EnsureToday(ctx context.Context) error {
	today := timezone.DateOf(uc.now())

	if uc.knows(today) {
		return nil
	}

	var cached string
	if err := uc.cache.Get(ctx, uc.key, &cached); err == nil && cached == timezone.FormatDate(today) {
		uc.setLastRun(today)
		return nil
	}

	job, err := uc.repo.GetJob(ctx, rollover.JobName)
	switch {
	case err == nil && !rollover.Due(job.LastRunDate, today):
		uc.remember(ctx, today)
		return nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return err
	}

	_, err = uc.Execute(ctx, false)
	return err
}

func (uc *RunDaily) knows(today time.Time) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return !uc.lastRun.Before(today)
}

func (uc *RunDaily) setLastRun(day time.Time) {
	uc.mu.Lock()
	uc.lastRun = day
	uc.mu.Unlock()
}

func (uc *RunDaily) remember(ctx context.Context, today time.Time) {
	uc.setLastRun(today)
	if err := uc.cache.Set(ctx, uc.key, timezone.FormatDate(today), 36*time.Hour); err != nil {
		log.Warn().Err(err).Msg("rollover watermark cache")
	}
}

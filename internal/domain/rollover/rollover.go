package rollover

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// JobName identifica o fechamento diário na tabela daily_jobs.
const JobName = "daily_rollover"

// Report resume o que o fechamento fez.
type Report struct {
	Date                 string `json:"date"`
	Ran                  bool   `json:"ran"`
	PurgedExtemporaneous int64  `json:"purged_extemporaneous"`
	ResetPastTracking    int64  `json:"reset_past_tracking"`
	ResetStrayActive     int64  `json:"reset_stray_active"`
	ClearedOrderFlags    int64  `json:"cleared_order_flags"`
}

// Due informa se o fechamento ainda não rodou para today.
func Due(lastRun, today time.Time) bool {
	return lastRun.Before(today)
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// LockJob lê (ou cria) o registro do job com FOR UPDATE.
	LockJob(ctx context.Context, name string) (*models.DailyJob, error)
	SaveJob(ctx context.Context, job *models.DailyJob) error
	GetJob(ctx context.Context, name string) (*models.DailyJob, error)

	PurgeExtemporaneousBefore(ctx context.Context, day time.Time) (int64, error)
	ResetTrackingBefore(ctx context.Context, day time.Time) (int64, error)
	ResetActiveOn(ctx context.Context, day time.Time) (int64, error)
	ClearExtemporaneousOrdersBefore(ctx context.Context, day time.Time) (int64, error)
}

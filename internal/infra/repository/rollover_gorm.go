package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/ice-routes/internal/domain/rollover"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type RolloverGormRepository struct {
	db *gorm.DB
}

func NewRolloverGormRepository(db *gorm.DB) *RolloverGormRepository {
	return &RolloverGormRepository{db: db}
}

var _ domain.Repository = (*RolloverGormRepository)(nil)

func (r *RolloverGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RolloverGormRepository{db: tx})
	})
}

// LockJob garante o registro (data zero = nunca rodou) e o trava até o fim da transação.
func (r *RolloverGormRepository) LockJob(ctx context.Context, name string) (*models.DailyJob, error) {
	db := r.db.WithContext(ctx)

	seed := models.DailyJob{Name: name, LastRunDate: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, wrap(err, "seed daily job")
	}

	var job models.DailyJob
	if err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&job, "name = ?", name).Error; err != nil {
		return nil, wrap(err, "lock daily job")
	}
	return &job, nil
}

func (r *RolloverGormRepository) SaveJob(ctx context.Context, job *models.DailyJob) error {
	return wrap(r.db.WithContext(ctx).Save(job).Error, "save daily job")
}

func (r *RolloverGormRepository) GetJob(ctx context.Context, name string) (*models.DailyJob, error) {
	var job models.DailyJob
	if err := r.db.WithContext(ctx).First(&job, "name = ?", name).Error; err != nil {
		return nil, wrap(err, "get daily job")
	}
	return &job, nil
}

func (r *RolloverGormRepository) PurgeExtemporaneousBefore(ctx context.Context, day time.Time) (int64, error) {
	return purgeExtemporaneousBefore(ctx, r.db, day)
}

func (r *RolloverGormRepository) ResetTrackingBefore(ctx context.Context, day time.Time) (int64, error) {
	return resetTrackingBefore(ctx, r.db, day)
}

func (r *RolloverGormRepository) ResetActiveOn(ctx context.Context, day time.Time) (int64, error) {
	return resetActiveOn(ctx, r.db, day)
}

func (r *RolloverGormRepository) ClearExtemporaneousOrdersBefore(ctx context.Context, day time.Time) (int64, error) {
	return clearExtemporaneousOrdersBefore(ctx, r.db, day)
}

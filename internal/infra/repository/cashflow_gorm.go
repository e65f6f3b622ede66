package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ice-routes/internal/domain/cashflow"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type CashflowGormRepository struct {
	db *gorm.DB
}

func NewCashflowGormRepository(db *gorm.DB) *CashflowGormRepository {
	return &CashflowGormRepository{db: db}
}

var _ domain.Repository = (*CashflowGormRepository)(nil)

func (r *CashflowGormRepository) GetDriver(ctx context.Context, driverID uint) (*models.Driver, error) {
	return getDriver(ctx, r.db, driverID)
}

func (r *CashflowGormRepository) Create(ctx context.Context, o *models.CashOutflow) error {
	return wrap(r.db.WithContext(ctx).Omit("Driver").Create(o).Error, "create cash outflow")
}

func (r *CashflowGormRepository) List(ctx context.Context, f domain.Filter) ([]models.CashOutflow, error) {
	query := r.db.WithContext(ctx).Preload("Driver")

	if f.DriverID != nil {
		query = query.Where("driver_id = ?", *f.DriverID)
	}
	if f.From != nil {
		query = query.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("created_at < ?", *f.To)
	}

	var rows []models.CashOutflow
	if err := query.
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, wrap(err, "list cash outflows")
	}
	return rows, nil
}

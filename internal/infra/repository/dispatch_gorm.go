package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ice-routes/internal/domain/dispatch"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type DispatchGormRepository struct {
	db *gorm.DB
}

func NewDispatchGormRepository(db *gorm.DB) *DispatchGormRepository {
	return &DispatchGormRepository{db: db}
}

var _ domain.Repository = (*DispatchGormRepository)(nil)

func (r *DispatchGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DispatchGormRepository{db: tx})
	})
}

func (r *DispatchGormRepository) GetRoute(ctx context.Context, routeID string) (*models.Route, error) {
	return getRoute(ctx, r.db, routeID)
}

func (r *DispatchGormRepository) GetDriver(ctx context.Context, driverID uint) (*models.Driver, error) {
	return getDriver(ctx, r.db, driverID)
}

func (r *DispatchGormRepository) ListActiveDrivers(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := r.db.WithContext(ctx).
		Where("active").
		Order("name").
		Find(&drivers).Error; err != nil {
		return nil, wrap(err, "list drivers")
	}
	return drivers, nil
}

func (r *DispatchGormRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	return listProducts(ctx, r.db)
}

// --------------------------------------------------
// Asignación
// --------------------------------------------------

func (r *DispatchGormRepository) FindAssignment(
	ctx context.Context,
	routeID string,
	day time.Time,
) (*models.RouteAssignment, error) {
	return findAssignment(ctx, r.db, routeID, day)
}

func (r *DispatchGormRepository) CreateAssignment(ctx context.Context, a *models.RouteAssignment) error {
	return wrap(r.db.WithContext(ctx).Create(a).Error, "create assignment")
}

// --------------------------------------------------
// Inventário
// --------------------------------------------------

func (r *DispatchGormRepository) CreateSnapshot(ctx context.Context, s *models.InventorySnapshot) error {
	return wrap(r.db.WithContext(ctx).Create(s).Error, "create snapshot")
}

func (r *DispatchGormRepository) LatestSnapshot(
	ctx context.Context,
	routeID string,
	day time.Time,
) (*models.InventorySnapshot, error) {

	var s models.InventorySnapshot
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("route_id = ? AND date = ?", routeID, day).
		Order("id DESC").
		First(&s).Error; err != nil {
		return nil, wrap(err, "latest snapshot")
	}
	return &s, nil
}

func (r *DispatchGormRepository) DriverSnapshots(
	ctx context.Context,
	driverID uint,
	limit int,
) ([]models.InventorySnapshot, error) {

	var rows []models.InventorySnapshot
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("driver_id = ?", driverID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, wrap(err, "driver snapshots")
	}
	return rows, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	domain "github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

var _ domain.Repository = (*ScheduleGormRepository)(nil)

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Referência
// --------------------------------------------------

func (r *ScheduleGormRepository) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return listRoutes(ctx, r.db)
}

func (r *ScheduleGormRepository) GetRoute(ctx context.Context, routeID string) (*models.Route, error) {
	return getRoute(ctx, r.db, routeID)
}

func (r *ScheduleGormRepository) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	return getClient(ctx, r.db, clientID)
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func (r *ScheduleGormRepository) DueClients(
	ctx context.Context,
	routeID string,
	day time.Time,
) ([]domain.DueClient, error) {
	return dueClients(ctx, r.db, routeID, day)
}

func (r *ScheduleGormRepository) IsRegularlyScheduled(
	ctx context.Context,
	clientID string,
	day time.Time,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClientRouteSchedule{}).
		Joins("JOIN clients c ON c.id = client_route_schedules.client_id").
		Where("client_route_schedules.client_id = ? AND c.active", clientID).
		Where(fmt.Sprintf("client_route_schedules.%s", domain.Column(day.Weekday()))).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "is regularly scheduled")
	}
	return count > 0, nil
}

func (r *ScheduleGormRepository) ClientsNotScheduledOn(
	ctx context.Context,
	weekday time.Weekday,
	day time.Time,
) ([]models.Client, error) {

	var clients []models.Client
	err := r.db.WithContext(ctx).
		Where("active AND NOT is_extra").
		Where(fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM client_route_schedules s WHERE s.client_id = clients.id AND s.%s)",
			domain.Column(weekday),
		)).
		Where("NOT EXISTS (SELECT 1 FROM extemporaneous_assignments e WHERE e.client_id = clients.id AND e.date = ?)", day).
		Order("name").
		Find(&clients).Error
	if err != nil {
		return nil, wrap(err, "clients not scheduled")
	}
	return clients, nil
}

// --------------------------------------------------
// Extemporâneos
// --------------------------------------------------

func (r *ScheduleGormRepository) FindExtemporaneous(
	ctx context.Context,
	clientID string,
	day time.Time,
) (*models.ExtemporaneousAssignment, error) {

	var a models.ExtemporaneousAssignment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("client_id = ? AND date = ?", clientID, day).
		First(&a).Error
	if err != nil {
		return nil, wrap(err, "find extemporaneous")
	}
	return &a, nil
}

// UpsertExtemporaneous mantém um único registro por cliente e data; a rota é sobrescrita.
func (r *ScheduleGormRepository) UpsertExtemporaneous(
	ctx context.Context,
	a *models.ExtemporaneousAssignment,
) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"route_id"}),
		}).
		Create(a).Error
	return wrap(err, "upsert extemporaneous")
}

func (r *ScheduleGormRepository) DeleteExtemporaneous(
	ctx context.Context,
	clientID string,
	day time.Time,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("client_id = ? AND date = ?", clientID, day).
		Delete(&models.ExtemporaneousAssignment{})
	return res.RowsAffected, wrap(res.Error, "delete extemporaneous")
}

func (r *ScheduleGormRepository) ListExtemporaneous(
	ctx context.Context,
	routeID string,
	day time.Time,
) ([]domain.ExtemporaneousClient, error) {

	var rows []domain.ExtemporaneousClient
	err := r.db.WithContext(ctx).
		Table("extemporaneous_assignments e").
		Select("e.client_id, c.name, c.address, e.route_id, e.date").
		Joins("JOIN clients c ON c.id = e.client_id").
		Where("e.route_id = ? AND e.date = ?", routeID, day).
		Order("c.name").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err, "list extemporaneous")
	}
	return rows, nil
}

func (r *ScheduleGormRepository) PurgeExtemporaneousBefore(ctx context.Context, day time.Time) (int64, error) {
	return purgeExtemporaneousBefore(ctx, r.db, day)
}

// --------------------------------------------------
// Acompanhamento
// --------------------------------------------------

func (r *ScheduleGormRepository) DropOpenTracking(
	ctx context.Context,
	routeID string,
	clientID string,
	day time.Time,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("route_id = ? AND client_id = ? AND date = ?", routeID, clientID, day).
		Where("status IN ?", []string{string(delivery.TrackingPending), string(delivery.TrackingActive)}).
		Where(`NOT EXISTS (
			SELECT 1 FROM orders o
			JOIN route_assignments a ON a.id = o.assignment_id
			WHERE o.client_id = tracking_states.client_id
			  AND a.route_id = tracking_states.route_id
			  AND a.date = tracking_states.date
			  AND o.is_extemporaneous
		)`).
		Delete(&models.TrackingState{})
	return res.RowsAffected, wrap(res.Error, "drop open tracking")
}

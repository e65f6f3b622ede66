package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

type DeliveryGormRepository struct {
	db *gorm.DB
}

func NewDeliveryGormRepository(db *gorm.DB) *DeliveryGormRepository {
	return &DeliveryGormRepository{db: db}
}

var _ domain.Repository = (*DeliveryGormRepository)(nil)

func (r *DeliveryGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DeliveryGormRepository{db: tx})
	})
}

func (r *DeliveryGormRepository) LockRouteDay(ctx context.Context, routeID string, day time.Time) error {
	err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", routeID+"|"+timezone.FormatDate(day)).
		Error
	return wrap(err, "lock route day")
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func (r *DeliveryGormRepository) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	return getClient(ctx, r.db, clientID)
}

func (r *DeliveryGormRepository) DueClients(
	ctx context.Context,
	routeID string,
	day time.Time,
) ([]schedule.DueClient, error) {
	return dueClients(ctx, r.db, routeID, day)
}

// --------------------------------------------------
// Acompanhamento
// --------------------------------------------------

func (r *DeliveryGormRepository) ListTracking(
	ctx context.Context,
	routeID string,
	day time.Time,
) ([]models.TrackingState, error) {

	var states []models.TrackingState
	if err := r.db.WithContext(ctx).
		Where("route_id = ? AND date = ?", routeID, day).
		Find(&states).Error; err != nil {
		return nil, wrap(err, "list tracking")
	}
	return states, nil
}

func (r *DeliveryGormRepository) FindActive(
	ctx context.Context,
	routeID string,
	day time.Time,
) (*models.TrackingState, error) {

	var st models.TrackingState
	if err := r.db.WithContext(ctx).
		Where("route_id = ? AND date = ? AND status = ?", routeID, day, string(domain.TrackingActive)).
		First(&st).Error; err != nil {
		return nil, wrap(err, "find active")
	}
	return &st, nil
}

func (r *DeliveryGormRepository) DemoteActive(
	ctx context.Context,
	routeID string,
	day time.Time,
	exceptClientID string,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.TrackingState{}).
		Where("route_id = ? AND date = ? AND status = ? AND client_id <> ?",
			routeID, day, string(domain.TrackingActive), exceptClientID).
		Updates(map[string]any{"status": string(domain.TrackingPending), "updated_at": time.Now()})
	return res.RowsAffected, wrap(res.Error, "demote active")
}

func (r *DeliveryGormRepository) SetTracking(
	ctx context.Context,
	routeID string,
	day time.Time,
	clientID string,
	status domain.TrackingStatus,
) error {
	st := models.TrackingState{
		RouteID:  routeID,
		Date:     day,
		ClientID: clientID,
		Status:   string(status),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "route_id"}, {Name: "date"}, {Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&st).Error
	return wrap(err, "set tracking")
}

func (r *DeliveryGormRepository) SeedTracking(
	ctx context.Context,
	routeID string,
	day time.Time,
	clientIDs []string,
) (int64, error) {
	if len(clientIDs) == 0 {
		return 0, nil
	}

	rows := make([]models.TrackingState, len(clientIDs))
	for i, id := range clientIDs {
		rows[i] = models.TrackingState{
			RouteID:  routeID,
			Date:     day,
			ClientID: id,
			Status:   string(domain.TrackingPending),
		}
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, wrap(res.Error, "seed tracking")
}

func (r *DeliveryGormRepository) ResetTrackingBefore(ctx context.Context, day time.Time) (int64, error) {
	return resetTrackingBefore(ctx, r.db, day)
}

func (r *DeliveryGormRepository) ResetActiveOn(ctx context.Context, day time.Time) (int64, error) {
	return resetActiveOn(ctx, r.db, day)
}

// --------------------------------------------------
// Asignación
// --------------------------------------------------

func (r *DeliveryGormRepository) FindAssignment(
	ctx context.Context,
	routeID string,
	day time.Time,
) (*models.RouteAssignment, error) {
	return findAssignment(ctx, r.db, routeID, day)
}

// --------------------------------------------------
// Pedidos
// --------------------------------------------------

func (r *DeliveryGormRepository) FindOrder(
	ctx context.Context,
	assignmentID uint,
	clientID string,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("assignment_id = ? AND client_id = ?", assignmentID, clientID).
		First(&o).Error; err != nil {
		return nil, wrap(err, "find order")
	}
	return &o, nil
}

// SaveOrder grava o pedido e substitui os itens.
func (r *DeliveryGormRepository) SaveOrder(ctx context.Context, o *models.Order) error {
	db := r.db.WithContext(ctx)

	if o.ID == 0 {
		if err := db.Omit(clause.Associations).Create(o).Error; err != nil {
			return wrap(err, "create order")
		}
	} else {
		if err := db.Omit(clause.Associations).Save(o).Error; err != nil {
			return wrap(err, "update order")
		}
		if err := db.Where("order_id = ?", o.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return wrap(err, "clear order items")
		}
	}

	if len(o.Items) == 0 {
		return nil
	}
	for i := range o.Items {
		o.Items[i].ID = 0
		o.Items[i].OrderID = o.ID
	}
	return wrap(db.Create(&o.Items).Error, "create order items")
}

func (r *DeliveryGormRepository) ListOrders(ctx context.Context, assignmentID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("assignment_id = ?", assignmentID).
		Find(&orders).Error; err != nil {
		return nil, wrap(err, "list orders")
	}
	return orders, nil
}

func (r *DeliveryGormRepository) ListExtemporaneousOrders(
	ctx context.Context,
	routeID string,
	day time.Time,
) ([]models.Order, error) {

	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Joins("JOIN route_assignments a ON a.id = orders.assignment_id").
		Where("a.route_id = ? AND a.date = ? AND orders.is_extemporaneous", routeID, day).
		Order("orders.id").
		Find(&orders).Error; err != nil {
		return nil, wrap(err, "list extemporaneous orders")
	}
	return orders, nil
}

func (r *DeliveryGormRepository) ClearExtemporaneousOrdersBefore(ctx context.Context, day time.Time) (int64, error) {
	return clearExtemporaneousOrdersBefore(ctx, r.db, day)
}

func (r *DeliveryGormRepository) ClientSchedules(
	ctx context.Context,
	clientID string,
) ([]models.ClientRouteSchedule, error) {

	var rows []models.ClientRouteSchedule
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("route_id").
		Find(&rows).Error; err != nil {
		return nil, wrap(err, "client schedules")
	}
	return rows, nil
}

// --------------------------------------------------
// Preços
// --------------------------------------------------

func (r *DeliveryGormRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	return listProducts(ctx, r.db)
}

func (r *DeliveryGormRepository) ClientOverrides(ctx context.Context, clientID string) ([]models.ClientPrice, error) {
	return clientOverrides(ctx, r.db, clientID)
}

// --------------------------------------------------
// Inventário
// --------------------------------------------------

func (r *DeliveryGormRepository) DecrementInventory(
	ctx context.Context,
	driverID uint,
	routeID string,
	day time.Time,
	quantities map[string]int,
) (bool, error) {

	db := r.db.WithContext(ctx)

	var snap models.InventorySnapshot
	err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("driver_id = ? AND route_id = ? AND date = ?", driverID, routeID, day).
		Order("id DESC").
		First(&snap).Error
	if err != nil {
		err = wrap(err, "find inventory snapshot")
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	for product, qty := range quantities {
		if qty <= 0 {
			continue
		}
		if err := db.
			Model(&models.InventoryItem{}).
			Where("snapshot_id = ? AND product_id = ?", snap.ID, product).
			Update("quantity", gorm.Expr("GREATEST(0, quantity - ?)", qty)).Error; err != nil {
			return true, wrap(err, "decrement inventory")
		}
	}

	return true, nil
}

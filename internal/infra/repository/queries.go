package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// --------------------------------------------------
// Consultas compartilhadas entre repositórios
// --------------------------------------------------

const dueClientsSQL = `
SELECT c.id, c.name, c.address, c.phone, c.lat, c.lng, c.is_extra,
       c.has_fridge, c.fridge_capacity, FALSE AS is_extemporaneous
FROM clients c
JOIN client_route_schedules s ON s.client_id = c.id
WHERE s.route_id = @route AND c.active AND s.%s
  AND NOT EXISTS (
    SELECT 1 FROM extemporaneous_assignments e
    WHERE e.client_id = c.id AND e.date = @day AND e.route_id <> @route
  )
UNION ALL
SELECT c.id, c.name, c.address, c.phone, c.lat, c.lng, c.is_extra,
       c.has_fridge, c.fridge_capacity, TRUE AS is_extemporaneous
FROM clients c
JOIN extemporaneous_assignments e ON e.client_id = c.id
WHERE e.route_id = @route AND e.date = @day AND c.active`

func dueClients(ctx context.Context, db *gorm.DB, routeID string, day time.Time) ([]schedule.DueClient, error) {
	var rows []schedule.DueClient
	err := db.WithContext(ctx).
		Raw(fmt.Sprintf(dueClientsSQL, schedule.Column(day.Weekday())), map[string]any{
			"route": routeID,
			"day":   day,
		}).
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err, "due clients")
	}
	return schedule.Arrange(rows), nil
}

func getClient(ctx context.Context, db *gorm.DB, clientID string) (*models.Client, error) {
	var c models.Client
	if err := db.WithContext(ctx).First(&c, "id = ?", clientID).Error; err != nil {
		return nil, wrap(err, "get client")
	}
	return &c, nil
}

func getRoute(ctx context.Context, db *gorm.DB, routeID string) (*models.Route, error) {
	var r models.Route
	if err := db.WithContext(ctx).First(&r, "id = ?", routeID).Error; err != nil {
		return nil, wrap(err, "get route")
	}
	return &r, nil
}

func listRoutes(ctx context.Context, db *gorm.DB) ([]models.Route, error) {
	var routes []models.Route
	if err := db.WithContext(ctx).
		Where("active").
		Order("id").
		Find(&routes).Error; err != nil {
		return nil, wrap(err, "list routes")
	}
	return routes, nil
}

func listProducts(ctx context.Context, db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	if err := db.WithContext(ctx).
		Where("active").
		Order("sort_order, id").
		Find(&products).Error; err != nil {
		return nil, wrap(err, "list products")
	}
	return products, nil
}

func clientOverrides(ctx context.Context, db *gorm.DB, clientID string) ([]models.ClientPrice, error) {
	var prices []models.ClientPrice
	if err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Find(&prices).Error; err != nil {
		return nil, wrap(err, "client overrides")
	}
	return prices, nil
}

func getDriver(ctx context.Context, db *gorm.DB, driverID uint) (*models.Driver, error) {
	var d models.Driver
	if err := db.WithContext(ctx).First(&d, driverID).Error; err != nil {
		return nil, wrap(err, "get driver")
	}
	return &d, nil
}

func findAssignment(ctx context.Context, db *gorm.DB, routeID string, day time.Time) (*models.RouteAssignment, error) {
	var a models.RouteAssignment
	if err := db.WithContext(ctx).
		Where("route_id = ? AND date = ?", routeID, day).
		First(&a).Error; err != nil {
		return nil, wrap(err, "find assignment")
	}
	return &a, nil
}

// --------------------------------------------------
// Fechamento diário
// --------------------------------------------------

func purgeExtemporaneousBefore(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("date < ?", day).
		Delete(&models.ExtemporaneousAssignment{})
	return res.RowsAffected, wrap(res.Error, "purge extemporaneous")
}

func resetTrackingBefore(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&models.TrackingState{}).
		Where("date < ? AND status <> ?", day, string(delivery.TrackingPending)).
		Updates(map[string]any{"status": string(delivery.TrackingPending), "updated_at": time.Now()})
	return res.RowsAffected, wrap(res.Error, "reset past tracking")
}

func resetActiveOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&models.TrackingState{}).
		Where("date = ? AND status = ?", day, string(delivery.TrackingActive)).
		Updates(map[string]any{"status": string(delivery.TrackingPending), "updated_at": time.Now()})
	return res.RowsAffected, wrap(res.Error, "reset stray active")
}

func clearExtemporaneousOrdersBefore(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&models.Order{}).
		Where("is_extemporaneous AND assignment_id IN (?)",
			db.Model(&models.RouteAssignment{}).Select("id").Where("date < ?", day),
		).
		Update("is_extemporaneous", false)
	return res.RowsAffected, wrap(res.Error, "clear extemporaneous orders")
}

package dispatch

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	GetRoute(ctx context.Context, routeID string) (*models.Route, error)
	GetDriver(ctx context.Context, driverID uint) (*models.Driver, error)
	ListActiveDrivers(ctx context.Context) ([]models.Driver, error)
	ListProducts(ctx context.Context) ([]models.Product, error)

	// -------- Asignación --------
	FindAssignment(ctx context.Context, routeID string, day time.Time) (*models.RouteAssignment, error)
	CreateAssignment(ctx context.Context, a *models.RouteAssignment) error

	// -------- Inventário --------
	CreateSnapshot(ctx context.Context, s *models.InventorySnapshot) error
	LatestSnapshot(ctx context.Context, routeID string, day time.Time) (*models.InventorySnapshot, error)
	DriverSnapshots(ctx context.Context, driverID uint, limit int) ([]models.InventorySnapshot, error)
}

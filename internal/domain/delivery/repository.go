package delivery

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Repository interface {
	// Transaction executa fn numa única transação; tx enxerga as escritas de fn.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// LockRouteDay serializa os fluxos da mesma rota e data até o fim da transação.
	LockRouteDay(ctx context.Context, routeID string, day time.Time) error

	// -------- Agenda --------
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
	DueClients(ctx context.Context, routeID string, day time.Time) ([]schedule.DueClient, error)

	// -------- Acompanhamento --------
	ListTracking(ctx context.Context, routeID string, day time.Time) ([]models.TrackingState, error)
	FindActive(ctx context.Context, routeID string, day time.Time) (*models.TrackingState, error)
	DemoteActive(ctx context.Context, routeID string, day time.Time, exceptClientID string) (int64, error)
	SetTracking(ctx context.Context, routeID string, day time.Time, clientID string, status TrackingStatus) error
	SeedTracking(ctx context.Context, routeID string, day time.Time, clientIDs []string) (int64, error)
	ResetTrackingBefore(ctx context.Context, day time.Time) (int64, error)
	ResetActiveOn(ctx context.Context, day time.Time) (int64, error)

	// -------- Asignación --------
	FindAssignment(ctx context.Context, routeID string, day time.Time) (*models.RouteAssignment, error)

	// -------- Pedidos --------
	FindOrder(ctx context.Context, assignmentID uint, clientID string) (*models.Order, error)
	SaveOrder(ctx context.Context, o *models.Order) error
	ListOrders(ctx context.Context, assignmentID uint) ([]models.Order, error)
	ListExtemporaneousOrders(ctx context.Context, routeID string, day time.Time) ([]models.Order, error)
	ClearExtemporaneousOrdersBefore(ctx context.Context, day time.Time) (int64, error)
	ClientSchedules(ctx context.Context, clientID string) ([]models.ClientRouteSchedule, error)

	// -------- Preços --------
	ListProducts(ctx context.Context) ([]models.Product, error)
	ClientOverrides(ctx context.Context, clientID string) ([]models.ClientPrice, error)

	// -------- Inventário --------
	// DecrementInventory baixa o estoque do dia sem deixar quantidade negativa.
	// Devolve false quando não há snapshot para o rutero, rota e data.
	DecrementInventory(ctx context.Context, driverID uint, routeID string, day time.Time, quantities map[string]int) (bool, error)
}

// OriginalRoute é uma rota fixa do cliente e se ele a atende no dia.
type OriginalRoute struct {
	RouteID  string `json:"route_id"`
	DueToday bool   `json:"due_today"`
}

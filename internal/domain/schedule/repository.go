package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Referência --------
	ListRoutes(ctx context.Context) ([]models.Route, error)
	GetRoute(ctx context.Context, routeID string) (*models.Route, error)
	GetClient(ctx context.Context, clientID string) (*models.Client, error)

	// -------- Resolução da agenda --------
	DueClients(ctx context.Context, routeID string, day time.Time) ([]DueClient, error)

	// IsRegularlyScheduled informa se o cliente tem entrega fixa em day em qualquer rota.
	IsRegularlyScheduled(ctx context.Context, clientID string, day time.Time) (bool, error)

	ClientsNotScheduledOn(ctx context.Context, weekday time.Weekday, day time.Time) ([]models.Client, error)

	// -------- Extemporâneos --------
	FindExtemporaneous(ctx context.Context, clientID string, day time.Time) (*models.ExtemporaneousAssignment, error)
	UpsertExtemporaneous(ctx context.Context, a *models.ExtemporaneousAssignment) error
	DeleteExtemporaneous(ctx context.Context, clientID string, day time.Time) (int64, error)
	ListExtemporaneous(ctx context.Context, routeID string, day time.Time) ([]ExtemporaneousClient, error)
	PurgeExtemporaneousBefore(ctx context.Context, day time.Time) (int64, error)

	// DropOpenTracking apaga o acompanhamento pendente ou ativo do cliente na rota.
	// Fica o registro de quem tem pedido extemporâneo nessa rota no dia.
	DropOpenTracking(ctx context.Context, routeID, clientID string, day time.Time) (int64, error)
}

type ExtemporaneousClient struct {
	ClientID string    `json:"client_id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	RouteID  string    `json:"route_id"`
	Date     time.Time `json:"date"`
}

package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	ListRoutes(ctx context.Context) ([]models.Route, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
	CreateClient(ctx context.Context, c *models.Client) error

	ListActive(ctx context.Context) ([]Ref, error)
	Search(ctx context.Context, q SearchQuery) ([]models.Client, error)
}

// Ref é a forma curta do cliente usada em listas de seleção.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SearchQuery struct {
	Term string
	// Day exclui clientes com extemporâneo nessa data.
	Day time.Time
	// ExcludeWeekday exclui clientes com entrega fixa nesse dia.
	ExcludeWeekday *time.Weekday
	IncludePhone   bool
	Limit          int
}

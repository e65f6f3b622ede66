package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Produtos --------
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	UpdateBasePrice(ctx context.Context, productID string, price decimal.Decimal) error

	// -------- Preços por cliente --------
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
	ClientOverrides(ctx context.Context, clientID string) ([]models.ClientPrice, error)
	UpsertClientPrice(ctx context.Context, p *models.ClientPrice) error
	DeleteClientPrice(ctx context.Context, clientID, productID string) (int64, error)
}

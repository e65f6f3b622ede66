package credit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	GetClient(ctx context.Context, clientID string) (*models.Client, error)
	// LockClient lê o cliente com FOR UPDATE.
	LockClient(ctx context.Context, clientID string) (*models.Client, error)
	SaveCredit(ctx context.Context, c *models.Client) error

	AddEntry(ctx context.Context, e *models.CreditLedgerEntry) error
	RecentEntries(ctx context.Context, clientID string, limit int) ([]models.CreditLedgerEntry, error)

	GetOrder(ctx context.Context, orderID uint) (*models.Order, error)
	AddOrderCredit(ctx context.Context, orderID uint, amount decimal.Decimal) error
}

package cashflow

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Filter struct {
	DriverID *uint
	From     *time.Time
	To       *time.Time
}

func Validate(reason string, amount decimal.Decimal) error {
	if strings.TrimSpace(reason) == "" {
		return httperr.ErrBusiness("reason_required")
	}
	if !amount.IsPositive() {
		return httperr.ErrBusiness("invalid_amount")
	}
	return nil
}

type Repository interface {
	GetDriver(ctx context.Context, driverID uint) (*models.Driver, error)
	Create(ctx context.Context, o *models.CashOutflow) error
	List(ctx context.Context, f Filter) ([]models.CashOutflow, error)
}

package credit

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// Recompute mantém available = limit - used.
func Recompute(c *models.Client) {
	c.CreditAvailable = c.CreditLimit.Sub(c.CreditUsed)
}

func SetLimit(c *models.Client, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return httperr.ErrBusiness("invalid_amount")
	}
	if limit.LessThan(c.CreditUsed) {
		return httperr.ErrBusiness("limit_below_used")
	}
	c.CreditLimit = limit
	Recompute(c)
	return nil
}

// Use consome crédito: 0 < amount <= disponível.
func Use(c *models.Client, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return httperr.ErrBusiness("invalid_amount")
	}
	Recompute(c)
	if amount.GreaterThan(c.CreditAvailable) {
		return httperr.ErrBusiness("amount_exceeds_available")
	}
	c.CreditUsed = c.CreditUsed.Add(amount)
	Recompute(c)
	return nil
}

// Pay registra pagamento: 0 < amount <= usado.
func Pay(c *models.Client, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return httperr.ErrBusiness("invalid_amount")
	}
	if amount.GreaterThan(c.CreditUsed) {
		return httperr.ErrBusiness("amount_exceeds_used")
	}
	c.CreditUsed = c.CreditUsed.Sub(amount)
	Recompute(c)
	return nil
}

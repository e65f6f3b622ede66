package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CreditKindUse     = "uso"
	CreditKindPayment = "pago"
)

// CreditLedgerEntry é append-only.
type CreditLedgerEntry struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ClientID    string          `gorm:"size:64;not null;index" json:"client_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Kind        string          `gorm:"size:10;not null" json:"kind"`
	OrderID     *uint           `json:"order_id"`
	Description string          `gorm:"size:255" json:"description"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

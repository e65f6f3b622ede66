package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `gorm:"primaryKey;size:30" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	BasePrice decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"base_price"`
	Active    bool            `gorm:"not null" json:"active"`
	SortOrder int             `gorm:"not null;default:0" json:"sort_order"`

	UpdatedAt time.Time `json:"updated_at"`
}

// ClientPrice é o preço personalizado de um produto para um cliente.
type ClientPrice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ClientID  string          `gorm:"size:64;not null;uniqueIndex:idx_client_price" json:"client_id"`
	ProductID string          `gorm:"size:30;not null;uniqueIndex:idx_client_price" json:"product_id"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	UpdatedAt time.Time `json:"updated_at"`
}

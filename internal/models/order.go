package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order guarda o resultado de negócio da entrega de um cliente numa asignación.
type Order struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AssignmentID uint   `gorm:"not null;uniqueIndex:idx_order_assignment_client" json:"assignment_id"`
	ClientID     string `gorm:"size:64;not null;uniqueIndex:idx_order_assignment_client;index" json:"client_id"`

	// vazio = pendente
	Status             string `gorm:"size:20;not null;default:''" json:"status"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`

	IsExtemporaneous bool           `gorm:"not null;index" json:"is_extemporaneous"`
	OriginalRoutes   datatypes.JSON `gorm:"type:jsonb" json:"original_routes,omitempty"`

	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	CreditUsed decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"credit_used"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	ClosedAt  *time.Time `json:"closed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   uint            `gorm:"not null;uniqueIndex:idx_order_item_product" json:"-"`
	ProductID string          `gorm:"size:30;not null;uniqueIndex:idx_order_item_product" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
}

// Quantities devolve as quantidades por produto.
func (o *Order) Quantities() map[string]int {
	out := make(map[string]int, len(o.Items))
	for _, it := range o.Items {
		out[it.ProductID] = it.Quantity
	}
	return out
}

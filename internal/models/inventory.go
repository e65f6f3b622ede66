package models

import "time"

// InventorySnapshot ("sobrantes") é o estoque entregue ao rutero para a rota no dia.
type InventorySnapshot struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	DriverID uint      `gorm:"not null;index" json:"driver_id"`
	RouteID  string    `gorm:"size:20;not null;index" json:"route_id"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`

	Items []InventoryItem `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

type InventoryItem struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	SnapshotID uint   `gorm:"not null;uniqueIndex:idx_inventory_item_product" json:"-"`
	ProductID  string `gorm:"size:30;not null;uniqueIndex:idx_inventory_item_product" json:"product_id"`
	Quantity   int    `gorm:"not null" json:"quantity"`
}

func (s *InventorySnapshot) Quantities() map[string]int {
	out := make(map[string]int, len(s.Items))
	for _, it := range s.Items {
		out[it.ProductID] = it.Quantity
	}
	return out
}

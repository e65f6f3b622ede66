package models

import "time"

// TrackingState é o estado de acompanhamento do cliente na rota do dia.
// O índice parcial impede dois clientes "activo" na mesma rota e data.
type TrackingState struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RouteID  string    `gorm:"size:20;not null;uniqueIndex:idx_tracking_route_date_client;uniqueIndex:idx_tracking_one_active,where:status = 'activo'" json:"route_id"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_tracking_route_date_client;uniqueIndex:idx_tracking_one_active,where:status = 'activo';index" json:"date"`
	ClientID string    `gorm:"size:64;not null;uniqueIndex:idx_tracking_route_date_client" json:"client_id"`
	Status   string    `gorm:"size:20;not null" json:"status"`

	UpdatedAt time.Time `json:"updated_at"`
}

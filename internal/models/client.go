package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`

	Name    string   `gorm:"size:150;not null;index" json:"name"`
	Address string   `gorm:"size:255" json:"address"`
	Phone   string   `gorm:"size:30" json:"phone"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`

	// Extra é uma vaga de reserva sintética da rota, não um local físico.
	IsExtra bool `gorm:"not null" json:"is_extra"`
	Active  bool `gorm:"not null;index" json:"active"`

	HasFridge      bool   `gorm:"not null" json:"has_fridge"`
	FridgeCapacity string `gorm:"size:50" json:"fridge_capacity"`

	CreditLimit     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"credit_limit"`
	CreditUsed      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"credit_used"`
	CreditAvailable decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"credit_available"`

	Schedules []ClientRouteSchedule `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"schedules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientRouteSchedule liga cliente e rota com os dias fixos de entrega.
type ClientRouteSchedule struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID string `gorm:"size:64;not null;uniqueIndex:idx_schedule_client_route" json:"client_id"`
	RouteID  string `gorm:"size:20;not null;uniqueIndex:idx_schedule_client_route;index" json:"route_id"`

	Monday    bool `gorm:"not null" json:"monday"`
	Tuesday   bool `gorm:"not null" json:"tuesday"`
	Wednesday bool `gorm:"not null" json:"wednesday"`
	Thursday  bool `gorm:"not null" json:"thursday"`
	Friday    bool `gorm:"not null" json:"friday"`
	Saturday  bool `gorm:"not null" json:"saturday"`
	Sunday    bool `gorm:"not null" json:"sunday"`
}

// ExtemporaneousAssignment coloca o cliente numa rota apenas na data indicada.
type ExtemporaneousAssignment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ClientID string    `gorm:"size:64;not null;uniqueIndex:idx_extemporaneous_client_date" json:"client_id"`
	RouteID  string    `gorm:"size:20;not null;index" json:"route_id"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_extemporaneous_client_date;index" json:"date"`

	CreatedAt time.Time `json:"created_at"`
}

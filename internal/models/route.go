package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Route struct {
	ID     string `gorm:"primaryKey;size:20" json:"id"`
	Name   string `gorm:"size:60;not null" json:"name"`
	Active bool   `gorm:"not null" json:"active"`
}

type Driver struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:30" json:"phone"`
	Active bool   `gorm:"not null;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RouteAssignment registra que a rota foi despachada para um rutero no dia.
type RouteAssignment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RouteID  string    `gorm:"size:20;not null;uniqueIndex:idx_assignment_route_date" json:"route_id"`
	DriverID uint      `gorm:"not null;index" json:"driver_id"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_assignment_route_date;index" json:"date"`
	Status   string    `gorm:"size:20;not null" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CashOutflow é uma saída de dinheiro registrada por um rutero.
type CashOutflow struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DriverID uint   `gorm:"not null;index" json:"driver_id"`
	Driver   Driver `gorm:"constraint:OnDelete:RESTRICT" json:"driver"`

	Reason string          `gorm:"size:255;not null" json:"reason"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

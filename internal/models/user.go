package models

import "time"

type OperatorRole string

const (
	RoleOperator OperatorRole = "operator"
	RoleAdmin    OperatorRole = "admin"
)

func (r OperatorRole) Valid() bool {
	return r == RoleOperator || r == RoleAdmin
}

// User é quem acessa o painel de despacho. Motoristas não têm login.
type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:100;not null" json:"name"`
	Email        string       `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"size:255;not null" json:"-"`
	Role         OperatorRole `gorm:"size:20;not null;default:'operator'" json:"role"`
	Active       bool         `gorm:"not null;default:true" json:"active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (User) TableName() string { return "operators" }

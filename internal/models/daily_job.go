package models

import "time"

// DailyJob guarda a última data em que uma rotina diária rodou.
type DailyJob struct {
	Name        string    `gorm:"primaryKey;size:50" json:"name"`
	LastRunDate time.Time `gorm:"type:date;not null" json:"last_run_date"`
	Details     string    `gorm:"type:text" json:"details"`

	UpdatedAt time.Time `json:"updated_at"`
}

package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = datatypes.JSON(b)
		}
	}

	entry := models.AuditLog{
		UserID:   ev.UserID,
		RouteID:  ev.RouteID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return l.db.WithContext(ctx).Create(&entry).Error
}

// --------------------------------------------------
// Consulta
// --------------------------------------------------

type Filter struct {
	RouteID string
	Action  string
	Limit   int
	Offset  int
}

// List devolve os eventos mais recentes primeiro e o total sem paginação.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	query := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.RouteID != "" {
		query = query.Where("route_id = ?", f.RouteID)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ice-routes/internal/domain/client"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

var _ domain.Repository = (*ClientGormRepository)(nil)

func (r *ClientGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ClientGormRepository{db: tx})
	})
}

func (r *ClientGormRepository) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return listRoutes(ctx, r.db)
}

func (r *ClientGormRepository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Count(&count).Error; err != nil {
		return false, wrap(err, "client exists")
	}
	return count > 0, nil
}

// CreateClient grava o cliente junto com as agendas.
func (r *ClientGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return wrap(r.db.WithContext(ctx).Create(c).Error, "create client")
}

func (r *ClientGormRepository) ListActive(ctx context.Context) ([]domain.Ref, error) {
	var refs []domain.Ref
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Select("id, name").
		Where("active AND NOT is_extra").
		Order("name").
		Scan(&refs).Error; err != nil {
		return nil, wrap(err, "list active clients")
	}
	return refs, nil
}

func (r *ClientGormRepository) Search(ctx context.Context, q domain.SearchQuery) ([]models.Client, error) {
	term := "%" + strings.TrimSpace(q.Term) + "%"

	query := r.db.WithContext(ctx).
		Where("active AND NOT is_extra")

	if q.IncludePhone {
		query = query.Where("(name ILIKE ? OR address ILIKE ? OR phone ILIKE ?)", term, term, term)
	} else {
		query = query.Where("(name ILIKE ? OR address ILIKE ?)", term, term)
	}

	if q.ExcludeWeekday != nil {
		query = query.Where(fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM client_route_schedules s WHERE s.client_id = clients.id AND s.%s)",
			schedule.Column(*q.ExcludeWeekday),
		))
	}
	if !q.Day.IsZero() {
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM extemporaneous_assignments e WHERE e.client_id = clients.id AND e.date = ?)",
			q.Day,
		)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var clients []models.Client
	if err := query.
		Preload("Schedules").
		Order("name").
		Find(&clients).Error; err != nil {
		return nil, wrap(err, "search clients")
	}
	return clients, nil
}

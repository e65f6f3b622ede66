package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/ice-routes/internal/domain/pricing"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type PricingGormRepository struct {
	db *gorm.DB
}

func NewPricingGormRepository(db *gorm.DB) *PricingGormRepository {
	return &PricingGormRepository{db: db}
}

var _ domain.Repository = (*PricingGormRepository)(nil)

func (r *PricingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PricingGormRepository{db: tx})
	})
}

func (r *PricingGormRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	return listProducts(ctx, r.db)
}

func (r *PricingGormRepository) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", productID).Error; err != nil {
		return nil, wrap(err, "get product")
	}
	return &p, nil
}

func (r *PricingGormRepository) UpdateBasePrice(
	ctx context.Context,
	productID string,
	price decimal.Decimal,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{"base_price": price, "updated_at": time.Now()})
	if res.Error != nil {
		return wrap(res.Error, "update base price")
	}
	if res.RowsAffected == 0 {
		return wrap(gorm.ErrRecordNotFound, "update base price")
	}
	return nil
}

func (r *PricingGormRepository) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	return getClient(ctx, r.db, clientID)
}

func (r *PricingGormRepository) ClientOverrides(ctx context.Context, clientID string) ([]models.ClientPrice, error) {
	return clientOverrides(ctx, r.db, clientID)
}

func (r *PricingGormRepository) UpsertClientPrice(ctx context.Context, p *models.ClientPrice) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(p).Error
	return wrap(err, "upsert client price")
}

func (r *PricingGormRepository) DeleteClientPrice(
	ctx context.Context,
	clientID, productID string,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("client_id = ? AND product_id = ?", clientID, productID).
		Delete(&models.ClientPrice{})
	return res.RowsAffected, wrap(res.Error, "delete client price")
}

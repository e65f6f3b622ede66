package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/ice-routes/internal/domain/credit"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type CreditGormRepository struct {
	db *gorm.DB
}

func NewCreditGormRepository(db *gorm.DB) *CreditGormRepository {
	return &CreditGormRepository{db: db}
}

var _ domain.Repository = (*CreditGormRepository)(nil)

func (r *CreditGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CreditGormRepository{db: tx})
	})
}

func (r *CreditGormRepository) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	return getClient(ctx, r.db, clientID)
}

func (r *CreditGormRepository) LockClient(ctx context.Context, clientID string) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", clientID).Error; err != nil {
		return nil, wrap(err, "lock client")
	}
	return &c, nil
}

func (r *CreditGormRepository) SaveCredit(ctx context.Context, c *models.Client) error {
	err := r.db.WithContext(ctx).
		Model(c).
		Select("credit_limit", "credit_used", "credit_available", "updated_at").
		Updates(c).Error
	return wrap(err, "save credit")
}

func (r *CreditGormRepository) AddEntry(ctx context.Context, e *models.CreditLedgerEntry) error {
	return wrap(r.db.WithContext(ctx).Create(e).Error, "add credit entry")
}

func (r *CreditGormRepository) RecentEntries(
	ctx context.Context,
	clientID string,
	limit int,
) ([]models.CreditLedgerEntry, error) {

	var rows []models.CreditLedgerEntry
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, wrap(err, "recent credit entries")
	}
	return rows, nil
}

func (r *CreditGormRepository) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, orderID).Error; err != nil {
		return nil, wrap(err, "get order")
	}
	return &o, nil
}

func (r *CreditGormRepository) AddOrderCredit(
	ctx context.Context,
	orderID uint,
	amount decimal.Decimal,
) error {
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("credit_used", gorm.Expr("credit_used + ?", amount)).Error
	return wrap(err, "add order credit")
}

package db

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/ice-routes/internal/models"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Route{},
		&models.Driver{},
		&models.Product{},
		&models.Client{},
		&models.ClientRouteSchedule{},
		&models.ClientPrice{},
		&models.ExtemporaneousAssignment{},
		&models.RouteAssignment{},
		&models.Order{},
		&models.OrderItem{},
		&models.TrackingState{},
		&models.InventorySnapshot{},
		&models.InventoryItem{},
		&models.CreditLedgerEntry{},
		&models.CashOutflow{},
		&models.DailyJob{},
		&models.AuditLog{},
		&models.User{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate")
	}

	return Seed(db)
}

// --------------------------------------------------
// Dados de referência
// --------------------------------------------------

var DefaultRoutes = []models.Route{
	{ID: "101", Name: "Ruta 101", Active: true},
	{ID: "102", Name: "Ruta 102", Active: true},
	{ID: "103", Name: "Ruta 103", Active: true},
	{ID: "104", Name: "Ruta 104", Active: true},
	{ID: "105", Name: "Ruta 105", Active: true},
	{ID: "106", Name: "Ruta 106", Active: true},
	{ID: "107", Name: "Ruta 107", Active: true},
	{ID: "LOCAL", Name: "Ruta LOCAL", Active: true},
}

var DefaultProducts = []models.Product{
	{ID: "gourmet15", Name: "Gourmet 15 kg", BasePrice: decimal.Zero, Active: true, SortOrder: 1},
	{ID: "gourmet5", Name: "Gourmet 5 kg", BasePrice: decimal.Zero, Active: true, SortOrder: 2},
	{ID: "barraHielo", Name: "Barra de hielo", BasePrice: decimal.Zero, Active: true, SortOrder: 3},
	{ID: "mediaBarra", Name: "Media barra", BasePrice: decimal.Zero, Active: true, SortOrder: 4},
	{ID: "premium", Name: "Premium", BasePrice: decimal.Zero, Active: true, SortOrder: 5},
}

// Seed insere rotas e produtos que ainda não existem; não sobrescreve preços.
func Seed(db *gorm.DB) error {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&DefaultRoutes).Error; err != nil {
		return errors.Wrap(err, "seed routes")
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&DefaultProducts).Error; err != nil {
		return errors.Wrap(err, "seed products")
	}

	var drivers int64
	if err := db.Model(&models.Driver{}).Where("active").Count(&drivers).Error; err != nil {
		return errors.Wrap(err, "count drivers")
	}

	log.Info().
		Int("routes", len(DefaultRoutes)).
		Int("products", len(DefaultProducts)).
		Int64("drivers", drivers).
		Msg("reference data ready")

	// sem rutero nenhuma rota pode ser despachada
	if drivers == 0 {
		log.Warn().Msg("no active drivers; register one with `ice-routes create-driver`")
	}

	return nil
}

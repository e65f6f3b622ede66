package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	pricing "github.com/BruksfildServices01/ice-routes/internal/domain/pricing"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// ======================================================
// Catálogo
// ======================================================

type ListProducts struct {
	repo pricing.Repository
}

func NewListProducts(repo pricing.Repository) *ListProducts {
	return &ListProducts{repo: repo}
}

func (uc *ListProducts) Execute(ctx context.Context) ([]models.Product, error) {
	return uc.repo.ListProducts(ctx)
}

type SetBasePrice struct {
	repo  pricing.Repository
	audit *audit.Dispatcher
}

func NewSetBasePrice(repo pricing.Repository, audit *audit.Dispatcher) *SetBasePrice {
	return &SetBasePrice{repo: repo, audit: audit}
}

func (uc *SetBasePrice) Execute(ctx context.Context, productID string, price decimal.Decimal) (*models.Product, error) {
	if err := pricing.ValidatePrice(price); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBasePrice(ctx, productID, price); err != nil {
		return nil, notFound(err, "product_not_found")
	}

	p, err := uc.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFound(err, "product_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "base_price_updated",
		Entity:   "product",
		EntityID: productID,
		Metadata: map[string]any{"price": price},
	})
	return p, nil
}

// ======================================================
// Preços por cliente
// ======================================================

type GetClientPrices struct {
	repo pricing.Repository
}

func NewGetClientPrices(repo pricing.Repository) *GetClientPrices {
	return &GetClientPrices{repo: repo}
}

func (uc *GetClientPrices) Execute(ctx context.Context, clientID string) ([]pricing.Line, error) {
	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return nil, notFound(err, "client_not_found")
	}

	products, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := uc.repo.ClientOverrides(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return pricing.NewSheet(products, overrides).Lines(), nil
}

// SetClientPrices grava preços personalizados; um mapa com um só produto é o caso unitário.
type SetClientPrices struct {
	repo  pricing.Repository
	audit *audit.Dispatcher
}

func NewSetClientPrices(repo pricing.Repository, audit *audit.Dispatcher) *SetClientPrices {
	return &SetClientPrices{repo: repo, audit: audit}
}

func (uc *SetClientPrices) Execute(
	ctx context.Context,
	clientID string,
	prices map[string]decimal.Decimal,
) ([]pricing.Line, error) {

	if len(prices) == 0 {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	for _, p := range prices {
		if err := pricing.ValidatePrice(p); err != nil {
			return nil, err
		}
	}

	var lines []pricing.Line
	err := uc.repo.Transaction(ctx, func(tx pricing.Repository) error {

		// 1️⃣ Cliente
		if _, err := tx.GetClient(ctx, clientID); err != nil {
			return notFound(err, "client_not_found")
		}

		// 2️⃣ Produtos do catálogo
		products, err := tx.ListProducts(ctx)
		if err != nil {
			return err
		}
		sheet := pricing.NewSheet(products, nil)
		for id := range prices {
			if !sheet.Has(id) {
				return httperr.ErrBusiness("invalid_product")
			}
		}

		// 3️⃣ Upsert
		for id, price := range prices {
			if err := tx.UpsertClientPrice(ctx, &models.ClientPrice{
				ClientID:  clientID,
				ProductID: id,
				Price:     price,
			}); err != nil {
				return err
			}
		}

		overrides, err := tx.ClientOverrides(ctx, clientID)
		if err != nil {
			return err
		}
		lines = pricing.NewSheet(products, overrides).Lines()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "client_prices_updated",
		Entity:   "client",
		EntityID: clientID,
		Metadata: prices,
	})
	return lines, nil
}

type ClearClientPrice struct {
	repo  pricing.Repository
	audit *audit.Dispatcher
}

func NewClearClientPrice(repo pricing.Repository, audit *audit.Dispatcher) *ClearClientPrice {
	return &ClearClientPrice{repo: repo, audit: audit}
}

// Execute volta o produto ao preço base; informa se havia preço personalizado.
func (uc *ClearClientPrice) Execute(ctx context.Context, clientID, productID string) (bool, error) {
	n, err := uc.repo.DeleteClientPrice(ctx, clientID, productID)
	if err != nil {
		return false, err
	}
	if n > 0 {
		uc.audit.Dispatch(audit.Event{
			Action:   "client_price_cleared",
			Entity:   "client",
			EntityID: clientID,
			Metadata: map[string]any{"product_id": productID},
		})
	}
	return n > 0, nil
}

func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	dispatch "github.com/BruksfildServices01/ice-routes/internal/domain/dispatch"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
	"github.com/BruksfildServices01/ice-routes/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type DispatchRouteInput struct {
	RouteID  string                      `json:"route_id" validate:"required,route_id"`
	DriverID uint                        `json:"driver_id" validate:"required"`
	Clients  []dispatch.ClientQuantities `json:"clients" validate:"dive"`
}

type DispatchResult struct {
	Assignment *models.RouteAssignment   `json:"assignment"`
	Inventory  *models.InventorySnapshot `json:"inventory"`
}

// ======================================================
// DispatchRoute
// ======================================================

// DispatchRoute entrega a rota ao rutero: cria a asignación do dia e o
// inventário inicial com a soma das quantidades planejadas, tudo ou nada.
type DispatchRoute struct {
	repo  dispatch.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewDispatchRoute(
	repo dispatch.Repository,
	audit *audit.Dispatcher,
) *DispatchRoute {
	return &DispatchRoute{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *DispatchRoute) Execute(ctx context.Context, in DispatchRouteInput) (*DispatchResult, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	today := timezone.DateOf(uc.now())
	result := &DispatchResult{}

	err := uc.repo.Transaction(ctx, func(tx dispatch.Repository) error {

		// 1️⃣ Rota
		if _, err := tx.GetRoute(ctx, in.RouteID); err != nil {
			return notFound(err, "route_not_found")
		}

		// 2️⃣ Rutero ativo
		driver, err := tx.GetDriver(ctx, in.DriverID)
		if err != nil {
			return notFound(err, "driver_not_found")
		}
		if !driver.Active {
			return httperr.ErrBusiness("driver_inactive")
		}

		// 3️⃣ Uma asignación por rota e dia
		if _, err := tx.FindAssignment(ctx, in.RouteID, today); err == nil {
			return httperr.ErrBusiness("route_already_dispatched")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		// 4️⃣ Totais por produto
		products, err := tx.ListProducts(ctx)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(products))
		for _, p := range products {
			known[p.ID] = true
		}
		totals := dispatch.SumQuantities(in.Clients)
		if err := dispatch.ValidateProducts(totals, known); err != nil {
			return err
		}

		// 5️⃣ Asignación
		a := &models.RouteAssignment{
			RouteID:  in.RouteID,
			DriverID: in.DriverID,
			Date:     today,
			Status:   dispatch.StatusInProgress,
		}
		if err := tx.CreateAssignment(ctx, a); err != nil {
			if httperr.IsBusiness(err, "concurrent_update") {
				return httperr.ErrBusiness("route_already_dispatched")
			}
			return err
		}

		// 6️⃣ Inventário inicial (todos os produtos do catálogo)
		snap := &models.InventorySnapshot{
			DriverID: in.DriverID,
			RouteID:  in.RouteID,
			Date:     today,
		}
		for _, p := range products {
			snap.Items = append(snap.Items, models.InventoryItem{
				ProductID: p.ID,
				Quantity:  totals[p.ID],
			})
		}
		if err := tx.CreateSnapshot(ctx, snap); err != nil {
			return err
		}

		result.Assignment = a
		result.Inventory = snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RouteID:  in.RouteID,
		Action:   "route_dispatched",
		Entity:   "route_assignment",
		EntityID: in.RouteID,
		Metadata: map[string]any{
			"driver_id": in.DriverID,
			"inventory": result.Inventory.Quantities(),
		},
	})

	return result, nil
}

func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

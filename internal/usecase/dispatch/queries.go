package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/domain"
	dispatch "github.com/BruksfildServices01/ice-routes/internal/domain/dispatch"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// ======================================================
// GetAssignment
// ======================================================

type GetAssignment struct {
	repo dispatch.Repository
	now  func() time.Time
}

func NewGetAssignment(repo dispatch.Repository) *GetAssignment {
	return &GetAssignment{repo: repo, now: timezone.Now}
}

func (uc *GetAssignment) Execute(ctx context.Context, routeID string) (*models.RouteAssignment, error) {
	a, err := uc.repo.FindAssignment(ctx, routeID, timezone.DateOf(uc.now()))
	if err != nil {
		return nil, notFound(err, "assignment_not_found")
	}
	return a, nil
}

// ======================================================
// ListDrivers
// ======================================================

type ListDrivers struct {
	repo dispatch.Repository
}

func NewListDrivers(repo dispatch.Repository) *ListDrivers {
	return &ListDrivers{repo: repo}
}

func (uc *ListDrivers) Execute(ctx context.Context) ([]models.Driver, error) {
	return uc.repo.ListActiveDrivers(ctx)
}

// ======================================================
// AvailableInventory
// ======================================================

// AvailableInventory devolve o estoque atual da rota hoje; sem despacho, tudo zero.
type AvailableInventory struct {
	repo dispatch.Repository
	now  func() time.Time
}

func NewAvailableInventory(repo dispatch.Repository) *AvailableInventory {
	return &AvailableInventory{repo: repo, now: timezone.Now}
}

func (uc *AvailableInventory) Execute(ctx context.Context, routeID string) (map[string]int, error) {
	products, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(products))
	for _, p := range products {
		out[p.ID] = 0
	}

	snap, err := uc.repo.LatestSnapshot(ctx, routeID, timezone.DateOf(uc.now()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, nil
		}
		return nil, err
	}

	for id, qty := range snap.Quantities() {
		out[id] = qty
	}
	return out, nil
}

// ======================================================
// DriverHistory
// ======================================================

const defaultHistoryLimit = 30

type DriverHistory struct {
	repo dispatch.Repository
}

func NewDriverHistory(repo dispatch.Repository) *DriverHistory {
	return &DriverHistory{repo: repo}
}

// Execute lista os inventários do rutero, mais recentes primeiro.
func (uc *DriverHistory) Execute(ctx context.Context, driverID uint, limit int) ([]models.InventorySnapshot, error) {
	if _, err := uc.repo.GetDriver(ctx, driverID); err != nil {
		return nil, notFound(err, "driver_not_found")
	}
	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}
	return uc.repo.DriverSnapshots(ctx, driverID, limit)
}

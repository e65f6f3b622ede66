package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/domain"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/domain/pricing"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

func businessIfNotFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func trackingMap(
	ctx context.Context,
	repo delivery.Repository,
	routeID string,
	day time.Time,
) (map[string]delivery.TrackingStatus, error) {

	rows, err := repo.ListTracking(ctx, routeID, day)
	if err != nil {
		return nil, err
	}

	states := make(map[string]delivery.TrackingStatus, len(rows))
	for _, r := range rows {
		states[r.ClientID] = delivery.TrackingStatus(r.Status)
	}
	return states, nil
}

// onRoute: o cliente tem entrega hoje ou já tem acompanhamento na rota.
func onRoute(due []schedule.DueClient, states map[string]delivery.TrackingStatus, clientID string) bool {
	if schedule.Contains(due, clientID) {
		return true
	}
	_, ok := states[clientID]
	return ok
}

// activate rebaixa o ativo atual e promove clientID, na mesma transação.
func activate(
	ctx context.Context,
	tx delivery.Repository,
	routeID string,
	day time.Time,
	clientID string,
) error {
	if _, err := tx.DemoteActive(ctx, routeID, day, clientID); err != nil {
		return err
	}
	return tx.SetTracking(ctx, routeID, day, clientID, delivery.TrackingActive)
}

// advance escolhe o próximo ativo depois de closedID ter sido encerrado.
// Se outro cliente já estiver ativo, nada muda.
func advance(
	ctx context.Context,
	tx delivery.Repository,
	routeID string,
	day time.Time,
	due []schedule.DueClient,
	closedID string,
) (*string, error) {

	states, err := trackingMap(ctx, tx, routeID, day)
	if err != nil {
		return nil, err
	}

	for id, st := range states {
		if st == delivery.TrackingActive && id != closedID {
			return nil, nil
		}
	}

	next, ok := delivery.NextActive(schedule.IDs(due), states, closedID)
	if !ok {
		return nil, nil
	}

	if err := activate(ctx, tx, routeID, day, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// track grava o estado respeitando a regra de não regredir estados terminais.
func track(
	ctx context.Context,
	tx delivery.Repository,
	routeID string,
	day time.Time,
	states map[string]delivery.TrackingStatus,
	clientID string,
	next delivery.TrackingStatus,
) error {
	if err := delivery.CanTrack(delivery.StateOf(states, clientID), next); err != nil {
		return err
	}
	return tx.SetTracking(ctx, routeID, day, clientID, next)
}

func requireAssignment(
	ctx context.Context,
	tx delivery.Repository,
	routeID string,
	day time.Time,
) (*models.RouteAssignment, error) {
	a, err := tx.FindAssignment(ctx, routeID, day)
	if err != nil {
		return nil, businessIfNotFound(err, "route_not_dispatched")
	}
	return a, nil
}

// loadOrder devolve o pedido do cliente na asignación ou um novo,
// desde que o cliente tenha entrega hoje na rota.
func loadOrder(
	ctx context.Context,
	tx delivery.Repository,
	a *models.RouteAssignment,
	due []schedule.DueClient,
	clientID string,
) (*models.Order, error) {

	o, err := tx.FindOrder(ctx, a.ID, clientID)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if !schedule.Contains(due, clientID) {
		return nil, httperr.ErrBusiness("client_not_due")
	}
	return &models.Order{
		AssignmentID: a.ID,
		ClientID:     clientID,
		Status:       string(delivery.OrderPending),
	}, nil
}

func sheetFor(ctx context.Context, tx delivery.Repository, clientID string) (*pricing.Sheet, error) {
	products, err := tx.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := tx.ClientOverrides(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return pricing.NewSheet(products, overrides), nil
}

// applyItems substitui os itens do pedido e recalcula o total.
func applyItems(o *models.Order, sheet *pricing.Sheet, quantities map[string]int) error {
	items, err := sheet.Items(quantities)
	if err != nil {
		return err
	}
	o.Items = items
	o.Total = pricing.Total(items)
	return nil
}

func toDueClient(c *models.Client) schedule.DueClient {
	return schedule.DueClient{
		ID:             c.ID,
		Name:           schedule.CleanName(c.Name),
		Address:        c.Address,
		Phone:          c.Phone,
		Lat:            c.Lat,
		Lng:            c.Lng,
		IsExtra:        c.IsExtra,
		HasFridge:      c.HasFridge,
		FridgeCapacity: c.FridgeCapacity,
	}
}

func findDue(due []schedule.DueClient, clientID string) (schedule.DueClient, bool) {
	for _, c := range due {
		if c.ID == clientID {
			return c, true
		}
	}
	return schedule.DueClient{}, false
}

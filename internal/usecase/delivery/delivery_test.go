package delivery

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// segunda-feira
var monday = time.Date(2026, 10, 12, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return monday }

var today = timezone.DateOf(monday)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	got, ok := httperr.BusinessCode(err)
	require.True(t, ok, "expected business error, got %v", err)
	assert.Equal(t, code, got)
}

// ======================================================
// Active client
// ======================================================

func TestSetActiveClientKeepsSingleActive(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b", "c")

	uc := NewSetActiveClient(repo, nil)
	uc.now = clock

	for _, id := range []string{"a", "b", "c", "a"} {
		require.NoError(t, uc.Execute(context.Background(), "101", id))
		assert.Equal(t, 1, repo.activeCount("101", today))
		assert.Equal(t, delivery.TrackingActive, repo.state("101", today, id))
	}
	assert.Equal(t, delivery.TrackingPending, repo.state("101", today, "b"))
}

func TestSetActiveClientRejectsClientNotOnRoute(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a")

	uc := NewSetActiveClient(repo, nil)
	uc.now = clock

	requireCode(t, uc.Execute(context.Background(), "101", "zzz"), "client_not_due")
	assert.Equal(t, 0, repo.activeCount("101", today))
}

func TestSetActiveClientRejectsTerminal(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b")
	repo.setState("101", today, "a", delivery.TrackingCompleted)

	uc := NewSetActiveClient(repo, nil)
	uc.now = clock

	requireCode(t, uc.Execute(context.Background(), "101", "a"), "invalid_state")
	assert.Equal(t, delivery.TrackingCompleted, repo.state("101", today, "a"))
}

func TestGetActiveClientIsPureRead(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b")

	uc := NewGetActiveClient(repo)
	uc.now = clock

	c, err := uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Empty(t, repo.tracking)

	repo.setState("101", today, "b", delivery.TrackingActive)
	c, err = uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "b", c.ID)
}

func TestEnsureActiveClientPromotesFirstPending(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b", "c")
	repo.setState("101", today, "a", delivery.TrackingCancelled)

	uc := NewEnsureActiveClient(repo, nil)
	uc.now = clock

	c, err := uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "b", c.ID)
	assert.Equal(t, delivery.TrackingPending, repo.state("101", today, "c"))
	assert.Equal(t, delivery.TrackingCancelled, repo.state("101", today, "a"))

	// segunda chamada não troca o ativo
	c, err = uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "b", c.ID)
	assert.Equal(t, 1, repo.activeCount("101", today))
}

func TestEnsureActiveClientWithNothingPending(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a")
	repo.setState("101", today, "a", delivery.TrackingCompleted)

	uc := NewEnsureActiveClient(repo, nil)
	uc.now = clock

	c, err := uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestReroutedClientLeavesPreviousRoute(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "c3")

	ensure := NewEnsureActiveClient(repo, nil)
	ensure.now = clock
	_, err := ensure.Execute(context.Background(), "101")
	require.NoError(t, err)
	require.Equal(t, delivery.TrackingPending, repo.state("101", today, "c3"))

	repo.reroute("c3", "101", "102", today)

	set := NewSetActiveClient(repo, nil)
	set.now = clock

	err = set.Execute(context.Background(), "101", "c3")
	assert.True(t, httperr.IsBusiness(err, "client_not_due"))

	get := NewGetTracking(repo)
	get.now = clock
	states, err := get.Execute(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, map[string]delivery.TrackingStatus{"a": delivery.TrackingActive}, states)

	require.NoError(t, set.Execute(context.Background(), "102", "c3"))
	assert.Equal(t, delivery.TrackingActive, repo.state("102", today, "c3"))
	assert.Equal(t, 1, repo.activeCount("101", today))
}

// ======================================================
// Tracking
// ======================================================

func TestUpdateTrackingActiveDemotesPrevious(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b")
	repo.setState("101", today, "a", delivery.TrackingActive)

	uc := NewUpdateTracking(repo, nil)
	uc.now = clock

	require.NoError(t, uc.Execute(context.Background(), "101", "b", "activo"))
	assert.Equal(t, delivery.TrackingPending, repo.state("101", today, "a"))
	assert.Equal(t, delivery.TrackingActive, repo.state("101", today, "b"))
}

func TestUpdateTrackingRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a")

	uc := NewUpdateTracking(repo, nil)
	uc.now = clock

	requireCode(t, uc.Execute(context.Background(), "101", "a", "entregado"), "invalid_status")
}

func TestGetTrackingDefaultsToPending(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b")
	repo.setState("101", today, "b", delivery.TrackingActive)

	uc := NewGetTracking(repo)
	uc.now = clock

	states, err := uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, map[string]delivery.TrackingStatus{
		"a": delivery.TrackingPending,
		"b": delivery.TrackingActive,
	}, states)
}

// ======================================================
// Complete / cancel
// ======================================================

func TestCompleteOrderAdvancesSkippingTerminalClients(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b", "c", "d")
	repo.dispatch("101", today, 7, map[string]int{"gourmet15": 20})
	repo.setState("101", today, "a", delivery.TrackingActive)
	repo.setState("101", today, "c", delivery.TrackingCancelled)

	uc := NewCompleteOrder(repo, nil)
	uc.now = clock

	res, err := uc.Execute(context.Background(), CompleteOrderInput{
		RouteID:    "101",
		ClientID:   "a",
		Quantities: map[string]int{"gourmet15": 2},
	})
	require.NoError(t, err)
	require.NotNil(t, res.NextClientID)
	assert.Equal(t, "b", *res.NextClientID)
	assert.Equal(t, delivery.TrackingCompleted, repo.state("101", today, "a"))
	assert.Equal(t, delivery.TrackingActive, repo.state("101", today, "b"))
	assert.Equal(t, 1, repo.activeCount("101", today))
}

func TestCompleteOrderDoesNotWrapAround(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "a", "b", "c")
	repo.dispatch("101", today, 7, nil)
	repo.setState("101", today, "c", delivery.TrackingActive)

	uc := NewCompleteOrder(repo, nil)
	uc.now = clock

	res, err := uc.Execute(context.Background(), CompleteOrderInput{RouteID: "101", ClientID: "c"})
	require.NoError(t, err)
	assert.Nil(t, res.NextClientID)
	assert.Equal(t, 0, repo.activeCount("101", today))
}

func TestCompleteOrderDecrementsInventory(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x")
	repo.dispatch("101", today, 7, map[string]int{"gourmet15": 3, "gourmet5": 4})

	uc := NewCompleteOrder(repo, nil)
	uc.now = clock

	_, err := uc.Execute(context.Background(), CompleteOrderInput{
		RouteID:    "101",
		ClientID:   "x",
		Quantities: map[string]int{"gourmet15": 5, "gourmet5": 1},
	})
	require.NoError(t, err)

	stock := repo.inventory[invKey(7, "101", today)]
	assert.Equal(t, 0, stock["gourmet15"])
	assert.Equal(t, 3, stock["gourmet5"])
}

func TestCompleteOrderPricesWithClientOverride(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x")
	repo.dispatch("101", today, 7, nil)
	repo.overrides["x"] = []models.ClientPrice{
		{ClientID: "x", ProductID: "gourmet15", Price: decimal.NewFromInt(8)},
	}

	uc := NewCompleteOrder(repo, nil)
	uc.now = clock

	res, err := uc.Execute(context.Background(), CompleteOrderInput{
		RouteID:    "101",
		ClientID:   "x",
		Quantities: map[string]int{"gourmet15": 5, "gourmet5": 2, "barraHielo": 0},
	})
	require.Error(t, err)
	requireCode(t, err, "invalid_product")
	assert.Nil(t, res)

	res, err = uc.Execute(context.Background(), CompleteOrderInput{
		RouteID:    "101",
		ClientID:   "x",
		Quantities: map[string]int{"gourmet15": 5, "gourmet5": 2},
	})
	require.NoError(t, err)
	// 5 × 8 (personalizado) + 2 × 4 (base)
	assert.True(t, decimal.NewFromInt(48).Equal(res.Order.Total), res.Order.Total.String())
	assert.Equal(t, string(delivery.OrderCompleted), res.Order.Status)
	assert.NotNil(t, res.Order.ClosedAt)
}

func TestCompleteOrderRequiresDispatch(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x")

	uc := NewCompleteOrder(repo, nil)
	uc.now = clock

	_, err := uc.Execute(context.Background(), CompleteOrderInput{RouteID: "101", ClientID: "x"})
	requireCode(t, err, "route_not_dispatched")
}

func TestCompleteOrderDoesNotRegress(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x")
	repo.dispatch("101", today, 7, nil)

	cancel := NewCancelOrder(repo, nil)
	cancel.now = clock
	_, err := cancel.Execute(context.Background(), "101", "x", "cerrado")
	require.NoError(t, err)

	complete := NewCompleteOrder(repo, nil)
	complete.now = clock
	_, err = complete.Execute(context.Background(), CompleteOrderInput{RouteID: "101", ClientID: "x"})
	requireCode(t, err, "invalid_state")
}

func TestCancelOrderRequiresReason(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x")
	repo.dispatch("101", today, 7, nil)

	uc := NewCancelOrder(repo, nil)
	uc.now = clock

	_, err := uc.Execute(context.Background(), "101", "x", "   ")
	requireCode(t, err, "reason_required")
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.tracking)
	assert.Zero(t, repo.locks)
}

func TestCancelOrderLeavesInventoryAlone(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x", "y")
	repo.dispatch("101", today, 7, map[string]int{"gourmet15": 3})
	repo.setState("101", today, "x", delivery.TrackingActive)

	uc := NewCancelOrder(repo, nil)
	uc.now = clock

	res, err := uc.Execute(context.Background(), "101", "x", "tienda cerrada")
	require.NoError(t, err)
	assert.Equal(t, "tienda cerrada", res.Order.CancellationReason)
	assert.Equal(t, 3, repo.inventory[invKey(7, "101", today)]["gourmet15"])
	require.NotNil(t, res.NextClientID)
	assert.Equal(t, "y", *res.NextClientID)
}

// ======================================================
// Rollover sweeps
// ======================================================

func TestResetStatusesKeepsOrderHistory(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x")
	yesterday := today.AddDate(0, 0, -1)
	repo.dispatch("101", yesterday, 7, nil)

	complete := NewCompleteOrder(repo, nil)
	complete.now = func() time.Time { return monday.AddDate(0, 0, -1) }
	_, err := complete.Execute(context.Background(), CompleteOrderInput{RouteID: "101", ClientID: "x"})
	require.NoError(t, err)
	require.Equal(t, delivery.TrackingCompleted, repo.state("101", yesterday, "x"))

	reset := NewResetStatuses(repo)
	reset.now = clock
	n, err := reset.Execute(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	assert.Equal(t, delivery.TrackingPending, repo.state("101", yesterday, "x"))
	for _, o := range repo.orders {
		assert.Equal(t, string(delivery.OrderCompleted), o.Status)
	}
}

func TestResetTrackingClearsStrayActive(t *testing.T) {
	repo := newFakeRepo()
	repo.setState("101", today, "x", delivery.TrackingActive)
	repo.setState("101", today, "y", delivery.TrackingCompleted)

	uc := NewResetTracking(repo)
	uc.now = clock

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, delivery.TrackingPending, repo.state("101", today, "x"))
	assert.Equal(t, delivery.TrackingCompleted, repo.state("101", today, "y"))
}

// ======================================================
// Order statuses / extemporaneous orders
// ======================================================

func TestGetOrderStatuses(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x", "y")

	uc := NewGetOrderStatuses(repo)
	uc.now = clock

	out, err := uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	assert.Empty(t, out)

	repo.dispatch("101", today, 7, nil)
	cancel := NewCancelOrder(repo, nil)
	cancel.now = clock
	_, err = cancel.Execute(context.Background(), "101", "x", "sin dinero")
	require.NoError(t, err)

	products := NewUpdateOrderProducts(repo, nil)
	products.now = clock
	_, err = products.Execute(context.Background(), "101", "y", map[string]int{"gourmet5": 3})
	require.NoError(t, err)

	out, err = uc.Execute(context.Background(), "101")
	require.NoError(t, err)
	require.NotNil(t, out["x"].Status)
	assert.Equal(t, "cancelado", *out["x"].Status)
	assert.Equal(t, "sin dinero", out["x"].CancellationReason)
	assert.Nil(t, out["y"].Status)
	assert.Equal(t, 3, out["y"].Delivered["gourmet5"])
}

func TestCreateExtemporaneousOrder(t *testing.T) {
	repo := newFakeRepo()
	repo.addDue("101", "x")
	repo.dispatch("101", today, 7, nil)
	repo.clients["z"] = &models.Client{ID: "z", Name: "Z", Active: true}
	repo.schedules["z"] = []models.ClientRouteSchedule{
		{ClientID: "z", RouteID: "102", Monday: true},
		{ClientID: "z", RouteID: "103", Tuesday: true},
	}

	uc := NewCreateExtemporaneousOrder(repo, nil)
	uc.now = clock

	o, err := uc.Execute(context.Background(), "101", "z", map[string]int{"gourmet15": 1})
	require.NoError(t, err)
	assert.True(t, o.IsExtemporaneous)
	assert.Equal(t, delivery.TrackingPending, repo.state("101", today, "z"))

	var original []delivery.OriginalRoute
	require.NoError(t, json.Unmarshal(o.OriginalRoutes, &original))
	assert.Equal(t, []delivery.OriginalRoute{
		{RouteID: "102", DueToday: true},
		{RouteID: "103", DueToday: false},
	}, original)

	// pedido extemporâneo pode ser concluído mesmo fora da agenda
	complete := NewCompleteOrder(repo, nil)
	complete.now = clock
	_, err = complete.Execute(context.Background(), CompleteOrderInput{RouteID: "101", ClientID: "z"})
	require.NoError(t, err)

	list := NewListExtemporaneousOrders(repo)
	list.now = clock
	orders, err := list.Execute(context.Background(), "101")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCleanupExtemporaneousOrders(t *testing.T) {
	repo := newFakeRepo()
	a := repo.dispatch("101", today.AddDate(0, 0, -1), 7, nil)
	repo.orders[orderKey(a.ID, "z")] = &models.Order{ID: 99, AssignmentID: a.ID, ClientID: "z", IsExtemporaneous: true}

	uc := NewCleanupExtemporaneousOrders(repo)
	uc.now = clock

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// segunda-feira
var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

// ======================================================
// AGENDA
// ======================================================

func TestDueClientsResolvesRoute101(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createClient(t, db, models.Client{ID: "a", Name: "Abarrotes Lupita 3", Active: true,
		Schedules: []models.ClientRouteSchedule{onMondays("101")}})
	createClient(t, db, models.Client{ID: "b", Name: "Bar Animaniacs", Active: true,
		Schedules: []models.ClientRouteSchedule{onMondays("101")}})
	createClient(t, db, models.Client{ID: "x", Name: "Xochitl", Active: true,
		Schedules: []models.ClientRouteSchedule{{RouteID: "101", Tuesday: true}}})
	createClient(t, db, models.Client{ID: "off", Name: "Cerrado", Active: false,
		Schedules: []models.ClientRouteSchedule{onMondays("101")}})
	createClient(t, db, models.Client{ID: "e", Name: "Elotes Don Pepe", Active: true,
		Schedules: []models.ClientRouteSchedule{{RouteID: "103", Wednesday: true}}})
	createClient(t, db, models.Client{ID: "extra_101", Name: "Extra 101", Active: true, IsExtra: true,
		Schedules: []models.ClientRouteSchedule{onMondays("101")}})

	repo := NewScheduleGormRepository(db)
	require.NoError(t, repo.UpsertExtemporaneous(ctx, &models.ExtemporaneousAssignment{ClientID: "b", RouteID: "102", Date: monday}))
	require.NoError(t, repo.UpsertExtemporaneous(ctx, &models.ExtemporaneousAssignment{ClientID: "e", RouteID: "101", Date: monday}))

	due, err := repo.DueClients(ctx, "101", monday)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "e", "extra_101"}, schedule.IDs(due))
	assert.Equal(t, "Abarrotes Lupita", due[0].Name)
	assert.False(t, due[0].IsExtemporaneous)
	assert.True(t, due[1].IsExtemporaneous)
	assert.True(t, due[2].IsExtra)

	due, err = repo.DueClients(ctx, "102", monday)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "b", due[0].ID)
	assert.True(t, due[0].IsExtemporaneous)

	// na semana seguinte o extemporâneo já não vale
	due, err = repo.DueClients(ctx, "102", monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestUpsertExtemporaneousKeepsOneRowPerClientAndDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createClient(t, db, models.Client{ID: "c3", Name: "Cremería", Active: true})

	repo := NewScheduleGormRepository(db)
	require.NoError(t, repo.UpsertExtemporaneous(ctx, &models.ExtemporaneousAssignment{ClientID: "c3", RouteID: "101", Date: monday}))
	require.NoError(t, repo.UpsertExtemporaneous(ctx, &models.ExtemporaneousAssignment{ClientID: "c3", RouteID: "102", Date: monday}))
	require.NoError(t, repo.UpsertExtemporaneous(ctx, &models.ExtemporaneousAssignment{ClientID: "c3", RouteID: "103", Date: monday.AddDate(0, 0, 1)}))

	var rows []models.ExtemporaneousAssignment
	require.NoError(t, db.Order("date").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "102", rows[0].RouteID)
	assert.Equal(t, "103", rows[1].RouteID)

	a, err := repo.FindExtemporaneous(ctx, "c3", monday)
	require.NoError(t, err)
	assert.Equal(t, "102", a.RouteID)
}

func TestDropOpenTrackingKeepsClosedAndExtemporaneousOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tracking := NewDeliveryGormRepository(db)
	repo := NewScheduleGormRepository(db)
	driver := createDriver(t, db)

	require.NoError(t, tracking.SetTracking(ctx, "101", monday, "c3", delivery.TrackingActive))
	require.NoError(t, tracking.SetTracking(ctx, "101", monday, "done", delivery.TrackingCompleted))
	require.NoError(t, tracking.SetTracking(ctx, "101", monday, "walkin", delivery.TrackingPending))

	a := models.RouteAssignment{RouteID: "101", DriverID: driver.ID, Date: monday, Status: "en_progreso"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&models.Order{AssignmentID: a.ID, ClientID: "walkin", IsExtemporaneous: true}).Error)

	for _, id := range []string{"c3", "done", "walkin"} {
		_, err := repo.DropOpenTracking(ctx, "101", id, monday)
		require.NoError(t, err)
	}

	rows, err := tracking.ListTracking(ctx, "101", monday)
	require.NoError(t, err)
	left := map[string]string{}
	for _, r := range rows {
		left[r.ClientID] = r.Status
	}
	assert.Equal(t, map[string]string{
		"done":   string(delivery.TrackingCompleted),
		"walkin": string(delivery.TrackingPending),
	}, left)
}

// ======================================================
// ACOMPANHAMENTO
// ======================================================

func TestSingleActivePerRouteDayIsEnforcedByIndex(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDeliveryGormRepository(db)

	require.NoError(t, repo.SetTracking(ctx, "101", monday, "a", delivery.TrackingActive))

	err := repo.SetTracking(ctx, "101", monday, "b", delivery.TrackingActive)
	assert.True(t, httperr.IsBusiness(err, "concurrent_update"))

	// outra rota e outro dia não colidem
	require.NoError(t, repo.SetTracking(ctx, "102", monday, "b", delivery.TrackingActive))
	require.NoError(t, repo.SetTracking(ctx, "101", monday.AddDate(0, 0, 1), "b", delivery.TrackingActive))

	// rebaixar o ativo libera a vaga
	n, err := repo.DemoteActive(ctx, "101", monday, "b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, repo.SetTracking(ctx, "101", monday, "b", delivery.TrackingActive))

	active, err := repo.FindActive(ctx, "101", monday)
	require.NoError(t, err)
	assert.Equal(t, "b", active.ClientID)
}

// ======================================================
// INVENTÁRIO
// ======================================================

func TestDecrementInventoryFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDeliveryGormRepository(db)
	driver := createDriver(t, db)

	snap := models.InventorySnapshot{
		DriverID: driver.ID,
		RouteID:  "101",
		Date:     monday,
		Items: []models.InventoryItem{
			{ProductID: "gourmet15", Quantity: 3},
			{ProductID: "gourmet5", Quantity: 4},
		},
	}
	require.NoError(t, db.Create(&snap).Error)

	found, err := repo.DecrementInventory(ctx, driver.ID, "101", monday, map[string]int{"gourmet15": 5, "gourmet5": 1})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.DecrementInventory(ctx, driver.ID, "101", monday, map[string]int{"gourmet15": 2, "gourmet5": -9})
	require.NoError(t, err)
	assert.True(t, found)

	var stored models.InventorySnapshot
	require.NoError(t, db.Preload("Items").First(&stored, snap.ID).Error)
	assert.Equal(t, map[string]int{"gourmet15": 0, "gourmet5": 3}, stored.Quantities())

	found, err = repo.DecrementInventory(ctx, driver.ID, "102", monday, map[string]int{"gourmet15": 1})
	require.NoError(t, err)
	assert.False(t, found)
}

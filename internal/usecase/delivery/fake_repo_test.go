package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/domain"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// fakeRepo guarda tudo em memória; a "transação" só repassa o próprio repo.
type fakeRepo struct {
	clients     map[string]*models.Client
	due         map[string][]schedule.DueClient
	tracking    map[string]map[string]delivery.TrackingStatus
	assignments map[string]*models.RouteAssignment
	orders      map[string]*models.Order
	products    []models.Product
	overrides   map[string][]models.ClientPrice
	inventory   map[string]map[string]int
	schedules   map[string][]models.ClientRouteSchedule

	nextID uint
	locks  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:     map[string]*models.Client{},
		due:         map[string][]schedule.DueClient{},
		tracking:    map[string]map[string]delivery.TrackingStatus{},
		assignments: map[string]*models.RouteAssignment{},
		orders:      map[string]*models.Order{},
		overrides:   map[string][]models.ClientPrice{},
		inventory:   map[string]map[string]int{},
		schedules:   map[string][]models.ClientRouteSchedule{},
		products: []models.Product{
			{ID: "gourmet15", BasePrice: decimal.NewFromInt(10), Active: true},
			{ID: "gourmet5", BasePrice: decimal.NewFromInt(4), Active: true},
		},
	}
}

var _ delivery.Repository = (*fakeRepo)(nil)

func dayKey(routeID string, day time.Time) string {
	return routeID + "|" + timezone.FormatDate(day)
}

// -------- helpers de montagem --------

func (f *fakeRepo) addDue(routeID string, ids ...string) {
	for _, id := range ids {
		f.clients[id] = &models.Client{ID: id, Name: id, Active: true}
		f.due[routeID] = append(f.due[routeID], schedule.DueClient{ID: id, Name: id})
	}
}

// reroute move o cliente de rota no dia como faz o extemporâneo de agenda:
// sai da agenda de from e perde o acompanhamento em aberto lá.
func (f *fakeRepo) reroute(clientID, from, to string, day time.Time) {
	kept := f.due[from][:0]
	for _, c := range f.due[from] {
		if c.ID != clientID {
			kept = append(kept, c)
		}
	}
	f.due[from] = kept
	f.due[to] = append(f.due[to], schedule.DueClient{ID: clientID, Name: clientID, IsExtemporaneous: true})

	k := dayKey(from, day)
	if st, ok := f.tracking[k][clientID]; ok && !st.IsTerminal() {
		delete(f.tracking[k], clientID)
	}
}

func (f *fakeRepo) setState(routeID string, day time.Time, clientID string, st delivery.TrackingStatus) {
	k := dayKey(routeID, day)
	if f.tracking[k] == nil {
		f.tracking[k] = map[string]delivery.TrackingStatus{}
	}
	f.tracking[k][clientID] = st
}

func (f *fakeRepo) state(routeID string, day time.Time, clientID string) delivery.TrackingStatus {
	return f.tracking[dayKey(routeID, day)][clientID]
}

func (f *fakeRepo) activeCount(routeID string, day time.Time) int {
	n := 0
	for _, st := range f.tracking[dayKey(routeID, day)] {
		if st == delivery.TrackingActive {
			n++
		}
	}
	return n
}

func (f *fakeRepo) dispatch(routeID string, day time.Time, driverID uint, stock map[string]int) *models.RouteAssignment {
	f.nextID++
	a := &models.RouteAssignment{ID: f.nextID, RouteID: routeID, DriverID: driverID, Date: day}
	f.assignments[dayKey(routeID, day)] = a
	if stock != nil {
		f.inventory[invKey(driverID, routeID, day)] = stock
	}
	return a
}

func invKey(driverID uint, routeID string, day time.Time) string {
	return fmt.Sprintf("%s|%d", dayKey(routeID, day), driverID)
}

func orderKey(assignmentID uint, clientID string) string {
	return fmt.Sprintf("%d|%s", assignmentID, clientID)
}

// -------- delivery.Repository --------

func (f *fakeRepo) Transaction(ctx context.Context, fn func(tx delivery.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) LockRouteDay(ctx context.Context, routeID string, day time.Time) error {
	f.locks++
	return nil
}

func (f *fakeRepo) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) DueClients(ctx context.Context, routeID string, day time.Time) ([]schedule.DueClient, error) {
	return f.due[routeID], nil
}

func (f *fakeRepo) ListTracking(ctx context.Context, routeID string, day time.Time) ([]models.TrackingState, error) {
	var out []models.TrackingState
	for id, st := range f.tracking[dayKey(routeID, day)] {
		out = append(out, models.TrackingState{RouteID: routeID, Date: day, ClientID: id, Status: string(st)})
	}
	return out, nil
}

func (f *fakeRepo) FindActive(ctx context.Context, routeID string, day time.Time) (*models.TrackingState, error) {
	for id, st := range f.tracking[dayKey(routeID, day)] {
		if st == delivery.TrackingActive {
			return &models.TrackingState{RouteID: routeID, Date: day, ClientID: id, Status: string(st)}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) DemoteActive(ctx context.Context, routeID string, day time.Time, exceptClientID string) (int64, error) {
	var n int64
	for id, st := range f.tracking[dayKey(routeID, day)] {
		if st == delivery.TrackingActive && id != exceptClientID {
			f.tracking[dayKey(routeID, day)][id] = delivery.TrackingPending
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) SetTracking(ctx context.Context, routeID string, day time.Time, clientID string, status delivery.TrackingStatus) error {
	f.setState(routeID, day, clientID, status)
	return nil
}

func (f *fakeRepo) SeedTracking(ctx context.Context, routeID string, day time.Time, clientIDs []string) (int64, error) {
	var n int64
	for _, id := range clientIDs {
		if _, ok := f.tracking[dayKey(routeID, day)][id]; ok {
			continue
		}
		f.setState(routeID, day, id, delivery.TrackingPending)
		n++
	}
	return n, nil
}

func (f *fakeRepo) ResetTrackingBefore(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	limit := timezone.FormatDate(day)
	for k, states := range f.tracking {
		if k[len(k)-len(limit):] >= limit {
			continue
		}
		for id, st := range states {
			if st != delivery.TrackingPending {
				states[id] = delivery.TrackingPending
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeRepo) ResetActiveOn(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	limit := timezone.FormatDate(day)
	for k, states := range f.tracking {
		if k[len(k)-len(limit):] != limit {
			continue
		}
		for id, st := range states {
			if st == delivery.TrackingActive {
				states[id] = delivery.TrackingPending
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeRepo) FindAssignment(ctx context.Context, routeID string, day time.Time) (*models.RouteAssignment, error) {
	a, ok := f.assignments[dayKey(routeID, day)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) FindOrder(ctx context.Context, assignmentID uint, clientID string) (*models.Order, error) {
	o, ok := f.orders[orderKey(assignmentID, clientID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeRepo) SaveOrder(ctx context.Context, o *models.Order) error {
	if o.ID == 0 {
		f.nextID++
		o.ID = f.nextID
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	f.orders[orderKey(o.AssignmentID, o.ClientID)] = &cp
	return nil
}

func (f *fakeRepo) ListOrders(ctx context.Context, assignmentID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.AssignmentID == assignmentID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListExtemporaneousOrders(ctx context.Context, routeID string, day time.Time) ([]models.Order, error) {
	a, ok := f.assignments[dayKey(routeID, day)]
	if !ok {
		return nil, nil
	}
	var out []models.Order
	for _, o := range f.orders {
		if o.AssignmentID == a.ID && o.IsExtemporaneous {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) ClearExtemporaneousOrdersBefore(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	for _, o := range f.orders {
		for _, a := range f.assignments {
			if a.ID == o.AssignmentID && a.Date.Before(day) && o.IsExtemporaneous {
				o.IsExtemporaneous = false
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeRepo) ClientSchedules(ctx context.Context, clientID string) ([]models.ClientRouteSchedule, error) {
	return f.schedules[clientID], nil
}

func (f *fakeRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeRepo) ClientOverrides(ctx context.Context, clientID string) ([]models.ClientPrice, error) {
	return f.overrides[clientID], nil
}

func (f *fakeRepo) DecrementInventory(
	ctx context.Context,
	driverID uint,
	routeID string,
	day time.Time,
	quantities map[string]int,
) (bool, error) {
	stock, ok := f.inventory[invKey(driverID, routeID, day)]
	if !ok {
		return false, nil
	}
	for p, q := range quantities {
		stock[p] = max(0, stock[p]-max(0, q))
	}
	return true, nil
}

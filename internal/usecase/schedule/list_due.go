package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/domain"
	schedule "github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// ======================================================
// ListRoutes
// ======================================================

type ListRoutes struct {
	repo schedule.Repository
}

func NewListRoutes(repo schedule.Repository) *ListRoutes {
	return &ListRoutes{repo: repo}
}

func (uc *ListRoutes) Execute(ctx context.Context) ([]models.Route, error) {
	return uc.repo.ListRoutes(ctx)
}

// ======================================================
// ListDueClients
// ======================================================

// ListDueClients resolve os clientes com entrega na rota hoje.
type ListDueClients struct {
	repo schedule.Repository
	now  func() time.Time
}

func NewListDueClients(repo schedule.Repository) *ListDueClients {
	return &ListDueClients{repo: repo, now: timezone.Now}
}

func (uc *ListDueClients) Execute(ctx context.Context, routeID string) ([]schedule.DueClient, error) {
	if err := requireRoute(ctx, uc.repo, routeID); err != nil {
		return nil, err
	}
	return uc.repo.DueClients(ctx, routeID, timezone.DateOf(uc.now()))
}

// Count devolve quantos clientes a rota tem hoje.
func (uc *ListDueClients) Count(ctx context.Context, routeID string) (int, error) {
	clients, err := uc.Execute(ctx, routeID)
	if err != nil {
		return 0, err
	}
	return len(clients), nil
}

// First devolve o primeiro cliente não extra do dia, ou nil.
func (uc *ListDueClients) First(ctx context.Context, routeID string) (*schedule.DueClient, error) {
	clients, err := uc.Execute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	first, ok := schedule.First(clients)
	if !ok {
		return nil, nil
	}
	return &first, nil
}

// ======================================================
// ClientsWithoutDay
// ======================================================

// ClientsWithoutDay lista candidatos a extemporâneo: clientes sem entrega fixa
// no dia informado e ainda sem extemporâneo hoje.
type ClientsWithoutDay struct {
	repo schedule.Repository
	now  func() time.Time
}

func NewClientsWithoutDay(repo schedule.Repository) *ClientsWithoutDay {
	return &ClientsWithoutDay{repo: repo, now: timezone.Now}
}

func (uc *ClientsWithoutDay) Execute(ctx context.Context, excludeDay string) ([]models.Client, error) {
	today := timezone.DateOf(uc.now())

	weekday := today.Weekday()
	if excludeDay != "" {
		d, err := schedule.ParseWeekday(excludeDay)
		if err != nil {
			return nil, err
		}
		weekday = d
	}

	return uc.repo.ClientsNotScheduledOn(ctx, weekday, today)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func requireRoute(ctx context.Context, repo schedule.Repository, routeID string) error {
	if _, err := repo.GetRoute(ctx, routeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("route_not_found")
		}
		return err
	}
	return nil
}

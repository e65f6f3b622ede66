package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// ======================================================
// GetActiveClient
// ======================================================

// GetActiveClient é somente leitura: devolve nil quando ninguém está ativo.
type GetActiveClient struct {
	repo delivery.Repository
	now  func() time.Time
}

func NewGetActiveClient(repo delivery.Repository) *GetActiveClient {
	return &GetActiveClient{repo: repo, now: timezone.Now}
}

func (uc *GetActiveClient) Execute(ctx context.Context, routeID string) (*schedule.DueClient, error) {
	today := timezone.DateOf(uc.now())

	st, err := uc.repo.FindActive(ctx, routeID, today)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	due, err := uc.repo.DueClients(ctx, routeID, today)
	if err != nil {
		return nil, err
	}
	if c, ok := findDue(due, st.ClientID); ok {
		return &c, nil
	}

	// pedido extemporâneo: o cliente não está na agenda da rota
	c, err := uc.repo.GetClient(ctx, st.ClientID)
	if err != nil {
		return nil, businessIfNotFound(err, "client_not_found")
	}
	dc := toDueClient(c)
	dc.IsExtemporaneous = true
	return &dc, nil
}

// ======================================================
// SetActiveClient
// ======================================================

type SetActiveClient struct {
	repo  delivery.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewSetActiveClient(
	repo delivery.Repository,
	audit *audit.Dispatcher,
) *SetActiveClient {
	return &SetActiveClient{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Execute torna clientID o único cliente ativo da rota hoje.
func (uc *SetActiveClient) Execute(ctx context.Context, routeID, clientID string) error {
	today := timezone.DateOf(uc.now())

	err := uc.repo.Transaction(ctx, func(tx delivery.Repository) error {

		// 1️⃣ Serializa a rota do dia
		if err := tx.LockRouteDay(ctx, routeID, today); err != nil {
			return err
		}

		// 2️⃣ Cliente precisa estar na rota hoje
		due, err := tx.DueClients(ctx, routeID, today)
		if err != nil {
			return err
		}
		states, err := trackingMap(ctx, tx, routeID, today)
		if err != nil {
			return err
		}
		if !onRoute(due, states, clientID) {
			return httperr.ErrBusiness("client_not_due")
		}

		// 3️⃣ Estado terminal não volta a ativo
		if err := delivery.CanActivate(delivery.StateOf(states, clientID)); err != nil {
			return err
		}

		// 4️⃣ Limpa o ativo anterior e marca o novo
		return activate(ctx, tx, routeID, today, clientID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RouteID:  routeID,
		Action:   "active_client_set",
		Entity:   "client",
		EntityID: clientID,
	})
	return nil
}

// ======================================================
// EnsureActiveClient
// ======================================================

// EnsureActiveClient abre a rota: cria o acompanhamento pendente dos clientes
// do dia e, se ninguém estiver ativo, promove o primeiro pendente.
type EnsureActiveClient struct {
	repo  delivery.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewEnsureActiveClient(
	repo delivery.Repository,
	audit *audit.Dispatcher,
) *EnsureActiveClient {
	return &EnsureActiveClient{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *EnsureActiveClient) Execute(ctx context.Context, routeID string) (*schedule.DueClient, error) {
	today := timezone.DateOf(uc.now())

	var (
		active   *schedule.DueClient
		promoted bool
	)

	err := uc.repo.Transaction(ctx, func(tx delivery.Repository) error {

		// 1️⃣ Serializa a rota do dia
		if err := tx.LockRouteDay(ctx, routeID, today); err != nil {
			return err
		}

		// 2️⃣ Acompanhamento pendente para todos os clientes do dia
		due, err := tx.DueClients(ctx, routeID, today)
		if err != nil {
			return err
		}
		if _, err := tx.SeedTracking(ctx, routeID, today, schedule.IDs(due)); err != nil {
			return err
		}

		// 3️⃣ Já existe ativo
		st, err := tx.FindActive(ctx, routeID, today)
		switch {
		case err == nil:
			if c, ok := findDue(due, st.ClientID); ok {
				active = &c
				return nil
			}
			c, err := tx.GetClient(ctx, st.ClientID)
			if err != nil {
				return businessIfNotFound(err, "client_not_found")
			}
			dc := toDueClient(c)
			dc.IsExtemporaneous = true
			active = &dc
			return nil
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		// 4️⃣ Promove o primeiro pendente
		states, err := trackingMap(ctx, tx, routeID, today)
		if err != nil {
			return err
		}
		first, ok := delivery.FirstPending(schedule.IDs(due), states)
		if !ok {
			return nil
		}
		if err := activate(ctx, tx, routeID, today, first); err != nil {
			return err
		}

		c, _ := findDue(due, first)
		active = &c
		promoted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if promoted {
		uc.audit.Dispatch(audit.Event{
			RouteID:  routeID,
			Action:   "route_opened",
			Entity:   "client",
			EntityID: active.ID,
		})
	}
	return active, nil
}

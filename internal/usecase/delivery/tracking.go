package delivery

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// ======================================================
// GetTracking
// ======================================================

type GetTracking struct {
	repo delivery.Repository
	now  func() time.Time
}

func NewGetTracking(repo delivery.Repository) *GetTracking {
	return &GetTracking{repo: repo, now: timezone.Now}
}

// Execute devolve clientId -> estado; clientes do dia sem registro aparecem como pendiente.
func (uc *GetTracking) Execute(ctx context.Context, routeID string) (map[string]delivery.TrackingStatus, error) {
	today := timezone.DateOf(uc.now())

	due, err := uc.repo.DueClients(ctx, routeID, today)
	if err != nil {
		return nil, err
	}
	states, err := trackingMap(ctx, uc.repo, routeID, today)
	if err != nil {
		return nil, err
	}

	out := make(map[string]delivery.TrackingStatus, len(due)+len(states))
	for _, c := range due {
		out[c.ID] = delivery.StateOf(states, c.ID)
	}
	for id, st := range states {
		out[id] = st
	}
	return out, nil
}

// ======================================================
// UpdateTracking
// ======================================================

type UpdateTracking struct {
	repo  delivery.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateTracking(
	repo delivery.Repository,
	audit *audit.Dispatcher,
) *UpdateTracking {
	return &UpdateTracking{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Execute muda o acompanhamento de um cliente; "activo" rebaixa o ativo anterior.
func (uc *UpdateTracking) Execute(ctx context.Context, routeID, clientID, status string) error {
	next, err := delivery.ParseTrackingStatus(status)
	if err != nil {
		return err
	}

	today := timezone.DateOf(uc.now())

	err = uc.repo.Transaction(ctx, func(tx delivery.Repository) error {

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

		// 3️⃣ Transição
		if err := delivery.CanTrack(delivery.StateOf(states, clientID), next); err != nil {
			return err
		}
		if next == delivery.TrackingActive {
			return activate(ctx, tx, routeID, today, clientID)
		}
		return tx.SetTracking(ctx, routeID, today, clientID, next)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		RouteID:  routeID,
		Action:   "tracking_updated",
		Entity:   "client",
		EntityID: clientID,
		Metadata: map[string]any{"status": next},
	})
	return nil
}

// ======================================================
// Resets
// ======================================================

// ResetStatuses volta a pendente o acompanhamento de dias anteriores.
// O status do pedido (histórico) não muda.
type ResetStatuses struct {
	repo delivery.Repository
	now  func() time.Time
}

func NewResetStatuses(repo delivery.Repository) *ResetStatuses {
	return &ResetStatuses{repo: repo, now: timezone.Now}
}

func (uc *ResetStatuses) Execute(ctx context.Context) (int64, error) {
	return uc.repo.ResetTrackingBefore(ctx, timezone.DateOf(uc.now()))
}

// ResetTracking devolve a pendente qualquer "activo" de hoje, para uma nova eleição.
type ResetTracking struct {
	repo delivery.Repository
	now  func() time.Time
}

func NewResetTracking(repo delivery.Repository) *ResetTracking {
	return &ResetTracking{repo: repo, now: timezone.Now}
}

func (uc *ResetTracking) Execute(ctx context.Context) (int64, error) {
	return uc.repo.ResetActiveOn(ctx, timezone.DateOf(uc.now()))
}


package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	schedule "github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// ======================================================
// AssignExtemporaneous
// ======================================================

type AssignExtemporaneous struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewAssignExtemporaneous(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *AssignExtemporaneous {
	return &AssignExtemporaneous{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Execute coloca o cliente na rota só hoje. Uma segunda chamada no mesmo dia troca a rota.
func (uc *AssignExtemporaneous) Execute(
	ctx context.Context,
	clientID string,
	routeID string,
) (*models.ExtemporaneousAssignment, error) {

	today := timezone.DateOf(uc.now())

	// 1️⃣ Rota
	if err := requireRoute(ctx, uc.repo, routeID); err != nil {
		return nil, err
	}

	// 2️⃣ Cliente
	c, err := uc.repo.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}
	if !c.Active {
		return nil, httperr.ErrBusiness("client_inactive")
	}

	// 3️⃣ Cliente com entrega fixa hoje não vira extemporâneo
	scheduled, err := uc.repo.IsRegularlyScheduled(ctx, clientID, today)
	if err != nil {
		return nil, err
	}
	if scheduled {
		return nil, httperr.ErrBusiness("client_already_scheduled")
	}

	// 4️⃣ Upsert (um por cliente e dia) e limpeza da rota anterior
	a := &models.ExtemporaneousAssignment{
		ClientID: clientID,
		RouteID:  routeID,
		Date:     today,
	}
	var previous string
	err = uc.repo.Transaction(ctx, func(tx schedule.Repository) error {
		prev, err := tx.FindExtemporaneous(ctx, clientID, today)
		switch {
		case err == nil:
			previous = prev.RouteID
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		if err := tx.UpsertExtemporaneous(ctx, a); err != nil {
			return err
		}

		if previous != "" && previous != routeID {
			if _, err := tx.DropOpenTracking(ctx, previous, clientID, today); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5️⃣ Auditoria
	uc.audit.Dispatch(audit.Event{
		RouteID:  routeID,
		Action:   "extemporaneous_assigned",
		Entity:   "client",
		EntityID: clientID,
		Metadata: map[string]any{
			"date":           timezone.FormatDate(today),
			"previous_route": previous,
		},
	})

	return a, nil
}

// ======================================================
// RemoveExtemporaneous
// ======================================================

type RemoveExtemporaneous struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRemoveExtemporaneous(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *RemoveExtemporaneous {
	return &RemoveExtemporaneous{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Execute informa se havia assignment hoje para o cliente. O acompanhamento
// em aberto na rota de onde ele sai é descartado.
func (uc *RemoveExtemporaneous) Execute(ctx context.Context, clientID string) (bool, error) {
	today := timezone.DateOf(uc.now())

	var routeID string
	err := uc.repo.Transaction(ctx, func(tx schedule.Repository) error {
		a, err := tx.FindExtemporaneous(ctx, clientID, today)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}

		if _, err := tx.DeleteExtemporaneous(ctx, clientID, today); err != nil {
			return err
		}
		if _, err := tx.DropOpenTracking(ctx, a.RouteID, clientID, today); err != nil {
			return err
		}

		routeID = a.RouteID
		return nil
	})
	if err != nil {
		return false, err
	}

	if routeID == "" {
		return false, nil
	}

	uc.audit.Dispatch(audit.Event{
		RouteID:  routeID,
		Action:   "extemporaneous_removed",
		Entity:   "client",
		EntityID: clientID,
	})
	return true, nil
}

// ======================================================
// ListExtemporaneous
// ======================================================

type ListExtemporaneous struct {
	repo schedule.Repository
	now  func() time.Time
}

func NewListExtemporaneous(repo schedule.Repository) *ListExtemporaneous {
	return &ListExtemporaneous{repo: repo, now: timezone.Now}
}

func (uc *ListExtemporaneous) Execute(
	ctx context.Context,
	routeID string,
) ([]schedule.ExtemporaneousClient, error) {
	if err := requireRoute(ctx, uc.repo, routeID); err != nil {
		return nil, err
	}
	return uc.repo.ListExtemporaneous(ctx, routeID, timezone.DateOf(uc.now()))
}

// ======================================================
// PurgeExtemporaneous
// ======================================================

// PurgeExtemporaneous apaga os extemporâneos com data anterior a hoje. Idempotente.
type PurgeExtemporaneous struct {
	repo schedule.Repository
	now  func() time.Time
}

func NewPurgeExtemporaneous(repo schedule.Repository) *PurgeExtemporaneous {
	return &PurgeExtemporaneous{repo: repo, now: timezone.Now}
}

func (uc *PurgeExtemporaneous) Execute(ctx context.Context) (int64, error) {
	return uc.repo.PurgeExtemporaneousBefore(ctx, timezone.DateOf(uc.now()))
}

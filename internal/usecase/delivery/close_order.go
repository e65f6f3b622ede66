package delivery

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
	"github.com/BruksfildServices01/ice-routes/internal/validators"
)

// CloseResult é o pedido encerrado e o cliente que passou a ser o ativo, se houver.
type CloseResult struct {
	Order        *models.Order `json:"order"`
	NextClientID *string       `json:"next_client_id"`
}

// ======================================================
// CompleteOrder
// ======================================================

type CompleteOrderInput struct {
	RouteID    string `validate:"required,route_id"`
	ClientID   string `validate:"required"`
	Quantities map[string]int
}

type CompleteOrder struct {
	repo  delivery.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCompleteOrder(
	repo delivery.Repository,
	audit *audit.Dispatcher,
) *CompleteOrder {
	return &CompleteOrder{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *CompleteOrder) Execute(ctx context.Context, in CompleteOrderInput) (*CloseResult, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	now := uc.now()
	today := timezone.DateOf(now)
	result := &CloseResult{}

	err := uc.repo.Transaction(ctx, func(tx delivery.Repository) error {

		// 1️⃣ Serializa a rota do dia
		if err := tx.LockRouteDay(ctx, in.RouteID, today); err != nil {
			return err
		}

		// 2️⃣ Rota despachada
		a, err := requireAssignment(ctx, tx, in.RouteID, today)
		if err != nil {
			return err
		}

		// 3️⃣ Pedido do cliente (cliente precisa estar na rota hoje)
		due, err := tx.DueClients(ctx, in.RouteID, today)
		if err != nil {
			return err
		}
		o, err := loadOrder(ctx, tx, a, due, in.ClientID)
		if err != nil {
			return err
		}
		if err := delivery.CanClose(delivery.OrderStatus(o.Status)); err != nil {
			return err
		}

		// 4️⃣ Quantidades entregues (sobrescreve) e total com preço vigente
		sheet, err := sheetFor(ctx, tx, in.ClientID)
		if err != nil {
			return err
		}
		if err := applyItems(o, sheet, in.Quantities); err != nil {
			return err
		}

		o.Status = string(delivery.OrderCompleted)
		o.CancellationReason = ""
		o.ClosedAt = &now
		if err := tx.SaveOrder(ctx, o); err != nil {
			return err
		}

		// 5️⃣ Baixa no inventário (nunca abaixo de zero)
		found, err := tx.DecrementInventory(ctx, a.DriverID, in.RouteID, today, o.Quantities())
		if err != nil {
			return err
		}
		if !found {
			log.Warn().
				Str("route_id", in.RouteID).
				Uint("driver_id", a.DriverID).
				Msg("no inventory snapshot to decrement")
		}

		// 6️⃣ Espelha no acompanhamento e avança
		states, err := trackingMap(ctx, tx, in.RouteID, today)
		if err != nil {
			return err
		}
		if err := track(ctx, tx, in.RouteID, today, states, in.ClientID, delivery.TrackingCompleted); err != nil {
			return err
		}
		result.NextClientID, err = advance(ctx, tx, in.RouteID, today, due, in.ClientID)
		if err != nil {
			return err
		}

		result.Order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RouteID:  in.RouteID,
		Action:   "order_completed",
		Entity:   "order",
		EntityID: in.ClientID,
		Metadata: map[string]any{"total": result.Order.Total, "quantities": result.Order.Quantities()},
	})

	return result, nil
}

// ======================================================
// CancelOrder
// ======================================================

type CancelOrder struct {
	repo  delivery.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelOrder(
	repo delivery.Repository,
	audit *audit.Dispatcher,
) *CancelOrder {
	return &CancelOrder{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Execute cancela o pedido; o motivo é obrigatório e o inventário não muda.
func (uc *CancelOrder) Execute(ctx context.Context, routeID, clientID, reason string) (*CloseResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, httperr.ErrBusiness("reason_required")
	}

	now := uc.now()
	today := timezone.DateOf(now)
	result := &CloseResult{}

	err := uc.repo.Transaction(ctx, func(tx delivery.Repository) error {

		// 1️⃣ Serializa a rota do dia
		if err := tx.LockRouteDay(ctx, routeID, today); err != nil {
			return err
		}

		// 2️⃣ Rota despachada
		a, err := requireAssignment(ctx, tx, routeID, today)
		if err != nil {
			return err
		}

		// 3️⃣ Pedido do cliente
		due, err := tx.DueClients(ctx, routeID, today)
		if err != nil {
			return err
		}
		o, err := loadOrder(ctx, tx, a, due, clientID)
		if err != nil {
			return err
		}
		if err := delivery.CanClose(delivery.OrderStatus(o.Status)); err != nil {
			return err
		}

		o.Status = string(delivery.OrderCancelled)
		o.CancellationReason = reason
		o.ClosedAt = &now
		if err := tx.SaveOrder(ctx, o); err != nil {
			return err
		}

		// 4️⃣ Espelha no acompanhamento e avança
		states, err := trackingMap(ctx, tx, routeID, today)
		if err != nil {
			return err
		}
		if err := track(ctx, tx, routeID, today, states, clientID, delivery.TrackingCancelled); err != nil {
			return err
		}
		result.NextClientID, err = advance(ctx, tx, routeID, today, due, clientID)
		if err != nil {
			return err
		}

		result.Order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RouteID:  routeID,
		Action:   "order_cancelled",
		Entity:   "order",
		EntityID: clientID,
		Metadata: map[string]any{"reason": reason},
	})

	return result, nil
}

package delivery

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// UpdateOrderProducts grava as quantidades planejadas de um pedido em aberto.
type UpdateOrderProducts struct {
	repo  delivery.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateOrderProducts(
	repo delivery.Repository,
	audit *audit.Dispatcher,
) *UpdateOrderProducts {
	return &UpdateOrderProducts{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *UpdateOrderProducts) Execute(
	ctx context.Context,
	routeID string,
	clientID string,
	quantities map[string]int,
) (*models.Order, error) {

	today := timezone.DateOf(uc.now())

	var order *models.Order
	err := uc.repo.Transaction(ctx, func(tx delivery.Repository) error {
		if err := tx.LockRouteDay(ctx, routeID, today); err != nil {
			return err
		}

		a, err := requireAssignment(ctx, tx, routeID, today)
		if err != nil {
			return err
		}

		due, err := tx.DueClients(ctx, routeID, today)
		if err != nil {
			return err
		}
		o, err := loadOrder(ctx, tx, a, due, clientID)
		if err != nil {
			return err
		}
		if err := delivery.CanEditItems(delivery.OrderStatus(o.Status)); err != nil {
			return err
		}

		sheet, err := sheetFor(ctx, tx, clientID)
		if err != nil {
			return err
		}
		if err := applyItems(o, sheet, quantities); err != nil {
			return err
		}
		if err := tx.SaveOrder(ctx, o); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RouteID:  routeID,
		Action:   "order_products_updated",
		Entity:   "order",
		EntityID: clientID,
		Metadata: map[string]any{"quantities": quantities},
	})

	return order, nil
}

package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// ======================================================
// CreateExtemporaneousOrder
// ======================================================

// CreateExtemporaneousOrder cria um pedido fora da agenda numa rota despachada.
// Independe do extemporâneo de agenda: não muda em qual rota o cliente aparece.
type CreateExtemporaneousOrder struct {
	repo  delivery.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateExtemporaneousOrder(
	repo delivery.Repository,
	audit *audit.Dispatcher,
) *CreateExtemporaneousOrder {
	return &CreateExtemporaneousOrder{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *CreateExtemporaneousOrder) Execute(
	ctx context.Context,
	routeID string,
	clientID string,
	quantities map[string]int,
) (*models.Order, error) {

	today := timezone.DateOf(uc.now())

	var order *models.Order
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

		// 3️⃣ Cliente
		c, err := tx.GetClient(ctx, clientID)
		if err != nil {
			return businessIfNotFound(err, "client_not_found")
		}
		if !c.Active {
			return httperr.ErrBusiness("client_inactive")
		}

		// 4️⃣ Pedido existente só se ainda estiver em aberto
		o, err := tx.FindOrder(ctx, a.ID, clientID)
		switch {
		case err == nil:
			if err := delivery.CanEditItems(delivery.OrderStatus(o.Status)); err != nil {
				return err
			}
		case errors.Is(err, domain.ErrNotFound):
			o = &models.Order{AssignmentID: a.ID, ClientID: clientID}
		default:
			return err
		}

		// 5️⃣ Rotas originais do cliente
		original, err := originalRoutes(ctx, tx, clientID, today)
		if err != nil {
			return err
		}
		o.IsExtemporaneous = true
		o.OriginalRoutes = original

		// 6️⃣ Quantidades planejadas
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

		// 7️⃣ Entra no acompanhamento da rota
		if _, err := tx.SeedTracking(ctx, routeID, today, []string{clientID}); err != nil {
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
		Action:   "extemporaneous_order_created",
		Entity:   "order",
		EntityID: clientID,
	})

	return order, nil
}

func originalRoutes(
	ctx context.Context,
	tx delivery.Repository,
	clientID string,
	day time.Time,
) (datatypes.JSON, error) {

	schedules, err := tx.ClientSchedules(ctx, clientID)
	if err != nil {
		return nil, err
	}

	routes := make([]delivery.OriginalRoute, 0, len(schedules))
	for _, s := range schedules {
		routes = append(routes, delivery.OriginalRoute{
			RouteID:  s.RouteID,
			DueToday: schedule.DaysOf(s).On(day.Weekday()),
		})
	}

	b, err := json.Marshal(routes)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// ======================================================
// ListExtemporaneousOrders
// ======================================================

type ListExtemporaneousOrders struct {
	repo delivery.Repository
	now  func() time.Time
}

func NewListExtemporaneousOrders(repo delivery.Repository) *ListExtemporaneousOrders {
	return &ListExtemporaneousOrders{repo: repo, now: timezone.Now}
}

func (uc *ListExtemporaneousOrders) Execute(ctx context.Context, routeID string) ([]models.Order, error) {
	return uc.repo.ListExtemporaneousOrders(ctx, routeID, timezone.DateOf(uc.now()))
}

// ======================================================
// CleanupExtemporaneousOrders
// ======================================================

// CleanupExtemporaneousOrders tira a marca extemporânea dos pedidos de dias anteriores.
type CleanupExtemporaneousOrders struct {
	repo delivery.Repository
	now  func() time.Time
}

func NewCleanupExtemporaneousOrders(repo delivery.Repository) *CleanupExtemporaneousOrders {
	return &CleanupExtemporaneousOrders{repo: repo, now: timezone.Now}
}

func (uc *CleanupExtemporaneousOrders) Execute(ctx context.Context) (int64, error) {
	return uc.repo.ClearExtemporaneousOrdersBefore(ctx, timezone.DateOf(uc.now()))
}

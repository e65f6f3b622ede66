package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/domain"
	delivery "github.com/BruksfildServices01/ice-routes/internal/domain/delivery"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

// OrderState é o resultado de negócio do pedido de um cliente no dia.
// Status nil = pendente.
type OrderState struct {
	Status             *string         `json:"status"`
	CancellationReason string          `json:"cancellation_reason"`
	Delivered          map[string]int  `json:"delivered_quantities"`
	Total              decimal.Decimal `json:"total"`
	IsExtemporaneous   bool            `json:"is_extemporaneous"`
}

type GetOrderStatuses struct {
	repo delivery.Repository
	now  func() time.Time
}

func NewGetOrderStatuses(repo delivery.Repository) *GetOrderStatuses {
	return &GetOrderStatuses{repo: repo, now: timezone.Now}
}

// Execute devolve clientId -> estado do pedido. Rota não despachada = mapa vazio.
func (uc *GetOrderStatuses) Execute(ctx context.Context, routeID string) (map[string]OrderState, error) {
	today := timezone.DateOf(uc.now())

	out := map[string]OrderState{}

	a, err := uc.repo.FindAssignment(ctx, routeID, today)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, nil
		}
		return nil, err
	}

	orders, err := uc.repo.ListOrders(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		o := &orders[i]

		var status *string
		if delivery.OrderStatus(o.Status).IsTerminal() {
			s := o.Status
			status = &s
		}

		out[o.ClientID] = OrderState{
			Status:             status,
			CancellationReason: o.CancellationReason,
			Delivered:          o.Quantities(),
			Total:              o.Total,
			IsExtemporaneous:   o.IsExtemporaneous,
		}
	}
	return out, nil
}

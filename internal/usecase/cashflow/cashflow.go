package cashflow

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	cashflow "github.com/BruksfildServices01/ice-routes/internal/domain/cashflow"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type RegisterOutflow struct {
	repo  cashflow.Repository
	audit *audit.Dispatcher
}

func NewRegisterOutflow(repo cashflow.Repository, audit *audit.Dispatcher) *RegisterOutflow {
	return &RegisterOutflow{repo: repo, audit: audit}
}

func (uc *RegisterOutflow) Execute(
	ctx context.Context,
	driverID uint,
	reason string,
	amount decimal.Decimal,
) (*models.CashOutflow, error) {

	reason = strings.TrimSpace(reason)
	if err := cashflow.Validate(reason, amount); err != nil {
		return nil, err
	}

	// rutero inexistente ou inativo = não encontrado
	d, err := uc.repo.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("driver_not_found")
		}
		return nil, err
	}
	if !d.Active {
		return nil, httperr.ErrBusiness("driver_not_found")
	}

	o := &models.CashOutflow{
		DriverID: driverID,
		Reason:   reason,
		Amount:   amount,
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	o.Driver = *d

	uc.audit.Dispatch(audit.Event{
		Action:   "cash_outflow_registered",
		Entity:   "cash_outflow",
		EntityID: strconv.FormatUint(uint64(o.ID), 10),
		Metadata: map[string]any{"driver_id": driverID, "amount": amount},
	})
	return o, nil
}

type ListOutflows struct {
	repo cashflow.Repository
}

func NewListOutflows(repo cashflow.Repository) *ListOutflows {
	return &ListOutflows{repo: repo}
}

func (uc *ListOutflows) Execute(ctx context.Context, f cashflow.Filter) ([]models.CashOutflow, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return uc.repo.List(ctx, f)
}

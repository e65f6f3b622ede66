package cashflow

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ice-routes/internal/domain"
	cashflow "github.com/BruksfildServices01/ice-routes/internal/domain/cashflow"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type MockCashflowRepository struct {
	mock.Mock
}

func (m *MockCashflowRepository) GetDriver(ctx context.Context, driverID uint) (*models.Driver, error) {
	args := m.Called(ctx, driverID)
	if d := args.Get(0); d != nil {
		return d.(*models.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCashflowRepository) Create(ctx context.Context, o *models.CashOutflow) error {
	args := m.Called(ctx, o)
	if args.Error(0) == nil {
		o.ID = 41
	}
	return args.Error(0)
}

func (m *MockCashflowRepository) List(ctx context.Context, f cashflow.Filter) ([]models.CashOutflow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.CashOutflow), args.Error(1)
}

func TestRegisterOutflow(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(150)

	repo := new(MockCashflowRepository)
	repo.On("GetDriver", ctx, uint(2)).Return(&models.Driver{ID: 2, Name: "Beto", Active: true}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(o *models.CashOutflow) bool {
		return o.DriverID == 2 && o.Reason == "gasolina" && o.Amount.Equal(amount)
	})).Return(nil)

	o, err := NewRegisterOutflow(repo, nil).Execute(ctx, 2, "  gasolina ", amount)

	require.NoError(t, err)
	assert.Equal(t, uint(41), o.ID)
	assert.Equal(t, "Beto", o.Driver.Name)
	repo.AssertExpectations(t)
}

func TestRegisterOutflowRejections(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCashflowRepository)
	repo.On("GetDriver", ctx, uint(9)).Return(nil, domain.ErrNotFound)
	repo.On("GetDriver", ctx, uint(3)).Return(&models.Driver{ID: 3, Active: false}, nil)

	uc := NewRegisterOutflow(repo, nil)

	_, err := uc.Execute(ctx, 2, " ", decimal.NewFromInt(10))
	assert.True(t, httperr.IsBusiness(err, "reason_required"))

	_, err = uc.Execute(ctx, 2, "comida", decimal.Zero)
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	_, err = uc.Execute(ctx, 9, "comida", decimal.NewFromInt(10))
	assert.True(t, httperr.IsBusiness(err, "driver_not_found"))

	_, err = uc.Execute(ctx, 3, "comida", decimal.NewFromInt(10))
	assert.True(t, httperr.IsBusiness(err, "driver_not_found"))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListOutflowsRejectsInvertedRange(t *testing.T) {
	repo := new(MockCashflowRepository)
	from := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := NewListOutflows(repo).Execute(context.Background(), cashflow.Filter{From: &from, To: &to})

	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

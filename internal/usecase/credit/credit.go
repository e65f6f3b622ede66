package credit

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/domain"
	credit "github.com/BruksfildServices01/ice-routes/internal/domain/credit"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

const recentEntries = 10

type Account struct {
	ClientID  string                     `json:"client_id"`
	Limit     decimal.Decimal            `json:"credit_limit"`
	Used      decimal.Decimal            `json:"credit_used"`
	Available decimal.Decimal            `json:"credit_available"`
	Entries   []models.CreditLedgerEntry `json:"entries"`
}

// ======================================================
// GetAccount
// ======================================================

type GetAccount struct {
	repo credit.Repository
}

func NewGetAccount(repo credit.Repository) *GetAccount {
	return &GetAccount{repo: repo}
}

func (uc *GetAccount) Execute(ctx context.Context, clientID string) (*Account, error) {
	c, err := uc.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, notFound(err, "client_not_found")
	}
	credit.Recompute(c)

	entries, err := uc.repo.RecentEntries(ctx, clientID, recentEntries)
	if err != nil {
		return nil, err
	}
	return accountOf(c, entries), nil
}

// ======================================================
// SetLimit
// ======================================================

type SetLimit struct {
	repo  credit.Repository
	audit *audit.Dispatcher
}

func NewSetLimit(repo credit.Repository, audit *audit.Dispatcher) *SetLimit {
	return &SetLimit{repo: repo, audit: audit}
}

func (uc *SetLimit) Execute(ctx context.Context, clientID string, limit decimal.Decimal) (*Account, error) {
	var c *models.Client

	err := uc.repo.Transaction(ctx, func(tx credit.Repository) error {
		var err error
		if c, err = tx.LockClient(ctx, clientID); err != nil {
			return notFound(err, "client_not_found")
		}
		if err := credit.SetLimit(c, limit); err != nil {
			return err
		}
		return tx.SaveCredit(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "credit_limit_set",
		Entity:   "client",
		EntityID: clientID,
		Metadata: map[string]any{"limit": limit},
	})
	return accountOf(c, nil), nil
}

// ======================================================
// UseCredit
// ======================================================

type UseCreditInput struct {
	ClientID    string
	Amount      decimal.Decimal
	OrderID     *uint
	Description string
}

type UseCredit struct {
	repo  credit.Repository
	audit *audit.Dispatcher
}

func NewUseCredit(repo credit.Repository, audit *audit.Dispatcher) *UseCredit {
	return &UseCredit{repo: repo, audit: audit}
}

func (uc *UseCredit) Execute(ctx context.Context, in UseCreditInput) (*Account, error) {
	var c *models.Client

	err := uc.repo.Transaction(ctx, func(tx credit.Repository) error {

		// 1️⃣ Cliente travado
		var err error
		if c, err = tx.LockClient(ctx, in.ClientID); err != nil {
			return notFound(err, "client_not_found")
		}

		// 2️⃣ Pedido (opcional) precisa ser do cliente
		if in.OrderID != nil {
			o, err := tx.GetOrder(ctx, *in.OrderID)
			if err != nil {
				return notFound(err, "order_not_found")
			}
			if o.ClientID != in.ClientID {
				return httperr.ErrBusiness("order_not_found")
			}
		}

		// 3️⃣ Saldo
		if err := credit.Use(c, in.Amount); err != nil {
			return err
		}
		if err := tx.SaveCredit(ctx, c); err != nil {
			return err
		}

		// 4️⃣ Lançamento
		if err := tx.AddEntry(ctx, &models.CreditLedgerEntry{
			ClientID:    in.ClientID,
			Amount:      in.Amount,
			Kind:        models.CreditKindUse,
			OrderID:     in.OrderID,
			Description: in.Description,
		}); err != nil {
			return err
		}

		if in.OrderID != nil {
			return tx.AddOrderCredit(ctx, *in.OrderID, in.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "credit_used",
		Entity:   "client",
		EntityID: in.ClientID,
		Metadata: map[string]any{"amount": in.Amount, "order_id": in.OrderID},
	})
	return accountOf(c, nil), nil
}

// ======================================================
// RegisterPayment
// ======================================================

type RegisterPayment struct {
	repo  credit.Repository
	audit *audit.Dispatcher
}

func NewRegisterPayment(repo credit.Repository, audit *audit.Dispatcher) *RegisterPayment {
	return &RegisterPayment{repo: repo, audit: audit}
}

func (uc *RegisterPayment) Execute(
	ctx context.Context,
	clientID string,
	amount decimal.Decimal,
	description string,
) (*Account, error) {

	var c *models.Client

	err := uc.repo.Transaction(ctx, func(tx credit.Repository) error {
		var err error
		if c, err = tx.LockClient(ctx, clientID); err != nil {
			return notFound(err, "client_not_found")
		}
		if err := credit.Pay(c, amount); err != nil {
			return err
		}
		if err := tx.SaveCredit(ctx, c); err != nil {
			return err
		}
		return tx.AddEntry(ctx, &models.CreditLedgerEntry{
			ClientID:    clientID,
			Amount:      amount,
			Kind:        models.CreditKindPayment,
			Description: description,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "credit_payment",
		Entity:   "client",
		EntityID: clientID,
		Metadata: map[string]any{"amount": amount},
	})
	return accountOf(c, nil), nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func accountOf(c *models.Client, entries []models.CreditLedgerEntry) *Account {
	if entries == nil {
		entries = []models.CreditLedgerEntry{}
	}
	return &Account{
		ClientID:  c.ID,
		Limit:     c.CreditLimit,
		Used:      c.CreditUsed,
		Available: c.CreditAvailable,
		Entries:   entries,
	}
}

func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

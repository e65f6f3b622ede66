package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	client "github.com/BruksfildServices01/ice-routes/internal/domain/client"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
	"github.com/BruksfildServices01/ice-routes/internal/validators"
)

const maxIDAttempts = 3

// ======================================================
// CreateClient
// ======================================================

type CreateClient struct {
	repo  client.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateClient(
	repo client.Repository,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Execute grava o cliente e suas agendas na mesma transação.
func (uc *CreateClient) Execute(ctx context.Context, in client.NewClient) (*models.Client, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	var created *models.Client
	err := uc.repo.Transaction(ctx, func(tx client.Repository) error {

		// 1️⃣ Rotas existentes
		routes, err := tx.ListRoutes(ctx)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(routes))
		for _, r := range routes {
			known[r.ID] = true
		}
		for _, r := range in.Routes {
			if !known[r.RouteID] {
				return httperr.ErrBusiness("route_not_found")
			}
		}

		// 2️⃣ Id único
		id, err := uc.newID(ctx, tx)
		if err != nil {
			return err
		}

		// 3️⃣ Cliente + agendas
		c := client.Build(id, in)
		if err := tx.CreateClient(ctx, c); err != nil {
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "client_created",
		Entity:   "client",
		EntityID: created.ID,
	})

	return created, nil
}

func (uc *CreateClient) newID(ctx context.Context, tx client.Repository) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := client.NewID(uc.now())
		exists, err := tx.ClientExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", httperr.ErrBusiness("concurrent_update")
}

// ======================================================
// SetupExtraClients
// ======================================================

// SetupExtraClients cria, se faltar, o cliente extra de cada rota.
type SetupExtraClients struct {
	repo  client.Repository
	audit *audit.Dispatcher
}

func NewSetupExtraClients(
	repo client.Repository,
	audit *audit.Dispatcher,
) *SetupExtraClients {
	return &SetupExtraClients{repo: repo, audit: audit}
}

// Execute devolve os ids criados; rodar de novo não cria nada.
func (uc *SetupExtraClients) Execute(ctx context.Context) ([]string, error) {
	created := []string{}

	err := uc.repo.Transaction(ctx, func(tx client.Repository) error {
		routes, err := tx.ListRoutes(ctx)
		if err != nil {
			return err
		}

		for _, r := range routes {
			exists, err := tx.ClientExists(ctx, client.ExtraID(r.ID))
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			extra := client.Extra(r.ID)
			if err := tx.CreateClient(ctx, extra); err != nil {
				return err
			}
			created = append(created, extra.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(created) > 0 {
		uc.audit.Dispatch(audit.Event{
			Action:   "extra_clients_created",
			Entity:   "client",
			Metadata: created,
		})
	}
	return created, nil
}

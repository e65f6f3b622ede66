package client

import (
	"context"
	"strings"
	"time"

	client "github.com/BruksfildServices01/ice-routes/internal/domain/client"
	"github.com/BruksfildServices01/ice-routes/internal/domain/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
)

const (
	searchLimit    = 20
	searchAllLimit = 50
)

type ListActiveClients struct {
	repo client.Repository
}

func NewListActiveClients(repo client.Repository) *ListActiveClients {
	return &ListActiveClients{repo: repo}
}

func (uc *ListActiveClients) Execute(ctx context.Context) ([]client.Ref, error) {
	return uc.repo.ListActive(ctx)
}

// ======================================================
// SearchClients
// ======================================================

// SearchClients procura candidatos por nome, endereço ou id.
// Exclui quem já tem extemporâneo hoje e, com excludeDay, quem tem entrega fixa nesse dia.
type SearchClients struct {
	repo client.Repository
	now  func() time.Time
}

func NewSearchClients(repo client.Repository) *SearchClients {
	return &SearchClients{repo: repo, now: timezone.Now}
}

func (uc *SearchClients) Execute(ctx context.Context, term, excludeDay string) ([]models.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, httperr.ErrBusiness("term_required")
	}

	q := client.SearchQuery{
		Term:  term,
		Day:   timezone.DateOf(uc.now()),
		Limit: searchLimit,
	}
	if excludeDay != "" {
		d, err := schedule.ParseWeekday(excludeDay)
		if err != nil {
			return nil, err
		}
		q.ExcludeWeekday = &d
	}

	return uc.repo.Search(ctx, q)
}

// ======================================================
// SearchAllClients
// ======================================================

// SearchAllClients também procura pelo telefone e não aplica filtros de agenda.
type SearchAllClients struct {
	repo client.Repository
}

func NewSearchAllClients(repo client.Repository) *SearchAllClients {
	return &SearchAllClients{repo: repo}
}

func (uc *SearchAllClients) Execute(ctx context.Context, term string) ([]models.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, httperr.ErrBusiness("term_required")
	}

	return uc.repo.Search(ctx, client.SearchQuery{
		Term:         term,
		IncludePhone: true,
		Limit:        searchAllLimit,
	})
}

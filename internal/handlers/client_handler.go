package handlers

import (
	"github.com/gin-gonic/gin"

	domainClient "github.com/BruksfildServices01/ice-routes/internal/domain/client"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	ucClient "github.com/BruksfildServices01/ice-routes/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	list      *ucClient.ListActiveClients
	create    *ucClient.CreateClient
	search    *ucClient.SearchClients
	searchAll *ucClient.SearchAllClients
	setup     *ucClient.SetupExtraClients
}

func NewClientHandler(
	list *ucClient.ListActiveClients,
	create *ucClient.CreateClient,
	search *ucClient.SearchClients,
	searchAll *ucClient.SearchAllClients,
	setup *ucClient.SetupExtraClients,
) *ClientHandler {
	return &ClientHandler{
		list:      list,
		create:    create,
		search:    search,
		searchAll: searchAll,
		setup:     setup,
	}
}

// ======================================================
// LIST / CREATE
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "clients_list_failed", "Error al listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req domainClient.NewClient
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.create.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err, "client_create_failed", "Error al registrar el cliente.")
		return
	}

	httpresp.Created(c, client)
}

// ======================================================
// SEARCH
// ======================================================

// Search: ?term=&exclude_day= (candidatos a extemporâneo).
func (h *ClientHandler) Search(c *gin.Context) {
	clients, err := h.search.Execute(c.Request.Context(), c.Query("term"), excludeDayQuery(c))
	if err != nil {
		httperr.Respond(c, err, "clients_search_failed", "Error al buscar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) SearchAll(c *gin.Context) {
	clients, err := h.searchAll.Execute(c.Request.Context(), c.Query("term"))
	if err != nil {
		httperr.Respond(c, err, "clients_search_failed", "Error al buscar clientes.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// SETUP
// ======================================================

func (h *ClientHandler) SetupExtraClients(c *gin.Context) {
	created, err := h.setup.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "extra_clients_failed", "Error al crear los clientes extra.")
		return
	}

	if created == nil {
		created = []string{}
	}
	httpresp.OK(c, gin.H{"success": true, "created": created})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/ice-routes/internal/usecase/schedule"
	"github.com/BruksfildServices01/ice-routes/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// RouteHandler expõe a agenda do dia: clientes por rota e extemporâneos.
type RouteHandler struct {
	routes     *ucSchedule.ListRoutes
	due        *ucSchedule.ListDueClients
	withoutDay *ucSchedule.ClientsWithoutDay
	assign     *ucSchedule.AssignExtemporaneous
	remove     *ucSchedule.RemoveExtemporaneous
	listExtra  *ucSchedule.ListExtemporaneous
	purge      *ucSchedule.PurgeExtemporaneous
}

func NewRouteHandler(
	routes *ucSchedule.ListRoutes,
	due *ucSchedule.ListDueClients,
	withoutDay *ucSchedule.ClientsWithoutDay,
	assign *ucSchedule.AssignExtemporaneous,
	remove *ucSchedule.RemoveExtemporaneous,
	listExtra *ucSchedule.ListExtemporaneous,
	purge *ucSchedule.PurgeExtemporaneous,
) *RouteHandler {
	return &RouteHandler{
		routes:     routes,
		due:        due,
		withoutDay: withoutDay,
		assign:     assign,
		remove:     remove,
		listExtra:  listExtra,
		purge:      purge,
	}
}

type AssignExtemporaneousRequest struct {
	ClientID string `json:"client_id"`
	RouteID  string `json:"route_id"`
}

// ======================================================
// ROUTES
// ======================================================

func (h *RouteHandler) List(c *gin.Context) {
	routes, err := h.routes.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "routes_list_failed", "Error al listar las rutas.")
		return
	}

	httpresp.List(c, routes)
}

// Clients devolve os clientes da rota hoje, na ordem de exibição.
func (h *RouteHandler) Clients(c *gin.Context) {
	routeID := c.Param("id")
	if validators.RouteID(routeID) != nil {
		invalidRequest(c)
		return
	}

	clients, err := h.due.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "route_clients_failed", "Error al obtener los clientes de la ruta.")
		return
	}

	httpresp.List(c, clients)
}

func (h *RouteHandler) Count(c *gin.Context) {
	routeID := c.Param("id")
	if validators.RouteID(routeID) != nil {
		invalidRequest(c)
		return
	}

	n, err := h.due.Count(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "route_clients_failed", "Error al contar los clientes de la ruta.")
		return
	}

	httpresp.OK(c, gin.H{"count": n})
}

func (h *RouteHandler) First(c *gin.Context) {
	routeID := c.Param("id")
	if validators.RouteID(routeID) != nil {
		invalidRequest(c)
		return
	}

	first, err := h.due.First(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "route_clients_failed", "Error al obtener el primer cliente.")
		return
	}

	httpresp.OK(c, gin.H{"client": first})
}

// ClientsWithoutDay lista clientes ativos sem agenda no dia pedido (padrão: hoje).
func (h *RouteHandler) ClientsWithoutDay(c *gin.Context) {
	clients, err := h.withoutDay.Execute(c.Request.Context(), excludeDayQuery(c))
	if err != nil {
		httperr.Respond(c, err, "clients_list_failed", "Error al listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// EXTEMPORANEOUS
// ======================================================

func (h *RouteHandler) ListExtemporaneous(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	clients, err := h.listExtra.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "extemporaneous_list_failed", "Error al listar clientes extemporáneos.")
		return
	}

	httpresp.List(c, clients)
}

func (h *RouteHandler) AssignExtemporaneous(c *gin.Context) {
	var req AssignExtemporaneousRequest
	if !bindJSON(c, &req) {
		return
	}
	if !clientOnRoute(c, req.RouteID, req.ClientID) {
		return
	}

	a, err := h.assign.Execute(c.Request.Context(), req.ClientID, req.RouteID)
	if err != nil {
		httperr.Respond(c, err, "extemporaneous_assign_failed", "Error al asignar el cliente a la ruta.")
		return
	}

	httpresp.Created(c, a)
}

func (h *RouteHandler) RemoveExtemporaneous(c *gin.Context) {
	removed, err := h.remove.Execute(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		httperr.Respond(c, err, "extemporaneous_remove_failed", "Error al quitar la asignación.")
		return
	}

	httpresp.OK(c, gin.H{"success": true, "removed": removed})
}

func (h *RouteHandler) PurgeExtemporaneous(c *gin.Context) {
	n, err := h.purge.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "extemporaneous_cleanup_failed", "Error al limpiar asignaciones vencidas.")
		return
	}

	httpresp.OK(c, gin.H{"success": true, "deleted": n})
}

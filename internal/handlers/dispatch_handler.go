package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ice-routes/internal/domain/dispatch"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	ucDispatch "github.com/BruksfildServices01/ice-routes/internal/usecase/dispatch"
)

// ======================================================
// HANDLER
// ======================================================

// DispatchHandler cobre a entrega da rota ao rutero e o inventário a bordo.
type DispatchHandler struct {
	drivers    *ucDispatch.ListDrivers
	dispatch   *ucDispatch.DispatchRoute
	assignment *ucDispatch.GetAssignment
	available  *ucDispatch.AvailableInventory
	history    *ucDispatch.DriverHistory
}

func NewDispatchHandler(
	drivers *ucDispatch.ListDrivers,
	dispatch *ucDispatch.DispatchRoute,
	assignment *ucDispatch.GetAssignment,
	available *ucDispatch.AvailableInventory,
	history *ucDispatch.DriverHistory,
) *DispatchHandler {
	return &DispatchHandler{
		drivers:    drivers,
		dispatch:   dispatch,
		assignment: assignment,
		available:  available,
		history:    history,
	}
}

type DispatchRequest struct {
	RouteID  string                      `json:"route_id"`
	DriverID uint                        `json:"driver_id"`
	Clients  []dispatch.ClientQuantities `json:"per_client_quantities"`
}

// ======================================================
// DRIVERS
// ======================================================

func (h *DispatchHandler) Drivers(c *gin.Context) {
	drivers, err := h.drivers.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "drivers_list_failed", "Error al listar ruteros.")
		return
	}

	httpresp.List(c, drivers)
}

// ======================================================
// ASSIGNMENTS
// ======================================================

func (h *DispatchHandler) Assignment(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	a, err := h.assignment.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "assignment_failed", "Error al obtener la asignación.")
		return
	}

	httpresp.OK(c, a)
}

func (h *DispatchHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.dispatch.Execute(c.Request.Context(), ucDispatch.DispatchRouteInput{
		RouteID:  req.RouteID,
		DriverID: req.DriverID,
		Clients:  req.Clients,
	})
	if err != nil {
		httperr.Respond(c, err, "dispatch_failed", "Error al asignar la ruta.")
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// INVENTORY
// ======================================================

func (h *DispatchHandler) Available(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	stock, err := h.available.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "inventory_failed", "Error al obtener el inventario.")
		return
	}

	httpresp.OK(c, gin.H{"route_id": routeID, "products": stock})
}

func (h *DispatchHandler) DriverHistory(c *gin.Context) {
	driverID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	snaps, err := h.history.Execute(c.Request.Context(), driverID, intQuery(c, "limit", 0))
	if err != nil {
		httperr.Respond(c, err, "inventory_failed", "Error al obtener el historial del rutero.")
		return
	}

	httpresp.List(c, snaps)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	ucDelivery "github.com/BruksfildServices01/ice-routes/internal/usecase/delivery"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	statuses       *ucDelivery.GetOrderStatuses
	getTracking    *ucDelivery.GetTracking
	updateTracking *ucDelivery.UpdateTracking
	getActive      *ucDelivery.GetActiveClient
	setActive      *ucDelivery.SetActiveClient
	ensureActive   *ucDelivery.EnsureActiveClient
	complete       *ucDelivery.CompleteOrder
	cancel         *ucDelivery.CancelOrder
	products       *ucDelivery.UpdateOrderProducts
	resetStatuses  *ucDelivery.ResetStatuses
	resetTracking  *ucDelivery.ResetTracking
	createExtra    *ucDelivery.CreateExtemporaneousOrder
	listExtra      *ucDelivery.ListExtemporaneousOrders
	cleanupExtra   *ucDelivery.CleanupExtemporaneousOrders
}

type OrderUseCases struct {
	Statuses       *ucDelivery.GetOrderStatuses
	GetTracking    *ucDelivery.GetTracking
	UpdateTracking *ucDelivery.UpdateTracking
	GetActive      *ucDelivery.GetActiveClient
	SetActive      *ucDelivery.SetActiveClient
	EnsureActive   *ucDelivery.EnsureActiveClient
	Complete       *ucDelivery.CompleteOrder
	Cancel         *ucDelivery.CancelOrder
	Products       *ucDelivery.UpdateOrderProducts
	ResetStatuses  *ucDelivery.ResetStatuses
	ResetTracking  *ucDelivery.ResetTracking
	CreateExtra    *ucDelivery.CreateExtemporaneousOrder
	ListExtra      *ucDelivery.ListExtemporaneousOrders
	CleanupExtra   *ucDelivery.CleanupExtemporaneousOrders
}

func NewOrderHandler(uc OrderUseCases) *OrderHandler {
	return &OrderHandler{
		statuses:       uc.Statuses,
		getTracking:    uc.GetTracking,
		updateTracking: uc.UpdateTracking,
		getActive:      uc.GetActive,
		setActive:      uc.SetActive,
		ensureActive:   uc.EnsureActive,
		complete:       uc.Complete,
		cancel:         uc.Cancel,
		products:       uc.Products,
		resetStatuses:  uc.ResetStatuses,
		resetTracking:  uc.ResetTracking,
		createExtra:    uc.CreateExtra,
		listExtra:      uc.ListExtra,
		cleanupExtra:   uc.CleanupExtra,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientOnRouteRequest struct {
	ClientID string `json:"client_id"`
	RouteID  string `json:"route_id"`
}

type TrackingRequest struct {
	ClientID string `json:"client_id"`
	RouteID  string `json:"route_id"`
	Status   string `json:"status"`
}

// CompleteOrderRequest traz o que de fato foi entregue.
type CompleteOrderRequest struct {
	ClientID   string         `json:"client_id"`
	RouteID    string         `json:"route_id"`
	Quantities map[string]int `json:"delivered_quantities"`
}

// PlannedItemsRequest traz as quantidades planejadas de um pedido em aberto.
type PlannedItemsRequest struct {
	ClientID   string         `json:"client_id"`
	RouteID    string         `json:"route_id"`
	Quantities map[string]int `json:"quantities"`
}

type CancelOrderRequest struct {
	ClientID string `json:"client_id"`
	RouteID  string `json:"route_id"`
	Reason   string `json:"reason"`
}

// ======================================================
// STATUS / TRACKING
// ======================================================

func (h *OrderHandler) Statuses(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	states, err := h.statuses.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "order_status_failed", "Error al obtener el estado de los pedidos.")
		return
	}

	httpresp.OK(c, states)
}

func (h *OrderHandler) Tracking(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	states, err := h.getTracking.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "tracking_failed", "Error al obtener el seguimiento.")
		return
	}

	httpresp.OK(c, states)
}

func (h *OrderHandler) UpdateTracking(c *gin.Context) {
	var req TrackingRequest
	if !bindJSON(c, &req) {
		return
	}
	if !clientOnRoute(c, req.RouteID, req.ClientID) {
		return
	}

	if err := h.updateTracking.Execute(c.Request.Context(), req.RouteID, req.ClientID, req.Status); err != nil {
		httperr.Respond(c, err, "tracking_update_failed", "Error al actualizar el seguimiento.")
		return
	}

	httpresp.OK(c, gin.H{"success": true})
}

// ======================================================
// ACTIVE CLIENT
// ======================================================

func (h *OrderHandler) ActiveClient(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	client, err := h.getActive.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "active_client_failed", "Error al obtener el cliente activo.")
		return
	}

	httpresp.OK(c, gin.H{"active_client": client})
}

func (h *OrderHandler) SetActiveClient(c *gin.Context) {
	var req ClientOnRouteRequest
	if !bindJSON(c, &req) {
		return
	}
	if !clientOnRoute(c, req.RouteID, req.ClientID) {
		return
	}

	if err := h.setActive.Execute(c.Request.Context(), req.RouteID, req.ClientID); err != nil {
		httperr.Respond(c, err, "active_client_update_failed", "Error al cambiar el cliente activo.")
		return
	}

	httpresp.OK(c, gin.H{"success": true})
}

// EnsureActiveClient abre a rota: garante um cliente ativo se houver pendentes.
func (h *OrderHandler) EnsureActiveClient(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	client, err := h.ensureActive.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "active_client_failed", "Error al abrir la ruta.")
		return
	}

	httpresp.OK(c, gin.H{"active_client": client})
}

// ======================================================
// COMPLETE / CANCEL / PRODUCTS
// ======================================================

func (h *OrderHandler) Complete(c *gin.Context) {
	var req CompleteOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.complete.Execute(c.Request.Context(), ucDelivery.CompleteOrderInput{
		RouteID:    req.RouteID,
		ClientID:   req.ClientID,
		Quantities: req.Quantities,
	})
	if err != nil {
		httperr.Respond(c, err, "order_complete_failed", "Error al completar el pedido.")
		return
	}

	httpresp.OK(c, res)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	var req CancelOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if !clientOnRoute(c, req.RouteID, req.ClientID) {
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), req.RouteID, req.ClientID, req.Reason)
	if err != nil {
		httperr.Respond(c, err, "order_cancel_failed", "Error al cancelar el pedido.")
		return
	}

	httpresp.OK(c, res)
}

func (h *OrderHandler) Products(c *gin.Context) {
	var req PlannedItemsRequest
	if !bindJSON(c, &req) {
		return
	}
	if !clientOnRoute(c, req.RouteID, req.ClientID) {
		return
	}

	order, err := h.products.Execute(c.Request.Context(), req.RouteID, req.ClientID, req.Quantities)
	if err != nil {
		httperr.Respond(c, err, "order_products_failed", "Error al actualizar los productos del pedido.")
		return
	}

	httpresp.OK(c, order)
}

// ======================================================
// RESETS
// ======================================================

func (h *OrderHandler) ResetStatuses(c *gin.Context) {
	n, err := h.resetStatuses.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "reset_failed", "Error al reiniciar los estados.")
		return
	}

	httpresp.OK(c, gin.H{"success": true, "updated": n})
}

func (h *OrderHandler) ResetTracking(c *gin.Context) {
	n, err := h.resetTracking.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "reset_failed", "Error al reiniciar el seguimiento.")
		return
	}

	httpresp.OK(c, gin.H{"success": true, "updated": n})
}

// ======================================================
// EXTEMPORANEOUS ORDERS
// ======================================================

func (h *OrderHandler) ListExtemporaneous(c *gin.Context) {
	routeID, ok := routeQuery(c)
	if !ok {
		return
	}

	orders, err := h.listExtra.Execute(c.Request.Context(), routeID)
	if err != nil {
		httperr.Respond(c, err, "extemporaneous_list_failed", "Error al listar pedidos extemporáneos.")
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) CreateExtemporaneous(c *gin.Context) {
	var req PlannedItemsRequest
	if !bindJSON(c, &req) {
		return
	}
	if !clientOnRoute(c, req.RouteID, req.ClientID) {
		return
	}

	order, err := h.createExtra.Execute(c.Request.Context(), req.RouteID, req.ClientID, req.Quantities)
	if err != nil {
		httperr.Respond(c, err, "extemporaneous_create_failed", "Error al crear el pedido extemporáneo.")
		return
	}

	httpresp.Created(c, order)
}

func (h *OrderHandler) CleanupExtemporaneous(c *gin.Context) {
	n, err := h.cleanupExtra.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "extemporaneous_cleanup_failed", "Error al limpiar pedidos extemporáneos.")
		return
	}

	httpresp.OK(c, gin.H{"success": true, "updated": n})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	if page <= 0 {
		page = 1
	}

	limit := intQuery(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	f := audit.Filter{
		RouteID: c.Query("route_id"),
		Action:  c.Query("action"),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	logs, total, err := h.logger.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err, "audit_list_failed", "Error al listar la bitácora.")
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}

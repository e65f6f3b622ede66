package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/validators"
)

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", httperr.MessageFor("invalid_request"))
}

// bindJSON decodifica o corpo; a validação fica com os casos de uso.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debug().Err(err).Str("path", c.FullPath()).Msg("invalid body")
		invalidRequest(c)
		return false
	}
	return true
}

// routeQuery lê ?route_id= (ou ?routeId=, usado pelo app do rutero).
func routeQuery(c *gin.Context) (string, bool) {
	id := c.Query("route_id")
	if id == "" {
		id = c.Query("routeId")
	}

	if err := validators.RouteID(id); err != nil {
		invalidRequest(c)
		return "", false
	}
	return id, true
}

// excludeDayQuery lê ?exclude_day= (ou ?excludeDay=).
func excludeDayQuery(c *gin.Context) string {
	if v := c.Query("exclude_day"); v != "" {
		return v
	}
	return c.Query("excludeDay")
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		invalidRequest(c)
		return 0, false
	}
	return uint(v), true
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

// clientOnRoute valida o par rota/cliente vindo no corpo.
func clientOnRoute(c *gin.Context, routeID, clientID string) bool {
	if validators.RouteID(routeID) != nil || strings.TrimSpace(clientID) == "" {
		invalidRequest(c)
		return false
	}
	return true
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	ucRollover "github.com/BruksfildServices01/ice-routes/internal/usecase/rollover"
)

type RolloverHandler struct {
	run *ucRollover.RunDaily
}

func NewRolloverHandler(run *ucRollover.RunDaily) *RolloverHandler {
	return &RolloverHandler{run: run}
}

// Run executa o fechamento agora; ?force=true repete mesmo se hoje já rodou.
func (h *RolloverHandler) Run(c *gin.Context) {
	force := c.Query("force") == "true"

	report, err := h.run.Execute(c.Request.Context(), force)
	if err != nil {
		httperr.Respond(c, err, "rollover_failed", "Error al ejecutar el cierre diario.")
		return
	}

	httpresp.OK(c, report)
}

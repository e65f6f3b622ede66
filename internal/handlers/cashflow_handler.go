package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/domain/cashflow"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
	ucCashflow "github.com/BruksfildServices01/ice-routes/internal/usecase/cashflow"
)

type CashflowHandler struct {
	register *ucCashflow.RegisterOutflow
	list     *ucCashflow.ListOutflows
}

func NewCashflowHandler(register *ucCashflow.RegisterOutflow, list *ucCashflow.ListOutflows) *CashflowHandler {
	return &CashflowHandler{register: register, list: list}
}

type CashOutflowRequest struct {
	DriverID uint            `json:"driver_id"`
	Reason   string          `json:"reason"`
	Amount   decimal.Decimal `json:"amount"`
}

func (h *CashflowHandler) Register(c *gin.Context) {
	var req CashOutflowRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.register.Execute(c.Request.Context(), req.DriverID, req.Reason, req.Amount)
	if err != nil {
		httperr.Respond(c, err, "cash_outflow_failed", "Error al registrar la salida de efectivo.")
		return
	}

	httpresp.Created(c, o)
}

// List aceita ?driver_id=&from=&to= (datas YYYY-MM-DD, to inclusivo).
func (h *CashflowHandler) List(c *gin.Context) {
	var f cashflow.Filter

	if v := intQuery(c, "driver_id", 0); v > 0 {
		id := uint(v)
		f.DriverID = &id
	}

	if s := c.Query("from"); s != "" {
		from, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", httperr.MessageFor("invalid_date"))
			return
		}
		start := dayStart(from)
		f.From = &start
	}

	if s := c.Query("to"); s != "" {
		to, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", httperr.MessageFor("invalid_date"))
			return
		}
		end := dayStart(to).AddDate(0, 0, 1)
		f.To = &end
	}

	outflows, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err, "cash_outflow_list_failed", "Error al listar salidas de efectivo.")
		return
	}

	httpresp.List(c, outflows)
}

// dayStart converte um dia civil no instante da meia-noite local do negócio.
func dayStart(day time.Time) time.Time {
	loc := timezone.Location(timezone.Business())
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}

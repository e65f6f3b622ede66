package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	ucCredit "github.com/BruksfildServices01/ice-routes/internal/usecase/credit"
)

type CreditHandler struct {
	account  *ucCredit.GetAccount
	setLimit *ucCredit.SetLimit
	use      *ucCredit.UseCredit
	payment  *ucCredit.RegisterPayment
}

func NewCreditHandler(
	account *ucCredit.GetAccount,
	setLimit *ucCredit.SetLimit,
	use *ucCredit.UseCredit,
	payment *ucCredit.RegisterPayment,
) *CreditHandler {
	return &CreditHandler{
		account:  account,
		setLimit: setLimit,
		use:      use,
		payment:  payment,
	}
}

type CreditLimitRequest struct {
	Limit decimal.Decimal `json:"limit"`
}

type CreditMovementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	OrderID     *uint           `json:"order_id"`
	Description string          `json:"description"`
}

func (h *CreditHandler) Get(c *gin.Context) {
	acc, err := h.account.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "credit_failed", "Error al obtener el crédito del cliente.")
		return
	}

	httpresp.OK(c, acc)
}

func (h *CreditHandler) SetLimit(c *gin.Context) {
	var req CreditLimitRequest
	if !bindJSON(c, &req) {
		return
	}

	acc, err := h.setLimit.Execute(c.Request.Context(), c.Param("id"), req.Limit)
	if err != nil {
		httperr.Respond(c, err, "credit_failed", "Error al actualizar el límite de crédito.")
		return
	}

	httpresp.OK(c, acc)
}

func (h *CreditHandler) Use(c *gin.Context) {
	var req CreditMovementRequest
	if !bindJSON(c, &req) {
		return
	}

	acc, err := h.use.Execute(c.Request.Context(), ucCredit.UseCreditInput{
		ClientID:    c.Param("id"),
		Amount:      req.Amount,
		OrderID:     req.OrderID,
		Description: req.Description,
	})
	if err != nil {
		httperr.Respond(c, err, "credit_failed", "Error al registrar el uso de crédito.")
		return
	}

	httpresp.OK(c, acc)
}

func (h *CreditHandler) Payment(c *gin.Context) {
	var req CreditMovementRequest
	if !bindJSON(c, &req) {
		return
	}

	acc, err := h.payment.Execute(c.Request.Context(), c.Param("id"), req.Amount, req.Description)
	if err != nil {
		httperr.Respond(c, err, "credit_failed", "Error al registrar el pago.")
		return
	}

	httpresp.OK(c, acc)
}

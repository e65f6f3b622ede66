package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	ucPricing "github.com/BruksfildServices01/ice-routes/internal/usecase/pricing"
)

// ======================================================
// HANDLER
// ======================================================

type PricingHandler struct {
	products  *ucPricing.ListProducts
	basePrice *ucPricing.SetBasePrice
	sheet     *ucPricing.GetClientPrices
	setPrices *ucPricing.SetClientPrices
	clear     *ucPricing.ClearClientPrice
}

func NewPricingHandler(
	products *ucPricing.ListProducts,
	basePrice *ucPricing.SetBasePrice,
	sheet *ucPricing.GetClientPrices,
	setPrices *ucPricing.SetClientPrices,
	clear *ucPricing.ClearClientPrice,
) *PricingHandler {
	return &PricingHandler{
		products:  products,
		basePrice: basePrice,
		sheet:     sheet,
		setPrices: setPrices,
		clear:     clear,
	}
}

type PriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type ClientPricesRequest struct {
	Prices map[string]decimal.Decimal `json:"prices"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *PricingHandler) Products(c *gin.Context) {
	products, err := h.products.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "products_list_failed", "Error al listar productos.")
		return
	}

	httpresp.List(c, products)
}

func (h *PricingHandler) SetBasePrice(c *gin.Context) {
	var req PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.basePrice.Execute(c.Request.Context(), c.Param("id"), req.Price)
	if err != nil {
		httperr.Respond(c, err, "price_update_failed", "Error al actualizar el precio.")
		return
	}

	httpresp.OK(c, product)
}

// ======================================================
// CLIENT PRICES
// ======================================================

func (h *PricingHandler) ClientPrices(c *gin.Context) {
	lines, err := h.sheet.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "client_prices_failed", "Error al obtener los precios del cliente.")
		return
	}

	httpresp.List(c, lines)
}

func (h *PricingHandler) SetClientPrices(c *gin.Context) {
	var req ClientPricesRequest
	if !bindJSON(c, &req) {
		return
	}

	lines, err := h.setPrices.Execute(c.Request.Context(), c.Param("id"), req.Prices)
	if err != nil {
		httperr.Respond(c, err, "client_prices_failed", "Error al guardar los precios del cliente.")
		return
	}

	httpresp.List(c, lines)
}

// SetClientPrice grava o preço especial de um único produto.
func (h *PricingHandler) SetClientPrice(c *gin.Context) {
	var req PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	lines, err := h.setPrices.Execute(c.Request.Context(), c.Param("id"), map[string]decimal.Decimal{
		c.Param("productId"): req.Price,
	})
	if err != nil {
		httperr.Respond(c, err, "client_prices_failed", "Error al guardar el precio del cliente.")
		return
	}

	httpresp.List(c, lines)
}

func (h *PricingHandler) ClearClientPrice(c *gin.Context) {
	removed, err := h.clear.Execute(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		httperr.Respond(c, err, "client_prices_failed", "Error al quitar el precio del cliente.")
		return
	}

	httpresp.OK(c, gin.H{"success": true, "removed": removed})
}

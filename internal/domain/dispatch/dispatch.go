package dispatch

import (
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
)

// StatusInProgress é o único estado de uma asignación: ela vale só para o dia.
const StatusInProgress = "en_progreso"

// ClientQuantities são as quantidades planejadas para um cliente da rota.
type ClientQuantities struct {
	ClientID string         `json:"client_id" validate:"required"`
	Products map[string]int `json:"products" validate:"dive,gte=0"`
}

// SumQuantities soma as quantidades planejadas por produto.
func SumQuantities(orders []ClientQuantities) map[string]int {
	totals := make(map[string]int)
	for _, o := range orders {
		for product, qty := range o.Products {
			if qty > 0 {
				totals[product] += qty
			}
		}
	}
	return totals
}

// ValidateProducts exige que todos os produtos existam no catálogo.
func ValidateProducts(totals map[string]int, known map[string]bool) error {
	for product := range totals {
		if !known[product] {
			return httperr.ErrBusiness("invalid_product")
		}
	}
	return nil
}

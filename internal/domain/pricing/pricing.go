package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// Sheet é a tabela de preços efetivos de um cliente.
type Sheet struct {
	base      map[string]decimal.Decimal
	overrides map[string]decimal.Decimal
	order     []string
}

func NewSheet(products []models.Product, overrides []models.ClientPrice) *Sheet {
	s := &Sheet{
		base:      make(map[string]decimal.Decimal, len(products)),
		overrides: make(map[string]decimal.Decimal, len(overrides)),
		order:     make([]string, 0, len(products)),
	}
	for _, p := range products {
		s.base[p.ID] = p.BasePrice
		s.order = append(s.order, p.ID)
	}
	for _, o := range overrides {
		s.overrides[o.ProductID] = o.Price
	}
	return s
}

func (s *Sheet) Has(productID string) bool {
	_, ok := s.base[productID]
	return ok
}

// Price devolve o preço personalizado, ou o preço base quando não há.
func (s *Sheet) Price(productID string) decimal.Decimal {
	if p, ok := s.overrides[productID]; ok {
		return p
	}
	return s.base[productID]
}

type Line struct {
	ProductID      string           `json:"product_id"`
	BasePrice      decimal.Decimal  `json:"base_price"`
	CustomPrice    *decimal.Decimal `json:"custom_price"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
}

func (s *Sheet) Lines() []Line {
	out := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		l := Line{
			ProductID:      id,
			BasePrice:      s.base[id],
			EffectivePrice: s.Price(id),
		}
		if p, ok := s.overrides[id]; ok {
			p := p
			l.CustomPrice = &p
		}
		out = append(out, l)
	}
	return out
}

// Items monta os itens do pedido com o preço unitário vigente.
// Produtos desconhecidos e quantidades negativas são rejeitados; zeros são ignorados.
func (s *Sheet) Items(quantities map[string]int) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(quantities))
	for _, id := range s.order {
		qty, ok := quantities[id]
		if !ok {
			continue
		}
		if qty < 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
		if qty == 0 {
			continue
		}
		items = append(items, models.OrderItem{
			ProductID: id,
			Quantity:  qty,
			UnitPrice: s.Price(id),
		})
	}

	for id := range quantities {
		if !s.Has(id) {
			return nil, httperr.ErrBusiness("invalid_product")
		}
	}

	return items, nil
}

// Total = Σ quantidade × preço unitário
func Total(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ValidatePrice exige preço não negativo.
func ValidatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return httperr.ErrBusiness("invalid_price")
	}
	return nil
}

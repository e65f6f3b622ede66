package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

func sheet() *Sheet {
	return NewSheet(
		[]models.Product{
			{ID: "gourmet15", BasePrice: decimal.RequireFromString("45.00")},
			{ID: "gourmet5", BasePrice: decimal.RequireFromString("18.50")},
			{ID: "premium", BasePrice: decimal.RequireFromString("60.00")},
		},
		[]models.ClientPrice{
			{ProductID: "gourmet15", Price: decimal.RequireFromString("40.00")},
		},
	)
}

func TestPriceOverrideWinsOverBase(t *testing.T) {
	s := sheet()

	assert.True(t, s.Price("gourmet15").Equal(decimal.RequireFromString("40")))
	assert.True(t, s.Price("gourmet5").Equal(decimal.RequireFromString("18.5")))
}

func TestItemsAndTotal(t *testing.T) {
	items, err := sheet().Items(map[string]int{
		"gourmet15": 5,
		"gourmet5":  2,
		"premium":   0,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// 5 × 40 + 2 × 18.50
	assert.Equal(t, "237", Total(items).String())
}

func TestItemsRejectsUnknownProductAndNegativeQuantity(t *testing.T) {
	_, err := sheet().Items(map[string]int{"hielo_seco": 1})
	assert.True(t, httperr.IsBusiness(err, "invalid_product"))

	_, err = sheet().Items(map[string]int{"gourmet5": -1})
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}

func TestLines(t *testing.T) {
	lines := sheet().Lines()
	require.Len(t, lines, 3)

	assert.Equal(t, "gourmet15", lines[0].ProductID)
	require.NotNil(t, lines[0].CustomPrice)
	assert.Nil(t, lines[1].CustomPrice)
	assert.True(t, lines[1].EffectivePrice.Equal(lines[1].BasePrice))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(decimal.Zero))
	assert.True(t, httperr.IsBusiness(ValidatePrice(decimal.NewFromInt(-1)), "invalid_price"))
}

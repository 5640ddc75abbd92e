package pricing

import (
	"testing"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []models.ShopItem {
	return []models.ShopItem{
		{ID: 1, CostType: models.COST_TYPE_FIXED, USDCost: 10, BasePrice: 16},
		{ID: 2, CostType: models.COST_TYPE_FIXED, USDCost: 25, BasePrice: 1},
		{ID: 3, CostType: models.COST_TYPE_CONFIG, BasePrice: 49, Config: models.ItemConfig{"hours_equal_to_one_percent_progress": 3}},
		{ID: 4, CostType: models.COST_TYPE_FIXED, USDCost: -3, BasePrice: 8},
		{ID: 5, CostType: models.COST_TYPE_FIXED, USDCost: 10, BasePrice: 0, Config: models.ItemConfig{"dollars_per_hour": 5}},
	}
}

func TestRecalculateFixedPrices(t *testing.T) {
	rate := models.GlobalRateConfig{DollarsPerHour: 5}

	results := RecalculateFixedPrices(catalog(), rate)
	require.Len(t, results, 4)
	assert.NotContains(t, results, uint(3))

	assert.Equal(t, int64(32), results[1].BasePrice)
	assert.True(t, results[1].Changed())
	assert.Equal(t, int64(81), results[2].BasePrice)

	assert.ErrorIs(t, results[4].Err, ErrInvalidCostBasis)
	assert.Equal(t, int64(8), results[4].BasePrice)
	assert.False(t, results[4].Changed())

	// item override matches the new global rate by coincidence only
	assert.Equal(t, int64(32), results[5].BasePrice)
}

func TestRecalculateFixedPrices_Idempotent(t *testing.T) {
	rate := models.GlobalRateConfig{DollarsPerHour: 7.25}
	items := catalog()

	first := RecalculateFixedPrices(items, rate)
	for i := range items {
		if r, ok := first[items[i].ID]; ok && r.Err == nil {
			items[i].BasePrice = r.BasePrice
		}
	}
	second := RecalculateFixedPrices(items, rate)

	require.Equal(t, len(first), len(second))
	for id, r := range first {
		assert.Equal(t, r.BasePrice, second[id].BasePrice, "item %d", id)
		assert.False(t, second[id].Changed(), "item %d", id)
	}
}

func TestRecalculateFixedPrices_ItemOverrideIgnoresGlobalRate(t *testing.T) {
	item := []models.ShopItem{{ID: 5, CostType: models.COST_TYPE_FIXED, USDCost: 10, Config: models.ItemConfig{"dollars_per_hour": 5}}}

	a := RecalculateFixedPrices(item, models.GlobalRateConfig{DollarsPerHour: 10})
	b := RecalculateFixedPrices(item, models.GlobalRateConfig{DollarsPerHour: 99})
	assert.Equal(t, a[5].BasePrice, b[5].BasePrice)
}

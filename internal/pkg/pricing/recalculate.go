package pricing

import (
	"github.com/ManuelReschke/ShellEconomy/app/models"
)

// RecalcResult is the outcome of recalculating one fixed item.
type RecalcResult struct {
	ItemID    uint  `json:"item_id"`
	OldPrice  int64 `json:"old_price"`
	BasePrice int64 `json:"base_price"`
	Err       error `json:"-"`
}

// Changed reports whether the recalculated price differs from the stored one.
func (r RecalcResult) Changed() bool {
	return r.Err == nil && r.BasePrice != r.OldPrice
}

// RecalculateFixedPrices recomputes the base price of every fixed item for
// the given rate. Config items are not part of the result. Failed items keep
// their old price in BasePrice and carry the error. Running it twice with the
// same rate yields identical prices.
func RecalculateFixedPrices(items []models.ShopItem, rate models.GlobalRateConfig) map[uint]RecalcResult {
	results := make(map[uint]RecalcResult, len(items))
	for _, item := range items {
		if !item.IsFixed() {
			continue
		}

		res := RecalcResult{ItemID: item.ID, OldPrice: item.BasePrice, BasePrice: item.BasePrice}
		price, err := ComputeBasePrice(item, rate)
		if err != nil {
			res.Err = err
		} else {
			res.BasePrice = price
		}
		results[item.ID] = res
	}
	return results
}

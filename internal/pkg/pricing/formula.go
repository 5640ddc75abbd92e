// Package pricing converts USD costs, tracked hours and progress units into
// shell prices.
package pricing

import (
	"fmt"
	"math"

	"github.com/ManuelReschke/ShellEconomy/app/models"
)

// ComputeBasePrice derives an item's base price from its cost basis and the
// current global rate.
//
// Fixed items cost round(usd / dph * φ * 10), where dph is the global rate
// unless the item's config sets dollars_per_hour. Config items are priced from
// hours_equal_to_one_percent_progress (usd is ignored) or, failing that, from
// their own dollars_per_hour. A config item with neither key keeps its stored
// base price and ErrUnrecognizedConfigShape is returned alongside it.
func ComputeBasePrice(item models.ShopItem, rate models.GlobalRateConfig) (int64, error) {
	switch {
	case item.IsFixed():
		dph := rate.DollarsPerHour
		override, ok, err := configNumber(item, models.ConfigKeyDollarsPerHour)
		if err != nil {
			return 0, err
		}
		if ok {
			dph = override
		}
		return usdToShells(item.USDCost, dph)

	case item.IsConfig():
		h, ok, err := configNumber(item, models.ConfigKeyHoursPerPercentProgress)
		if err != nil {
			return 0, err
		}
		if ok {
			return hoursToShells(h)
		}

		r, ok, err := configNumber(item, models.ConfigKeyDollarsPerHour)
		if err != nil {
			return 0, err
		}
		if ok {
			return usdToShells(item.USDCost, r)
		}
		return item.BasePrice, ErrUnrecognizedConfigShape

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCostType, item.CostType)
	}
}

func usdToShells(usd, dollarsPerHour float64) (int64, error) {
	if !isFinite(usd) || usd < 0 {
		return 0, fmt.Errorf("%w: usd cost %v", ErrInvalidCostBasis, usd)
	}
	if !isFinite(dollarsPerHour) || dollarsPerHour <= 0 {
		return 0, fmt.Errorf("%w: dollars per hour %v", ErrInvalidCostBasis, dollarsPerHour)
	}
	return hoursToShells(usd / dollarsPerHour)
}

func hoursToShells(hours float64) (int64, error) {
	if !isFinite(hours) || hours < 0 {
		return 0, fmt.Errorf("%w: hours %v", ErrInvalidCostBasis, hours)
	}
	price := math.Round(hours * math.Phi * 10)
	if !isFinite(price) || price >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: price %v out of range", ErrInvalidCostBasis, price)
	}
	return int64(price), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

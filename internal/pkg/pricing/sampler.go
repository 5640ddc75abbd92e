package pricing

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/cespare/xxhash/v2"
)

// BucketWidth is how long a sampled price stays stable for one user.
const BucketWidth = time.Hour

// HourBucket returns the index of the clock hour containing t.
func HourBucket(t time.Time) int64 {
	secs := t.Unix()
	width := int64(BucketWidth / time.Second)
	bucket := secs / width
	if secs%width < 0 {
		bucket--
	}
	return bucket
}

// unitSample maps (userID, itemID, bucket) onto a uniform value in [0, 1).
func unitSample(userID, itemID uint, bucket int64) float64 {
	var seed [24]byte
	binary.LittleEndian.PutUint64(seed[0:8], uint64(userID))
	binary.LittleEndian.PutUint64(seed[8:16], uint64(itemID))
	binary.LittleEndian.PutUint64(seed[16:24], uint64(bucket))

	// top 53 bits fill a float64 mantissa exactly
	return float64(xxhash.Sum64(seed[:])>>11) / (1 << 53)
}

// Multiplier returns the price multiplier a user sees for an item during the
// hour bucket, drawn from [minPercent/100, maxPercent/100].
func Multiplier(userID, itemID uint, bucket int64, minPercent, maxPercent float64) float64 {
	lo := minPercent / 100
	hi := maxPercent / 100
	return lo + unitSample(userID, itemID, bucket)*(hi-lo)
}

// SamplePrice returns the price displayed to userID at now. Items without
// randomized pricing show their base price. The same user sees the same price
// for an item for the whole clock hour; the result always lies within
// [base*min%, base*max%].
func SamplePrice(item models.ShopItem, userID uint, now time.Time, rate models.GlobalRateConfig) (int64, error) {
	if item.BasePrice < 0 {
		return 0, fmt.Errorf("%w: base price %d", ErrInvalidCostBasis, item.BasePrice)
	}
	if !item.UseRandomizedPricing {
		return item.BasePrice, nil
	}

	minP, maxP := rate.PriceRandomMinPercent, rate.PriceRandomMaxPercent
	if !isFinite(minP) || !isFinite(maxP) || minP < 0 || maxP < minP {
		return 0, fmt.Errorf("%w: random band [%v, %v]", ErrInvalidCostBasis, minP, maxP)
	}

	base := float64(item.BasePrice)
	m := Multiplier(userID, item.ID, HourBucket(now), minP, maxP)
	price := math.Round(base * m)

	lo := math.Ceil(base * minP / 100)
	hi := math.Floor(base * maxP / 100)
	if lo <= hi {
		price = math.Max(lo, math.Min(hi, price))
	}
	if !isFinite(price) || price >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: price %v out of range", ErrInvalidCostBasis, price)
	}
	return int64(price), nil
}

package pricing

import (
	"testing"
	"time"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomizedItem(id uint, base int64) models.ShopItem {
	return models.ShopItem{ID: id, CostType: models.COST_TYPE_FIXED, BasePrice: base, UseRandomizedPricing: true}
}

func TestHourBucket(t *testing.T) {
	assert.Equal(t, int64(0), HourBucket(time.Unix(0, 0)))
	assert.Equal(t, int64(0), HourBucket(time.Unix(3599, 0)))
	assert.Equal(t, int64(1), HourBucket(time.Unix(3600, 0)))
	assert.Equal(t, int64(-1), HourBucket(time.Unix(-1, 0)))

	berlin := time.FixedZone("CEST", 2*60*60)
	at := time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, HourBucket(at), HourBucket(at.In(berlin)))
}

func TestSamplePrice_NotRandomized(t *testing.T) {
	item := models.ShopItem{ID: 9, BasePrice: 120}
	got, err := SamplePrice(item, 1, time.Now(), defaultRate)
	require.NoError(t, err)
	assert.Equal(t, int64(120), got)
}

func TestSamplePrice_StableWithinHour(t *testing.T) {
	item := randomizedItem(7, 1000)
	start := time.Date(2026, 10, 16, 14, 0, 0, 0, time.UTC)

	first, err := SamplePrice(item, 42, start, defaultRate)
	require.NoError(t, err)
	for _, offset := range []time.Duration{time.Second, 17 * time.Minute, 59*time.Minute + 59*time.Second} {
		got, err := SamplePrice(item, 42, start.Add(offset), defaultRate)
		require.NoError(t, err)
		assert.Equal(t, first, got, "offset %s", offset)
	}
}

func TestSamplePrice_WithinBandAcrossBuckets(t *testing.T) {
	item := randomizedItem(7, 1000)
	rate := models.GlobalRateConfig{DollarsPerHour: 10, PriceRandomMinPercent: 80, PriceRandomMaxPercent: 120}
	start := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	seen := map[int64]struct{}{}
	for h := 0; h < 72; h++ {
		got, err := SamplePrice(item, 42, start.Add(time.Duration(h)*time.Hour), rate)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, int64(800))
		assert.LessOrEqual(t, got, int64(1200))
		seen[got] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "price should move across hour boundaries")
}

func TestSamplePrice_DiffersAcrossUsers(t *testing.T) {
	item := randomizedItem(3, 5000)
	now := time.Date(2026, 10, 16, 9, 15, 0, 0, time.UTC)

	seen := map[int64]struct{}{}
	for user := uint(1); user <= 25; user++ {
		got, err := SamplePrice(item, user, now, defaultRate)
		require.NoError(t, err)
		seen[got] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestSamplePrice_SmallBaseStaysInBand(t *testing.T) {
	rate := models.GlobalRateConfig{DollarsPerHour: 10, PriceRandomMinPercent: 95, PriceRandomMaxPercent: 105}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for h := 0; h < 48; h++ {
		got, err := SamplePrice(randomizedItem(1, 3), 5, start.Add(time.Duration(h)*time.Hour), rate)
		require.NoError(t, err)
		// 3 * [0.95, 1.05] contains only the integer 3
		assert.Equal(t, int64(3), got)
	}
}

func TestSamplePrice_FlatBand(t *testing.T) {
	rate := models.GlobalRateConfig{DollarsPerHour: 10, PriceRandomMinPercent: 100, PriceRandomMaxPercent: 100}
	got, err := SamplePrice(randomizedItem(1, 250), 5, time.Now(), rate)
	require.NoError(t, err)
	assert.Equal(t, int64(250), got)
}

func TestSamplePrice_InvalidBand(t *testing.T) {
	tests := []models.GlobalRateConfig{
		{DollarsPerHour: 10, PriceRandomMinPercent: 120, PriceRandomMaxPercent: 80},
		{DollarsPerHour: 10, PriceRandomMinPercent: -5, PriceRandomMaxPercent: 80},
	}
	for _, rate := range tests {
		_, err := SamplePrice(randomizedItem(1, 100), 1, time.Now(), rate)
		assert.ErrorIs(t, err, ErrInvalidCostBasis)
	}

	_, err := SamplePrice(models.ShopItem{BasePrice: -1}, 1, time.Now(), defaultRate)
	assert.ErrorIs(t, err, ErrInvalidCostBasis)
}

func TestMultiplierRange(t *testing.T) {
	for user := uint(0); user < 50; user++ {
		m := Multiplier(user, 11, int64(user)*7, 90, 110)
		assert.GreaterOrEqual(t, m, 0.9)
		assert.LessOrEqual(t, m, 1.1)
	}
}

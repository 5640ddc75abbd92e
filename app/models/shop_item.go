package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	COST_TYPE_FIXED  = "fixed"
	COST_TYPE_CONFIG = "config"
)

// Recognized ItemConfig keys.
const (
	ConfigKeyDollarsPerHour          = "dollars_per_hour"
	ConfigKeyHoursPerPercentProgress = "hours_equal_to_one_percent_progress"
)

// ItemConfig is the free-form pricing configuration of a shop item.
// Values arrive from the admin UI either as JSON numbers or numeric strings.
type ItemConfig map[string]any

// ShopItem is a purchasable item priced in shells. BasePrice is derived by the
// pricing engine for config items and for fixed items on rate changes.
type ShopItem struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Name                 string     `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=1,max=200"`
	USDCost              float64    `gorm:"type:double;not null;default:0" json:"usd_cost" validate:"gte=0"`
	CostType             string     `gorm:"type:varchar(16);not null;default:'fixed';index" json:"cost_type" validate:"oneof=fixed config"`
	Config               ItemConfig `gorm:"type:json;serializer:json" json:"config"`
	UseRandomizedPricing bool       `gorm:"default:false" json:"use_randomized_pricing"`
	BasePrice            int64      `gorm:"not null;default:0" json:"base_price" validate:"gte=0"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *ShopItem) Validate() error {
	v := validator.New()

	return v.Struct(i)
}

// IsFixed reports whether the item is priced from its USD cost and the global rate.
func (i *ShopItem) IsFixed() bool {
	return i.CostType == COST_TYPE_FIXED
}

// IsConfig reports whether the item price is driven by its config map.
func (i *ShopItem) IsConfig() bool {
	return i.CostType == COST_TYPE_CONFIG
}

// ConfigValue returns the raw config value for key, if any.
func (i *ShopItem) ConfigValue(key string) (any, bool) {
	if i.Config == nil {
		return nil, false
	}
	v, ok := i.Config[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

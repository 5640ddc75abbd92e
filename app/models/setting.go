package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, float
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting keys backing GlobalRateConfig.
const (
	SettingDollarsPerHour        = "dollars_per_hour"
	SettingPriceRandomMinPercent = "price_random_min_percent"
	SettingPriceRandomMaxPercent = "price_random_max_percent"
)

// GlobalRateConfig is the process-wide shell pricing configuration. It is
// loaded from the settings table on every pricing call and handed to the
// pricing engine explicitly.
type GlobalRateConfig struct {
	DollarsPerHour        float64 `json:"dollars_per_hour" validate:"gt=0"`
	PriceRandomMinPercent float64 `json:"price_random_min_percent" validate:"gte=0"`
	PriceRandomMaxPercent float64 `json:"price_random_max_percent" validate:"gte=0,gtefield=PriceRandomMinPercent"`
}

// DefaultRateConfig is used for keys that were never written to the settings table.
func DefaultRateConfig() GlobalRateConfig {
	return GlobalRateConfig{
		DollarsPerHour:        10,
		PriceRandomMinPercent: 90,
		PriceRandomMaxPercent: 110,
	}
}

// Validate validates the rate config
func (c *GlobalRateConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// ToSettingsMap converts the rate config into settings table rows.
func (c GlobalRateConfig) ToSettingsMap() map[string]string {
	return map[string]string{
		SettingDollarsPerHour:        strconv.FormatFloat(c.DollarsPerHour, 'f', -1, 64),
		SettingPriceRandomMinPercent: strconv.FormatFloat(c.PriceRandomMinPercent, 'f', -1, 64),
		SettingPriceRandomMaxPercent: strconv.FormatFloat(c.PriceRandomMaxPercent, 'f', -1, 64),
	}
}

// ApplySetting copies one stored setting onto the config. Unknown keys are ignored.
func (c *GlobalRateConfig) ApplySetting(s Setting) error {
	var target *float64
	switch s.Key {
	case SettingDollarsPerHour:
		target = &c.DollarsPerHour
	case SettingPriceRandomMinPercent:
		target = &c.PriceRandomMinPercent
	case SettingPriceRandomMaxPercent:
		target = &c.PriceRandomMaxPercent
	default:
		return nil
	}

	v, err := strconv.ParseFloat(s.Value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for setting %s: %w", s.Key, err)
	}
	*target = v
	return nil
}

// getSettingType returns the type of a setting based on its key
func getSettingType(key string) string {
	switch key {
	case SettingDollarsPerHour, SettingPriceRandomMinPercent, SettingPriceRandomMaxPercent:
		return "float"
	default:
		return "string"
	}
}

// NewSetting builds a settings row with its declared type.
func NewSetting(key, value string) Setting {
	return Setting{
		Key:   key,
		Value: value,
		Type:  getSettingType(key),
	}
}

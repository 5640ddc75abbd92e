package repository

import (
	"fmt"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/env"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db       *gorm.DB
	defaults models.GlobalRateConfig
}

// NewSettingRepository creates a new setting repository instance. defaults
// fill in rate keys that were never stored.
func NewSettingRepository(db *gorm.DB, defaults models.GlobalRateConfig) SettingRepository {
	return &settingRepository{db: db, defaults: defaults}
}

// RateDefaultsFromEnv returns the rate config used for keys missing from the
// settings table.
func RateDefaultsFromEnv() models.GlobalRateConfig {
	d := models.DefaultRateConfig()
	return models.GlobalRateConfig{
		DollarsPerHour:        env.GetEnvFloat("DEFAULT_DOLLARS_PER_HOUR", d.DollarsPerHour),
		PriceRandomMinPercent: env.GetEnvFloat("DEFAULT_PRICE_RANDOM_MIN_PERCENT", d.PriceRandomMinPercent),
		PriceRandomMaxPercent: env.GetEnvFloat("DEFAULT_PRICE_RANDOM_MAX_PERCENT", d.PriceRandomMaxPercent),
	}
}

// GetRateConfig reads the rate config straight from the settings table. It is
// never cached: every pricing call must see the latest admin change.
func (r *settingRepository) GetRateConfig() (models.GlobalRateConfig, error) {
	cfg := r.defaults

	var settings []models.Setting
	keys := []string{
		models.SettingDollarsPerHour,
		models.SettingPriceRandomMinPercent,
		models.SettingPriceRandomMaxPercent,
	}
	if err := r.db.Where("setting_key IN ?", keys).Find(&settings).Error; err != nil {
		return cfg, fmt.Errorf("failed to load rate config: %w", err)
	}

	for _, s := range settings {
		if err := cfg.ApplySetting(s); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// SaveRateConfig validates and stores all rate keys in one transaction
func (r *settingRepository) SaveRateConfig(cfg models.GlobalRateConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range cfg.ToSettingsMap() {
			setting := models.NewSetting(key, value)
			if err := upsertSetting(tx, &setting); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", key, err)
			}
		}
		return nil
	})
}

func upsertSetting(db *gorm.DB, setting *models.Setting) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(setting).Error
}

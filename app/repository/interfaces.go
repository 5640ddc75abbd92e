package repository

import (
	"context"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"gorm.io/gorm"
)

// ProjectRepository loads projects together with their time links
type ProjectRepository interface {
	GetByUserID(userID uint) ([]models.Project, error)
	GetByUserIDs(userIDs []uint) (map[uint][]models.Project, error)
}

// ApprovalRepository reads the approved hours written by the review subsystem
type ApprovalRepository interface {
	ApprovedHours(ctx context.Context, projectIDs []uint) (map[uint]float64, error)
}

// ShopItemRepository defines the interface for shop item operations
type ShopItemRepository interface {
	Create(item *models.ShopItem) error
	GetByID(id uint) (*models.ShopItem, error)
	List() ([]models.ShopItem, error)
	ListByCostType(costType string) ([]models.ShopItem, error)
	UpdateBasePrice(ctx context.Context, id uint, price int64) error
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	GetRateConfig() (models.GlobalRateConfig, error)
	SaveRateConfig(cfg models.GlobalRateConfig) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Project  ProjectRepository
	Approval ApprovalRepository
	ShopItem ShopItemRepository
	Setting  SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project:  NewProjectRepository(db),
		Approval: NewApprovalRepository(db),
		ShopItem: NewShopItemRepository(db),
		Setting:  NewSettingRepository(db, RateDefaultsFromEnv()),
	}
}

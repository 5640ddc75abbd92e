package repository

import (
	"context"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"gorm.io/gorm"
)

type shopItemRepository struct {
	db *gorm.DB
}

// NewShopItemRepository creates a new shop item repository instance
func NewShopItemRepository(db *gorm.DB) ShopItemRepository {
	return &shopItemRepository{db: db}
}

func (r *shopItemRepository) Create(item *models.ShopItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.db.Create(item).Error
}

func (r *shopItemRepository) GetByID(id uint) (*models.ShopItem, error) {
	var item models.ShopItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shopItemRepository) List() ([]models.ShopItem, error) {
	var items []models.ShopItem
	err := r.db.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *shopItemRepository) ListByCostType(costType string) ([]models.ShopItem, error) {
	var items []models.ShopItem
	err := r.db.Where("cost_type = ?", costType).Order("id ASC").Find(&items).Error
	return items, err
}

// UpdateBasePrice writes only the base_price column so concurrent admin edits
// of other fields are not overwritten.
func (r *shopItemRepository) UpdateBasePrice(ctx context.Context, id uint, price int64) error {
	return r.db.WithContext(ctx).
		Model(&models.ShopItem{}).
		Where("id = ?", id).
		Update("base_price", price).Error
}

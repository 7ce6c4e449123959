package repo

import (
	"context"

	"github.com/nkhangg/gostore/internal/models"
)

func (r *GormRepo) ListCartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) FindCartItem(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

func (r *GormRepo) FindCartItemByID(ctx context.Context, userID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

func (r *GormRepo) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, userID, itemID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCartItems removes the given lines and reports how many rows actually
// went away, so checkout can verify nobody raced it on the same cart.
func (r *GormRepo) DeleteCartItems(ctx context.Context, userID uint, itemIDs []uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, itemIDs).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

package repo

import (
	"context"

	"github.com/nkhangg/gostore/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProductRefs reports how many cart and order lines still reference the
// product. A non-zero count blocks catalog deletion.
func (r *GormRepo) CountProductRefs(ctx context.Context, id uint) (int64, error) {
	var inCarts int64
	if err := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("product_id = ?", id).
		Count(&inCarts).Error; err != nil {
		return 0, err
	}

	var inOrders int64
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("product_id = ?", id).
		Count(&inOrders).Error; err != nil {
		return 0, err
	}

	return inCarts + inOrders, nil
}

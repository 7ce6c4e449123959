package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nkhangg/gostore/internal/logging"
	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/repo"
)

// MaxLineQuantity caps a single cart line. Repeat adds are legitimate, an
// unbounded increment is not.
const MaxLineQuantity = 999

type CartService struct {
	Repo *repo.GormRepo
}

func NewCartService(r *repo.GormRepo) *CartService {
	return &CartService{Repo: r}
}

// GetCart returns the user's cart lines joined with product display data and
// the computed total. An empty cart is a valid cart.
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, float64, error) {
	items, err := s.Repo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Product.Price
	}
	return items, total, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_item")

	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("add_item_failed", "status", 404, "reason", "product not found")
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		l.Error("add_item_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	item, err := s.Repo.FindCartItem(ctx, userID, productID)
	switch {
	case err == nil:
		if item.Quantity+quantity > MaxLineQuantity {
			l.Warn("add_item_failed", "status", 400, "reason", "quantity cap exceeded")
			return nil, fmt.Errorf("%w: quantity cannot exceed %d", ErrValidation, MaxLineQuantity)
		}
		item.Quantity += quantity
		if err := s.Repo.SaveCartItem(ctx, item); err != nil {
			l.Error("add_item_failed", "status", 500, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	case errors.Is(err, repo.ErrNotFound):
		if quantity > MaxLineQuantity {
			l.Warn("add_item_failed", "status", 400, "reason", "quantity cap exceeded")
			return nil, fmt.Errorf("%w: quantity cannot exceed %d", ErrValidation, MaxLineQuantity)
		}
		item = &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.Repo.CreateCartItem(ctx, item); err != nil {
			l.Error("add_item_failed", "status", 500, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	default:
		l.Error("add_item_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	l.Info("add_item_success", "cart_item_id", item.ID, "quantity", item.Quantity)
	return item, nil
}

// UpdateQuantity sets the line to exactly the given quantity. Zero or less
// removes the line; the returned flag reports that case.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*models.CartItem, bool, error) {
	l := logging.FromContext(ctx).With("svc", "cart.update_quantity")

	item, err := s.Repo.FindCartItemByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("update_quantity_failed", "status", 404, "reason", "cart item not found")
			return nil, false, fmt.Errorf("%w: cart item not found", ErrNotFound)
		}
		l.Error("update_quantity_failed", "status", 500, "error", err)
		return nil, false, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if quantity <= 0 {
		if err := s.Repo.DeleteCartItem(ctx, userID, itemID); err != nil {
			l.Error("update_quantity_failed", "status", 500, "error", err)
			return nil, false, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		l.Info("update_quantity_removed", "cart_item_id", itemID)
		return nil, true, nil
	}

	if quantity > MaxLineQuantity {
		l.Warn("update_quantity_failed", "status", 400, "reason", "quantity cap exceeded")
		return nil, false, fmt.Errorf("%w: quantity cannot exceed %d", ErrValidation, MaxLineQuantity)
	}

	item.Quantity = quantity
	if err := s.Repo.SaveCartItem(ctx, item); err != nil {
		l.Error("update_quantity_failed", "status", 500, "error", err)
		return nil, false, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	l.Info("update_quantity_success", "cart_item_id", item.ID, "quantity", item.Quantity)
	return item, false, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove_item")

	if err := s.Repo.DeleteCartItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("remove_item_failed", "status", 404, "reason", "cart item not found")
			return fmt.Errorf("%w: cart item not found", ErrNotFound)
		}
		l.Error("remove_item_failed", "status", 500, "error", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	l.Info("remove_item_success", "cart_item_id", itemID)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nkhangg/gostore/internal/logging"
	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func NewOrderService(r *repo.GormRepo) *OrderService {
	return &OrderService{Repo: r}
}

// Checkout materializes the caller's cart into an order. The order insert,
// its line items and the cart deletion commit together or not at all. The
// delete must remove exactly the lines that were read; any other count means
// a concurrent checkout raced this one on the same cart, and the whole
// transaction rolls back.
func (s *OrderService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout")

	var order *models.Order
	err := s.Repo.WithinTx(ctx, func(tx *repo.GormRepo) error {
		cartItems, err := tx.ListCartItems(ctx, userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if len(cartItems) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrValidation)
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		itemIDs := make([]uint, 0, len(cartItems))
		for _, ci := range cartItems {
			total += float64(ci.Quantity) * ci.Product.Price
			orderItems = append(orderItems, models.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     ci.Product.Price,
			})
			itemIDs = append(itemIDs, ci.ID)
		}

		o := &models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
			Items:       orderItems,
		}
		if err := tx.CreateOrder(ctx, o); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		deleted, err := tx.DeleteCartItems(ctx, userID, itemIDs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if deleted != int64(len(itemIDs)) {
			return fmt.Errorf("%w: cart changed during checkout", ErrConflict)
		}

		order = o
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			l.Warn("checkout_failed", "status", 400, "reason", "cart is empty")
		case errors.Is(err, ErrConflict):
			l.Warn("checkout_failed", "status", 409, "reason", "cart changed during checkout")
		default:
			l.Error("checkout_failed", "status", 500, "error", err)
		}
		return nil, err
	}

	l.Info("checkout_success", "order_id", order.ID, "total", order.TotalAmount, "items", len(order.Items))
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.Repo.FindOrder(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return order, nil
}

package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhangg/gostore/internal/events"
	"github.com/nkhangg/gostore/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer Publisher
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.Checkout(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(userID), map[string]any{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), userID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/service"
)

type CartHandler struct {
	Svc *service.CartService
}

type addToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartLineResponse struct {
	ID       uint           `json:"id"`
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return err
	}

	items, total, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	resp := cartResponse{Items: make([]cartLineResponse, 0, len(items)), Total: total}
	for _, item := range items {
		resp.Items = append(resp.Items, cartLineResponse{
			ID:       item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, removed, err := h.Svc.UpdateQuantity(c.Request().Context(), userID, id, req.Quantity)
	if err != nil {
		return httpError(err)
	}
	if removed {
		return c.JSON(http.StatusOK, echo.Map{"deleted_item": id})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), userID, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_item": id})
}

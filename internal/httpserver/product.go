package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nkhangg/gostore/internal/events"
	"github.com/nkhangg/gostore/internal/logging"
	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/service"
)

// ProductIndexer is satisfied by es.ProductIndex. Index sync failures are
// logged, never surfaced; the database stays the source of truth.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductHandler struct {
	Svc      *service.CatalogService
	Producer Publisher
	Index    ProductIndexer
}

type updateProductRequest struct {
	ID uint `json:"id"`
	service.ProductInput
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.Svc.ListProducts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	h.syncIndex(c, *product)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID != id {
		return echo.NewHTTPError(http.StatusBadRequest, "product id mismatch")
	}

	product, err := h.Svc.UpdateProduct(c.Request().Context(), id, req.ProductInput)
	if err != nil {
		return httpError(err)
	}

	h.syncIndex(c, *product)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	if h.Index != nil {
		if err := h.Index.DeleteProduct(c.Request().Context(), id); err != nil {
			logging.FromContext(c.Request().Context()).Error("es index error", "product_id", id, "error", err)
		}
	}
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) syncIndex(c echo.Context, product models.Product) {
	if h.Index == nil {
		return
	}
	if err := h.Index.IndexProduct(c.Request().Context(), product); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "product_id", product.ID, "error", err)
	}
}

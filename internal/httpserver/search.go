package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkhangg/gostore/internal/logging"
	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/util"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type SearchHandler struct {
	Index Searcher
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	ctx := c.Request().Context()
	total, products, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search failed", "query", q, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

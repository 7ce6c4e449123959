package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nkhangg/gostore/internal/service"
)

// httpError maps service sentinels onto HTTP statuses. Internal failures get
// a generic message; the detail already went to the server log.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, clientMsg(err, service.ErrValidation))
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, clientMsg(err, service.ErrUnauthorized))
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, clientMsg(err, service.ErrNotFound))
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, clientMsg(err, service.ErrConflict))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func clientMsg(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

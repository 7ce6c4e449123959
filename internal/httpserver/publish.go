package httpserver

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkhangg/gostore/internal/logging"
)

// Publisher is satisfied by events.Producer. Publishing is fire-and-forget:
// a dead broker must never fail a request.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event map[string]any) error
}

func publish(c echo.Context, p Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	SearchHandler  *SearchHandler
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")
	requireAuth := JWTMiddleware(d.JWTSecret)

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, requireAuth)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, requireAuth)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, requireAuth)

	cart := api.Group("/cart", requireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveItem)

	orders := api.Group("/orders", requireAuth)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.POST("", d.OrderHandler.Checkout)
	orders.GET("/:id", d.OrderHandler.GetOrder)
}

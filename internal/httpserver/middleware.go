package httpserver

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		SigningKey:    secret,
		ContextKey:    "user",
		// A missing bearer token would otherwise come back as 400; auth
		// failures of any shape must read as 401.
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
		},
	})
}

// UserID extracts the caller identity from the verified token. The id always
// comes from the claim, never from anything the client put in the payload.
func UserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	return uint(sub), nil
}

package handlers

import (
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/labstack/echo/v4"
)

// getClaimsFromContext returns the JWT claims stored by the auth middleware,
// or nil for anonymous requests.
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}

// getUserIDFromContext returns the authenticated account ID, 0 if anonymous.
func getUserIDFromContext(c echo.Context) uint {
	if claims := getClaimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// isAJAX reports whether the request carries the XMLHttpRequest marker the
// browser-side form code sets.
func isAJAX(c echo.Context) bool {
	return c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest"
}

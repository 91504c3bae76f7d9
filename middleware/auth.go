package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyClaims is the context key for the validated token claims
	ContextKeyClaims = "claims"
)

// Endpoint permission names. A token grants a permission through either a
// role or a scope of the same name.
const (
	PermLocationsRead   = "locations.read"
	PermLocationsWrite  = "locations.write"
	PermLocationsExport = "locations.export"
	PermFacilitiesWrite = "facilities.write"
	PermProvision       = "provisioning.execute"
)

// Claims carried by the bearer token
type Claims struct {
	Roles []string `json:"roles"`
	Scope string   `json:"scp"`
	jwt.RegisteredClaims
}

// RequireAuth is middleware that validates the bearer token on the request
func RequireAuth(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.String(http.StatusUnauthorized, "Authorization header with bearer token is required")
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := new(Claims)
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				return c.String(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// RequirePermission is middleware that requires the token to grant at least
// one of the listed permissions, via either a role or a scope.
func RequirePermission(perms ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return c.String(http.StatusUnauthorized, "Authorization header with bearer token is required")
			}

			granted := make(map[string]bool)
			for _, role := range claims.Roles {
				granted[role] = true
			}
			for _, scope := range strings.Fields(claims.Scope) {
				granted[scope] = true
			}

			for _, perm := range perms {
				if granted[perm] {
					return next(c)
				}
			}

			return c.String(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// GetClaims retrieves the validated token claims from context
func GetClaims(c echo.Context) *Claims {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

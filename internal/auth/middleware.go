package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// Gate guards routes behind bearer-token authentication.
type Gate struct {
	tokens *TokenService
}

func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Required rejects requests without a valid bearer token.
func (g *Gate) Required(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error":   "Access token required",
				"message": "Please provide a valid Bearer token in the Authorization header",
			})
		}

		claims, err := g.tokens.Verify(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error":   "Invalid or expired token",
				"message": "The provided token is invalid or has expired",
			})
		}

		c.Set(identityKey, claims)
		return next(c)
	}
}

// Optional attaches the identity when a valid token is present and
// lets the request through unauthenticated otherwise.
func (g *Gate) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token != "" {
			if claims, err := g.tokens.Verify(token); err == nil {
				c.Set(identityKey, claims)
			}
		}
		return next(c)
	}
}

// Identity returns the claims attached by the gate, if any.
func Identity(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(identityKey).(*Claims)
	return claims, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

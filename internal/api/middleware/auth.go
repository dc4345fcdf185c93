package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcircle/social-api/internal/core/ports"
)

// HeaderToken is the request header carrying the bearer token.
const HeaderToken = "x-auth-token"

// ContextUserID is the echo context key holding the authenticated user id.
const ContextUserID = "user_id"

// Auth verifies the x-auth-token header and injects the caller's user id
// into the request context. Requests without a valid token never reach the
// wrapped handler.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderToken)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied!")
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid!")
			}

			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

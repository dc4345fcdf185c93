package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcircle/social-api/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the Auth middleware. A missing
// id means the middleware never ran for this route; fail closed with 401
// before any service call.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied!")
	}
	return userID, nil
}

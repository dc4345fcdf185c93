package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devcircle/social-api/internal/api/handler"
	"github.com/devcircle/social-api/internal/core/domain"
)

// errorItem is a single entry in the error envelope.
type errorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// errorResponse is the canonical envelope for all 4xx responses:
// {"errors":[{"msg": ...}, ...]}.
type errorResponse struct {
	Errors []errorItem `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures as one envelope entry per violated field.
//   - Maps known domain errors to their status codes and client messages.
//   - Logs unexpected errors internally and collapses them to a plain-text
//     500 "Server Error!" with no detail leaked to the caller.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve handler.ValidationErrors
		if errors.As(err, &ve) {
			items := make([]errorItem, 0, len(ve))
			for _, fe := range ve {
				items = append(items, errorItem{Msg: fe.Message, Param: fe.Field})
			}
			_ = c.JSON(http.StatusBadRequest, errorResponse{Errors: items})
			return
		}

		if code, msg, ok := resolveError(err); ok {
			_ = c.JSON(code, errorResponse{Errors: []errorItem{{Msg: msg}}})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.String(http.StatusInternalServerError, "Server Error!")
	}
}

// resolveError maps expected errors to deterministic status codes and the
// messages the client contract promises.
func resolveError(err error) (int, string, bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User already exists", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials!!!", true
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Token is not valid!", true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User Not Found!", true
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "Post Not Found!", true
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "Comment Doesn't Exist!", true
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusUnauthorized, "User Not Authorized!", true
	case errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusBadRequest, "Post Already Liked!", true
	case errors.Is(err, domain.ErrNotLiked):
		return http.StatusBadRequest, "Post Hasn't Been Liked!", true
	}

	return 0, "", false
}

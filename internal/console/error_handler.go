// Package console serves the local web console: a thin routed shell over the
// API client whose navigation guards mirror the session's role rules.
package console

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/service"
)

// errorResponse is the canonical error envelope for all console errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends expired sessions back to the login view.
//   - Propagates upstream API failures with their original status.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) {
			_ = c.Redirect(http.StatusFound, service.LoginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Upstream API failure: keep the server's status and message. Status 0
	// is a timeout, presented as a gateway timeout.
	var re *domain.RequestError
	if errors.As(err, &re) {
		if re.Status == 0 {
			return http.StatusGatewayTimeout, re.Message
		}
		return re.Status, re.Message
	}

	var ne *domain.NetworkError
	if errors.As(err, &ne) {
		return http.StatusBadGateway, "parking service unreachable"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

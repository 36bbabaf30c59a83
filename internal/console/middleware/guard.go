// Package middleware holds the console's route middleware.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/core/service"
)

// Guard applies the navigation rules for route against the live session
// state: redirect instead of render whenever the visitor does not belong
// here. The guarded view never executes on a redirect.
func Guard(session ports.Session, route service.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := service.CheckRoute(route, session.State())
			if !decision.Allow {
				return c.Redirect(http.StatusFound, decision.RedirectTo)
			}
			return next(c)
		}
	}
}

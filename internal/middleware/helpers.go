package middleware

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LayoutInjector is a function that copies layout-relevant data from the
// Echo context into Go's context.Context so templ components can read it.
// Registered once at startup in app.RegisterRoutes.
//
// This callback pattern keeps the middleware package free of template types.
var LayoutInjector func(echo.Context, context.Context) context.Context

// IsHTMX returns true if the current request was initiated by HTMX and is
// NOT a boosted navigation. Boosted requests behave like normal page
// navigations and expect full page responses. Handlers use this to decide
// whether to return a fragment or a full page.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true" &&
		c.Request().Header.Get("HX-Boosted") != "true"
}

// Render writes a templ component to the response with the given status
// code. Before rendering, it runs the LayoutInjector (if registered) to
// copy per-request data into the Go context for templates to access.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	ctx := c.Request().Context()

	if LayoutInjector != nil {
		ctx = LayoutInjector(c, ctx)
	}

	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(statusCode)
	return component.Render(ctx, c.Response().Writer)
}

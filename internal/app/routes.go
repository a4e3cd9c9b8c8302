package app

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pigmentlab/swatch/internal/middleware"
	"github.com/pigmentlab/swatch/internal/plugins/palettes"
	"github.com/pigmentlab/swatch/internal/templates/layouts"
	"github.com/pigmentlab/swatch/internal/templates/pages"
)

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to the palette plugin's route registration.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Copy per-request data (CSRF token, active path) into the Go context
	// so templ components can read it during rendering.
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
		ctx = layouts.SetActivePath(ctx, c.Request().URL.Path)
		return ctx
	}

	// --- Public Routes ---

	// Landing page.
	e.GET("/", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.Landing())
	})

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", a.healthz)

	// --- Palette Plugin ---
	repo := palettes.NewPaletteRepository(a.DB)
	service := palettes.NewPaletteService(repo, a.Redis, a.Config.Cache.TTL)
	palettes.RegisterRoutes(e, palettes.NewHandler(service))

	// --- Embed API ---
	api := e.Group("/api/v1")
	api.GET("/swatch", renderSwatchAPI)
	api.GET("/palettes/:slug/grid", func(c echo.Context) error {
		grid, err := service.RenderGrid(c.Request().Context(), c.Param("slug"), palettes.OptionsFromQuery(c))
		if err != nil {
			return err
		}
		return c.HTML(http.StatusOK, grid)
	})
}

// healthz reports whether the DB and Redis are reachable.
func (a *App) healthz(c echo.Context) error {
	ctx := c.Request().Context()

	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if err := a.DB.PingContext(ctx); err != nil {
		status["status"] = "degraded"
		status["mariadb"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		status["status"] = "degraded"
		status["redis"] = err.Error()
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, status)
}

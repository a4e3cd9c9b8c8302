package palettes

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pigmentlab/swatch/internal/middleware"
)

// RegisterRoutes sets up palette routes on the Echo instance. Mutating
// routes share a per-IP rate limit so one client can't churn the database
// and render cache.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/palettes", h.List)
	e.GET("/palettes/:slug", h.View)
	e.GET("/palettes/:slug/grid", h.Grid)

	limited := middleware.RateLimit(30, time.Minute)
	e.POST("/palettes", h.Create, limited)
	e.POST("/palettes/:slug/colors", h.AddColor, limited)
	e.DELETE("/palettes/:slug/colors/:id", h.RemoveColor, limited)
	e.POST("/palettes/:slug/delete", h.Delete, limited)
}

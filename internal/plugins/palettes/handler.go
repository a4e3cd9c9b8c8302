package palettes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pigmentlab/swatch"
	"github.com/pigmentlab/swatch/internal/middleware"
)

// Handler handles HTTP requests for palette pages and fragments.
type Handler struct {
	service PaletteService
}

// NewHandler creates a new palettes handler.
func NewHandler(service PaletteService) *Handler {
	return &Handler{service: service}
}

// OptionsFromQuery builds swatch rendering options from request query
// parameters (size, mode, border). Unknown values pass through untouched;
// the renderer's own defaulting and edge-case rules apply.
func OptionsFromQuery(c echo.Context) *swatch.Options {
	opts := &swatch.Options{
		Mode: swatch.Mode(c.QueryParam("mode")),
		Size: swatch.Size(c.QueryParam("size")),
	}
	if raw := c.QueryParam("border"); raw != "" {
		if border, err := strconv.ParseBool(raw); err == nil {
			opts.ShowBorder = swatch.Bool(border)
		}
	}
	return opts
}

// List renders the palette index (GET /palettes).
func (h *Handler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, PaletteListPage(list))
}

// View renders one palette with its swatch grid (GET /palettes/:slug).
func (h *Handler) View(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")
	opts := OptionsFromQuery(c)

	p, err := h.service.Get(ctx, slug)
	if err != nil {
		return err
	}
	grid, err := h.service.RenderGrid(ctx, slug, opts)
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, PaletteDetailPage(p, grid, opts))
}

// Grid returns just the swatch-grid fragment for HTMX swaps
// (GET /palettes/:slug/grid).
func (h *Handler) Grid(c echo.Context) error {
	grid, err := h.service.RenderGrid(c.Request().Context(), c.Param("slug"), OptionsFromQuery(c))
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, GridFragment(grid))
}

// Create stores a new palette from the index form (POST /palettes).
// The colors textarea holds one hex value per line.
func (h *Handler) Create(c echo.Context) error {
	in := CreatePaletteInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		AccentHex:   c.FormValue("accent_hex"),
	}
	for _, line := range strings.Split(c.FormValue("colors"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			in.Colors = append(in.Colors, line)
		}
	}

	p, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return redirect(c, "/palettes/"+p.Slug)
}

// AddColor appends a color (POST /palettes/:slug/colors).
func (h *Handler) AddColor(c echo.Context) error {
	slug := c.Param("slug")
	in := AddColorInput{
		HexValue: c.FormValue("hex_value"),
		Label:    c.FormValue("label"),
	}

	if _, err := h.service.AddColor(c.Request().Context(), slug, in); err != nil {
		return err
	}
	return redirect(c, "/palettes/"+slug)
}

// RemoveColor deletes one color (DELETE /palettes/:slug/colors/:id).
func (h *Handler) RemoveColor(c echo.Context) error {
	slug := c.Param("slug")
	if err := h.service.RemoveColor(c.Request().Context(), slug, c.Param("id")); err != nil {
		return err
	}
	return redirect(c, "/palettes/"+slug)
}

// Delete removes a palette (POST /palettes/:slug/delete).
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return redirect(c, "/palettes")
}

// redirect sends the browser (or HTMX) to target after a mutation. HTMX
// requests get an HX-Redirect header so the client performs a full
// navigation instead of swapping the redirect response into a fragment.
func redirect(c echo.Context, target string) error {
	if middleware.IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

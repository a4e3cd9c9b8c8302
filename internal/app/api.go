// api.go implements the stateless embed API: external sites fetch a single
// rendered swatch as an HTML fragment or as JSON with the computed facts.
package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pigmentlab/swatch"
	"github.com/pigmentlab/swatch/hexcolor"
	"github.com/pigmentlab/swatch/internal/apperror"
	"github.com/pigmentlab/swatch/internal/plugins/palettes"
)

// swatchResponse is the JSON shape for GET /api/v1/swatch?format=json.
type swatchResponse struct {
	Hex       string       `json:"hex"`
	RGB       hexcolor.RGB `json:"rgb"`
	Luminance float64      `json:"luminance"`
	TextColor string       `json:"text_color"`
	HTML      string       `json:"html"`
}

// renderSwatchAPI handles GET /api/v1/swatch. Query parameters: hex
// (required), mode, size, border, and format ("html" default, or "json").
//
// Unlike the permissive library renderers, the API rejects invalid hex with
// 422 — an embedding site calling with garbage wants to know, and the
// plain-text fallback would hand it an unescaped echo of its input.
func renderSwatchAPI(c echo.Context) error {
	hex := c.QueryParam("hex")
	if hex == "" {
		return apperror.NewBadRequest("missing required query parameter: hex")
	}
	if !hexcolor.IsValidHex(hex) {
		return apperror.NewValidation("hex must be a 3- or 6-digit hex color, with or without #")
	}

	opts := palettes.OptionsFromQuery(c)
	html := swatch.ColoredHexHTML(hex, opts)

	if c.QueryParam("format") == "json" {
		normalized := hexcolor.Normalize(hex)
		return c.JSON(http.StatusOK, swatchResponse{
			Hex:       normalized,
			RGB:       hexcolor.HexToRGB(normalized),
			Luminance: hexcolor.Luminance(normalized),
			TextColor: hexcolor.ContrastColor(normalized),
			HTML:      html,
		})
	}

	return c.HTML(http.StatusOK, html)
}

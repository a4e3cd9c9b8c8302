// Package pages holds the shared full-page templ components: the landing
// page and the error page. Plugin-specific pages live next to their
// handlers.
package pages

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pigmentlab/swatch"
	"github.com/pigmentlab/swatch/internal/templates/layouts"
)

// demoColors are rendered on the landing page to show the helper at work.
// A deliberately invalid value sits at the end to demonstrate the
// plain-text fallback.
var demoColors = []string{"#FF5733", "#112233", "#00ff00", "#abc", "not-a-color"}

// Landing renders the landing page: a short intro and a strip of demo
// swatches in each size.
func Landing() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<h1>Swatch</h1>`+
				`<p>Render any hex color as a labeled swatch with automatically chosen `+
				`black or white text. Invalid values degrade to plain text instead of failing.</p>`); err != nil {
			return err
		}

		for _, size := range []swatch.Size{swatch.SizeSmall, swatch.SizeMedium, swatch.SizeLarge} {
			if _, err := io.WriteString(w, `<div class="demo-row">`); err != nil {
				return err
			}
			for _, hex := range demoColors {
				if err := swatch.ColoredHex(hex, &swatch.Options{Size: size}).Render(ctx, w); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</div>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w,
			`<p><a href="/palettes">Browse palettes</a> or embed swatches via `+
				`<code>GET /api/v1/swatch?hex=ff5733</code>.</p>`)
		return err
	})
	return layouts.Base("Home", body)
}

// ErrorPage renders a full error page for the given status code and
// user-safe message.
func ErrorPage(code int, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<div class="error-page"><h1>`+strconv.Itoa(code)+`</h1>`+
				`<p class="error-status">`+templ.EscapeString(http.StatusText(code))+`</p>`+
				`<p>`+templ.EscapeString(message)+`</p>`+
				`<p><a href="/">Back to home</a></p></div>`)
		return err
	})
	return layouts.Base(http.StatusText(code), body)
}

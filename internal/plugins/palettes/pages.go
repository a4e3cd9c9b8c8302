// pages.go holds the templ components for palette views. Grid markup
// arrives pre-rendered from the service (it may come from the Redis cache)
// and is spliced in with templ.Raw; everything user-typed is escaped.
package palettes

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pigmentlab/swatch"
	"github.com/pigmentlab/swatch/internal/templates/layouts"
)

// PaletteListPage renders the palette index with the create form.
func PaletteListPage(list []Palette) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Palettes</h1><ul class="palette-list">`); err != nil {
			return err
		}

		for _, p := range list {
			if _, err := io.WriteString(w, `<li class="palette-item">`); err != nil {
				return err
			}
			// Accent badge: a small swatch of the palette's accent color.
			badge := swatch.ColoredHex(p.AccentHex, &swatch.Options{Size: swatch.SizeSmall})
			if err := badge.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w,
				` <a href="/palettes/`+p.Slug+`">`+templ.EscapeString(p.Name)+`</a>`+
					` <span class="count">`+strconv.Itoa(p.ColorCount)+` colors</span>`); err != nil {
				return err
			}
			if p.Builtin {
				if _, err := io.WriteString(w, ` <span class="tag">built-in</span>`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</li>`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</ul>`); err != nil {
			return err
		}
		return createForm().Render(ctx, w)
	})
	return layouts.Base("Palettes", body)
}

// createForm renders the new-palette form. Colors are entered one per line.
func createForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<h2>New palette</h2><form method="post" action="/palettes" class="palette-form">`); err != nil {
			return err
		}
		if err := layouts.CSRFField().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`<label>Name <input type="text" name="name" required maxlength="100"></label>`+
				`<label>Description <input type="text" name="description" maxlength="500"></label>`+
				`<label>Accent color <input type="text" name="accent_hex" placeholder="#ff5733 (optional)"></label>`+
				`<label>Colors, one per line <textarea name="colors" rows="6" required></textarea></label>`+
				`<button type="submit">Create</button></form>`)
		return err
	})
}

// PaletteDetailPage renders one palette: meta, the rendered swatch grid,
// per-color management, and the add-color form. gridHTML is trusted markup
// produced by the service's renderer.
func PaletteDetailPage(p *Palette, gridHTML string, opts *swatch.Options) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<h1>`+templ.EscapeString(p.Name)+`</h1>`+
				`<p>`+templ.EscapeString(p.Description)+`</p>`); err != nil {
			return err
		}

		if err := sizePicker(p.Slug, opts).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div id="grid">`); err != nil {
			return err
		}
		if err := templ.Raw(gridHTML).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if p.Builtin {
			_, err := io.WriteString(w, `<p class="tag">Built-in palettes are read-only.</p>`)
			return err
		}

		// Color management: labels and remove buttons, then the add form.
		if _, err := io.WriteString(w, `<ul class="color-list">`); err != nil {
			return err
		}
		for _, c := range p.Colors {
			if _, err := io.WriteString(w, `<li>`); err != nil {
				return err
			}
			if err := swatch.ColoredHex(c.HexValue, &swatch.Options{Size: swatch.SizeSmall}).Render(ctx, w); err != nil {
				return err
			}
			label := c.Label
			if label == "" {
				label = c.HexValue
			}
			if _, err := io.WriteString(w,
				` <span>`+templ.EscapeString(label)+`</span>`+
					` <button hx-delete="/palettes/`+p.Slug+`/colors/`+c.ID+`"`+
					` hx-target="body" hx-push-url="false">remove</button></li>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w,
			`<form method="post" action="/palettes/`+p.Slug+`/colors" class="palette-form">`); err != nil {
			return err
		}
		if err := layouts.CSRFField().Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<label>Hex <input type="text" name="hex_value" required></label>`+
				`<label>Label <input type="text" name="label" maxlength="100"></label>`+
				`<button type="submit">Add color</button></form>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w,
			`<form method="post" action="/palettes/`+p.Slug+`/delete">`); err != nil {
			return err
		}
		if err := layouts.CSRFField().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<button type="submit" class="danger">Delete palette</button></form>`)
		return err
	})
	return layouts.Base(p.Name, body)
}

// sizePicker renders HTMX links that reload the grid fragment in each size.
func sizePicker(slug string, opts *swatch.Options) templ.Component {
	current := swatch.SizeMedium
	if opts != nil && opts.Size != "" {
		current = opts.Size
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="size-picker">`); err != nil {
			return err
		}
		for _, size := range []swatch.Size{swatch.SizeSmall, swatch.SizeMedium, swatch.SizeLarge} {
			class := "size-link"
			if size == current {
				class = "size-link active"
			}
			if _, err := io.WriteString(w,
				`<a class="`+class+`" hx-get="/palettes/`+slug+`/grid?size=`+string(size)+`"`+
					` hx-target="#grid" href="/palettes/`+slug+`?size=`+string(size)+`">`+
					string(size)+`</a>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// GridFragment wraps pre-rendered grid markup for HTMX swaps.
func GridFragment(gridHTML string) templ.Component {
	return templ.Raw(gridHTML)
}

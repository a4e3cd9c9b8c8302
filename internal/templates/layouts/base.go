// base.go defines the page shell every full-page component renders inside.
// Components are authored directly against the templ runtime API; dynamic
// text always goes through templ.EscapeString.
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// navLink is one entry in the top navigation.
type navLink struct {
	href  string
	label string
}

var navLinks = []navLink{
	{"/", "Home"},
	{"/palettes", "Palettes"},
}

// Base wraps body in the full HTML document: head, navigation, flash
// banners. title is the page title suffix.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// hx-headers on body is inherited by every htmx request, so
		// hx-delete buttons and fragment swaps carry the CSRF token.
		if _, err := io.WriteString(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>`+templ.EscapeString(title)+` · Swatch</title>`+
				`<link rel="stylesheet" href="/static/app.css">`+
				`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`+
				`</head><body hx-headers='{"X-CSRF-Token": "`+templ.EscapeString(GetCSRFToken(ctx))+`"}'>`); err != nil {
			return err
		}

		if err := nav(ctx, w); err != nil {
			return err
		}
		if err := flashes(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="container">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// nav writes the top navigation, highlighting the active path.
func nav(ctx context.Context, w io.Writer) error {
	active := GetActivePath(ctx)

	if _, err := io.WriteString(w, `<nav class="topnav"><span class="brand">Swatch</span>`); err != nil {
		return err
	}
	for _, link := range navLinks {
		class := "nav-link"
		if link.href == active {
			class = "nav-link active"
		}
		if _, err := io.WriteString(w,
			`<a class="`+class+`" href="`+link.href+`">`+templ.EscapeString(link.label)+`</a>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</nav>`)
	return err
}

// flashes writes one-shot success/error banners when set.
func flashes(ctx context.Context, w io.Writer) error {
	if msg := GetFlashSuccess(ctx); msg != "" {
		if _, err := io.WriteString(w,
			`<div class="flash flash-success">`+templ.EscapeString(msg)+`</div>`); err != nil {
			return err
		}
	}
	if msg := GetFlashError(ctx); msg != "" {
		if _, err := io.WriteString(w,
			`<div class="flash flash-error">`+templ.EscapeString(msg)+`</div>`); err != nil {
			return err
		}
	}
	return nil
}

// CSRFField renders the hidden form field carrying the CSRF token.
func CSRFField() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<input type="hidden" name="csrf_token" value="`+templ.EscapeString(GetCSRFToken(ctx))+`">`)
		return err
	})
}

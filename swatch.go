// Package swatch renders hexadecimal color values as small HTML swatches:
// an element whose background is the color itself, labeled with its own hex
// code, with black or white text picked automatically for legibility.
//
// Two rendering backends share one styling computation so they can never
// drift: ColoredHex produces a templ.Component for handler/templ pipelines,
// and ColoredHexHTML produces the identical markup as a plain string for
// string templating and external embedding.
//
// Rendering never fails. Invalid input degrades to a plain unstyled element
// carrying the input text verbatim — see ColoredHexHTML for the escaping
// caveat that comes with that contract.
package swatch

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pigmentlab/swatch/hexcolor"
)

// Mode selects the element kind of a rendered swatch.
type Mode string

const (
	// ModeInline renders a <span>. This is the default.
	ModeInline Mode = "inline"

	// ModeBlock renders a <div> container.
	ModeBlock Mode = "block"
)

// Size selects one of three fixed size-class bundles.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// sizeClasses is the fixed lookup table from Size to CSS class. A Size
// outside the table yields no size class at all; the value is passed
// through unvalidated.
var sizeClasses = map[Size]string{
	SizeSmall:  "colored-hex-sm",
	SizeMedium: "colored-hex-md",
	SizeLarge:  "colored-hex-lg",
}

// baseClass is present on every styled swatch. The class naming scheme is
// part of the rendering contract for stylesheets targeting swatch output.
const baseClass = "colored-hex"

// Border colors keyed to the computed text color: black text gets a faint
// black border, white text a faint white one, so the outline always leans
// toward the opposite extreme of the background.
const (
	borderForBlackText = "1px solid rgba(0, 0, 0, 0.2)"
	borderForWhiteText = "1px solid rgba(255, 255, 255, 0.2)"
)

// Options configures swatch rendering. The zero value (and a nil *Options)
// means: inline, medium, border shown, no extra classes.
type Options struct {
	// Mode selects the element kind: ModeInline (default) or ModeBlock.
	Mode Mode

	// Size selects the size class bundle. Defaults to SizeMedium.
	Size Size

	// ShowBorder toggles the 1px contrast-keyed border. Nil means the
	// default, true. Use Bool to set it inline.
	ShowBorder *bool

	// ClassName is appended verbatim to the element's class list.
	ClassName string
}

// Bool returns a pointer to v, for setting Options.ShowBorder inline.
func Bool(v bool) *bool {
	return &v
}

// resolved is Options with every default applied.
type resolved struct {
	mode       Mode
	size       Size
	showBorder bool
	className  string
}

// resolve applies defaults to opts. A nil opts behaves like &Options{}.
func resolve(opts *Options) resolved {
	r := resolved{
		mode:       ModeInline,
		size:       SizeMedium,
		showBorder: true,
	}
	if opts == nil {
		return r
	}
	if opts.Mode != "" {
		r.mode = opts.Mode
	}
	if opts.Size != "" {
		r.size = opts.Size
	}
	if opts.ShowBorder != nil {
		r.showBorder = *opts.ShowBorder
	}
	r.className = opts.ClassName
	return r
}

// facts is the styling computation shared by both renderers: everything
// needed to emit a swatch, with no markup decisions left to the backends.
type facts struct {
	// valid is false when the input failed hex validation. All other
	// fields except tag and label are empty then.
	valid bool

	// tag is the element name: "span" or "div".
	tag string

	// label is the element text content. The normalized hex for valid
	// input, the original input verbatim otherwise.
	label string

	// class is the full space-joined class attribute value, or "".
	class string

	// style is the full inline style attribute value, or "".
	style string
}

// computeFacts validates the input and resolves every styling decision.
func computeFacts(value string, opts *Options) facts {
	o := resolve(opts)

	tag := "span"
	if o.mode == ModeBlock {
		tag = "div"
	}

	if !hexcolor.IsValidHex(value) {
		// Plain text-only element, no color styling, input verbatim.
		return facts{tag: tag, label: value}
	}

	hex := hexcolor.Normalize(value)
	text := hexcolor.ContrastColor(hex)

	classes := []string{baseClass}
	if sc, ok := sizeClasses[o.size]; ok {
		classes = append(classes, sc)
	}
	if o.className != "" {
		classes = append(classes, o.className)
	}

	style := "background-color: " + hex + "; color: " + text
	if o.showBorder {
		if text == hexcolor.Black {
			style += "; border: " + borderForBlackText
		} else {
			style += "; border: " + borderForWhiteText
		}
	}

	return facts{
		valid: true,
		tag:   tag,
		label: hex,
		class: strings.Join(classes, " "),
		style: style,
	}
}

// render serializes facts to markup.
func (f facts) render() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(f.tag)
	if f.class != "" {
		b.WriteString(` class="`)
		b.WriteString(f.class)
		b.WriteString(`"`)
	}
	if f.style != "" {
		b.WriteString(` style="`)
		b.WriteString(f.style)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(f.label)
	b.WriteString("</")
	b.WriteString(f.tag)
	b.WriteString(">")
	return b.String()
}

// ColoredHex renders a hex value as a templ component. Valid input becomes
// a styled swatch: background set to the (#-normalized) value, text color
// chosen by hexcolor.ContrastColor, the hex code as the label, and an
// optional contrast-keyed border. Invalid input becomes a plain element
// containing the input text with no styling.
//
// The component writes byte-identical markup to ColoredHexHTML.
func ColoredHex(value string, opts *Options) templ.Component {
	f := computeFacts(value, opts)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, f.render())
		return err
	})
}

// ColoredHexHTML renders the same markup as ColoredHex, as a string, for
// environments that splice HTML themselves.
//
// Neither the input value nor Options.ClassName is HTML-escaped: valid hex
// values cannot carry markup, but an invalid value is echoed back verbatim
// inside the element. Callers embedding untrusted input must validate with
// hexcolor.IsValidHex or sanitize upstream — this is a real injection
// surface otherwise.
func ColoredHexHTML(value string, opts *Options) string {
	return computeFacts(value, opts).render()
}

// Package palettes manages named collections of hex colors and renders
// them as swatch grids using the root swatch package. User palettes are
// stored in MariaDB; built-in palettes come from internal/builtin and are
// read-only. Rendered grid fragments are cached in Redis.
package palettes

import "time"

// --- Database Models ---

// Palette represents a row in the palettes table, or a built-in palette
// projected into the same shape (Builtin=true, zero timestamps).
type Palette struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AccentHex   string    `json:"accent_hex"`
	Builtin     bool      `json:"builtin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Colors is populated by FindBySlug; List leaves it nil and fills
	// ColorCount instead.
	Colors []Color `json:"colors,omitempty"`

	// ColorCount is the number of colors in the palette, for list views.
	ColorCount int `json:"color_count"`
}

// Color represents a row in the palette_colors table. HexValue is always
// stored #-normalized and 6-digit.
type Color struct {
	ID        string    `json:"id"`
	PaletteID string    `json:"palette_id"`
	HexValue  string    `json:"hex_value"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Service DTOs ---

// CreatePaletteInput carries the form fields for creating a palette.
// Colors may arrive in any accepted hex syntax; the service validates and
// normalizes before storage.
type CreatePaletteInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	AccentHex   string   `json:"accent_hex"`
	Colors      []string `json:"colors"`
}

// AddColorInput carries the form fields for adding one color to a palette.
type AddColorInput struct {
	HexValue string `json:"hex_value"`
	Label    string `json:"label"`
}

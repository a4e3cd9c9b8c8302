// Package builtin defines the built-in palette registry. Built-in palettes
// are read-only color collections shipped with the app; they render exactly
// like stored palettes but never touch the database.
package builtin

// Palette holds metadata and colors for one built-in palette.
type Palette struct {
	// Slug is the unique machine-readable identifier (e.g., "grayscale").
	Slug string

	// Name is the human-readable display name.
	Name string

	// Description is a short summary of the palette.
	Description string

	// AccentHex is the hex color used for the palette's list badge.
	AccentHex string

	// Colors are the palette's hex values in display order.
	Colors []string
}

// Registry returns the list of all built-in palettes. This is the canonical
// source of truth; the seed data is code, not SQL, so slugs here must never
// collide with user-created palette slugs (the service checks on create).
func Registry() []Palette {
	return []Palette{
		{
			Slug:        "grayscale",
			Name:        "Grayscale",
			Description: "Eleven even steps from black to white. Handy for checking the text-contrast threshold.",
			AccentHex:   "#808080",
			Colors: []string{
				"#000000", "#1a1a1a", "#333333", "#4d4d4d", "#666666",
				"#808080", "#999999", "#b3b3b3", "#cccccc", "#e6e6e6",
				"#ffffff",
			},
		},
		{
			Slug:        "primaries",
			Name:        "Primaries",
			Description: "Pure RGB primaries and their pairwise mixes.",
			AccentHex:   "#ff0000",
			Colors: []string{
				"#ff0000", "#00ff00", "#0000ff",
				"#ffff00", "#00ffff", "#ff00ff",
			},
		},
		{
			Slug:        "terracotta",
			Name:        "Terracotta",
			Description: "Warm earth tones around the swatch default demo color.",
			AccentHex:   "#ff5733",
			Colors: []string{
				"#ff5733", "#c70039", "#900c3f", "#581845",
				"#ffc300", "#daf7a6",
			},
		},
	}
}

// Find returns the built-in palette for a given slug, or nil if not found.
func Find(slug string) *Palette {
	for _, p := range Registry() {
		if p.Slug == slug {
			return &p
		}
	}
	return nil
}

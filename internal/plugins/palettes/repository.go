package palettes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pigmentlab/swatch/internal/apperror"
)

// PaletteRepository defines the data access contract for stored palettes.
// Built-in palettes never pass through here.
type PaletteRepository interface {
	// Create inserts a palette and its colors in one transaction.
	Create(ctx context.Context, p *Palette) error

	// FindBySlug returns a palette with its colors loaded. Returns NotFound
	// if the slug does not exist.
	FindBySlug(ctx context.Context, slug string) (*Palette, error)

	// List returns all palettes ordered by name, with ColorCount populated
	// and Colors left nil.
	List(ctx context.Context) ([]Palette, error)

	// SlugExists reports whether a palette with the given slug is stored.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Delete removes a palette; its colors cascade.
	Delete(ctx context.Context, id string) error

	// AddColor appends a color to a palette at the next sort position.
	AddColor(ctx context.Context, c *Color) error

	// RemoveColor deletes a single color. Returns NotFound if the color is
	// not part of the palette.
	RemoveColor(ctx context.Context, paletteID, colorID string) error
}

// paletteRepository implements PaletteRepository using MariaDB.
type paletteRepository struct {
	db *sql.DB
}

// NewPaletteRepository creates a new palette repository backed by MariaDB.
func NewPaletteRepository(db *sql.DB) PaletteRepository {
	return &paletteRepository{db: db}
}

// Create inserts the palette row and all color rows in one transaction so
// a half-created palette can never be observed.
func (r *paletteRepository) Create(ctx context.Context, p *Palette) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("beginning palette insert: %w", err))
	}
	defer tx.Rollback()

	const insertPalette = `INSERT INTO palettes (id, slug, name, description, accent_hex)
	                       VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertPalette,
		p.ID, p.Slug, p.Name, p.Description, p.AccentHex); err != nil {
		return apperror.NewInternal(fmt.Errorf("inserting palette %q: %w", p.Slug, err))
	}

	const insertColor = `INSERT INTO palette_colors (id, palette_id, hex_value, label, sort_order)
	                     VALUES (?, ?, ?, ?, ?)`
	for _, c := range p.Colors {
		if _, err := tx.ExecContext(ctx, insertColor,
			c.ID, p.ID, c.HexValue, c.Label, c.SortOrder); err != nil {
			return apperror.NewInternal(fmt.Errorf("inserting color %q: %w", c.HexValue, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.NewInternal(fmt.Errorf("committing palette insert: %w", err))
	}
	return nil
}

// FindBySlug loads a palette and its colors.
func (r *paletteRepository) FindBySlug(ctx context.Context, slug string) (*Palette, error) {
	const query = `SELECT id, slug, name, description, accent_hex, created_at, updated_at
	               FROM palettes WHERE slug = ?`

	var p Palette
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.AccentHex, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound(fmt.Sprintf("palette %q not found", slug))
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("querying palette %q: %w", slug, err))
	}

	const colorQuery = `SELECT id, palette_id, hex_value, label, sort_order, created_at
	                    FROM palette_colors WHERE palette_id = ? ORDER BY sort_order, created_at`
	rows, err := r.db.QueryContext(ctx, colorQuery, p.ID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("querying colors for %q: %w", slug, err))
	}
	defer rows.Close()

	for rows.Next() {
		var c Color
		if err := rows.Scan(&c.ID, &c.PaletteID, &c.HexValue, &c.Label, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("scanning color row: %w", err))
		}
		p.Colors = append(p.Colors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("iterating color rows: %w", err))
	}

	p.ColorCount = len(p.Colors)
	return &p, nil
}

// List returns palette summaries ordered by name.
func (r *paletteRepository) List(ctx context.Context) ([]Palette, error) {
	const query = `SELECT p.id, p.slug, p.name, p.description, p.accent_hex,
	                      p.created_at, p.updated_at, COUNT(c.id)
	               FROM palettes p
	               LEFT JOIN palette_colors c ON c.palette_id = p.id
	               GROUP BY p.id
	               ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing palettes: %w", err))
	}
	defer rows.Close()

	var result []Palette
	for rows.Next() {
		var p Palette
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.AccentHex,
			&p.CreatedAt, &p.UpdatedAt, &p.ColorCount); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("scanning palette row: %w", err))
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("iterating palette rows: %w", err))
	}
	return result, nil
}

// SlugExists reports whether a stored palette already claims the slug.
func (r *paletteRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM palettes WHERE slug = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, apperror.NewInternal(fmt.Errorf("checking slug %q: %w", slug, err))
	}
	return exists, nil
}

// Delete removes a palette row; palette_colors cascade via FK.
func (r *paletteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM palettes WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting palette %s: %w", id, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("palette not found")
	}
	return nil
}

// AddColor appends a color using the current max sort_order + 1.
func (r *paletteRepository) AddColor(ctx context.Context, c *Color) error {
	const query = `INSERT INTO palette_colors (id, palette_id, hex_value, label, sort_order)
	               SELECT ?, ?, ?, ?, COALESCE(MAX(sort_order) + 1, 0)
	               FROM palette_colors WHERE palette_id = ?`

	if _, err := r.db.ExecContext(ctx, query,
		c.ID, c.PaletteID, c.HexValue, c.Label, c.PaletteID); err != nil {
		return apperror.NewInternal(fmt.Errorf("adding color %q: %w", c.HexValue, err))
	}
	return nil
}

// RemoveColor deletes a single color scoped to its palette.
func (r *paletteRepository) RemoveColor(ctx context.Context, paletteID, colorID string) error {
	const query = `DELETE FROM palette_colors WHERE id = ? AND palette_id = ?`

	res, err := r.db.ExecContext(ctx, query, colorID, paletteID)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("removing color %s: %w", colorID, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("color not found in palette")
	}
	return nil
}

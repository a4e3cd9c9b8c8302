package palettes

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pigmentlab/swatch"
	"github.com/pigmentlab/swatch/hexcolor"
	"github.com/pigmentlab/swatch/internal/apperror"
	"github.com/pigmentlab/swatch/internal/builtin"
	"github.com/pigmentlab/swatch/internal/sanitize"
)

// PaletteService defines the business logic contract for palettes.
type PaletteService interface {
	// List returns built-in palettes followed by stored palettes.
	List(ctx context.Context) ([]Palette, error)

	// Get returns one palette with colors loaded. Built-in slugs win over
	// stored ones.
	Get(ctx context.Context, slug string) (*Palette, error)

	// Create validates, sanitizes, and stores a new palette.
	Create(ctx context.Context, in CreatePaletteInput) (*Palette, error)

	// Delete removes a stored palette. Built-in palettes are read-only.
	Delete(ctx context.Context, slug string) error

	// AddColor appends a validated color to a stored palette.
	AddColor(ctx context.Context, slug string, in AddColorInput) (*Color, error)

	// RemoveColor deletes one color from a stored palette.
	RemoveColor(ctx context.Context, slug, colorID string) error

	// RenderGrid returns the palette's swatch-grid markup, colors sorted
	// dark to light, rendered with the given options. Results are cached
	// in Redis until a mutation invalidates them.
	RenderGrid(ctx context.Context, slug string, opts *swatch.Options) (string, error)
}

// paletteService implements PaletteService.
type paletteService struct {
	repo     PaletteRepository
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewPaletteService creates the palette service. rdb may be nil, in which
// case grid rendering is uncached.
func NewPaletteService(repo PaletteRepository, rdb *redis.Client, cacheTTL time.Duration) PaletteService {
	return &paletteService{repo: repo, redis: rdb, cacheTTL: cacheTTL}
}

// gridKeyPrefix namespaces cached grid fragments in Redis.
const gridKeyPrefix = "palette:grid:"

// maxColorsPerPalette bounds form submissions; a palette is a hand-picked
// collection, not a gradient dump.
const maxColorsPerPalette = 64

// List merges built-in and stored palettes, built-ins first.
func (s *paletteService) List(ctx context.Context) ([]Palette, error) {
	result := make([]Palette, 0, 8)
	for _, b := range builtin.Registry() {
		result = append(result, builtinAsPalette(b, false))
	}

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return append(result, stored...), nil
}

// Get resolves a slug against the built-in registry first, then storage.
func (s *paletteService) Get(ctx context.Context, slug string) (*Palette, error) {
	if b := builtin.Find(slug); b != nil {
		p := builtinAsPalette(*b, true)
		return &p, nil
	}
	return s.repo.FindBySlug(ctx, slug)
}

// Create validates input, derives a slug, and stores the palette.
func (s *paletteService) Create(ctx context.Context, in CreatePaletteInput) (*Palette, error) {
	name := sanitize.Text(in.Name)
	if name == "" {
		return nil, apperror.NewValidation("palette name is required")
	}
	description := sanitize.Text(in.Description)

	slug := Slugify(name)
	if slug == "" {
		return nil, apperror.NewValidation("palette name must contain letters or digits")
	}
	if builtin.Find(slug) != nil {
		return nil, apperror.NewConflict(fmt.Sprintf("%q is a built-in palette", slug))
	}
	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflict(fmt.Sprintf("a palette named %q already exists", slug))
	}

	if len(in.Colors) == 0 {
		return nil, apperror.NewValidation("a palette needs at least one color")
	}
	if len(in.Colors) > maxColorsPerPalette {
		return nil, apperror.NewValidation(fmt.Sprintf("a palette can hold at most %d colors", maxColorsPerPalette))
	}

	now := time.Now()
	p := &Palette{
		ID:          uuid.NewString(),
		Slug:        slug,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for i, raw := range in.Colors {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if !hexcolor.IsValidHex(value) {
			return nil, apperror.NewValidation(fmt.Sprintf("%q is not a valid hex color", value))
		}
		p.Colors = append(p.Colors, Color{
			ID:        uuid.NewString(),
			PaletteID: p.ID,
			HexValue:  storedHex(value),
			SortOrder: i,
			CreatedAt: now,
		})
	}
	if len(p.Colors) == 0 {
		return nil, apperror.NewValidation("a palette needs at least one color")
	}
	p.ColorCount = len(p.Colors)

	// Accent: explicit value wins, otherwise derive one from the slug so
	// every palette gets a stable badge color.
	accent := strings.TrimSpace(in.AccentHex)
	switch {
	case accent == "":
		p.AccentHex = hexcolor.ForString(slug)
	case hexcolor.IsValidHex(accent):
		p.AccentHex = storedHex(accent)
	default:
		return nil, apperror.NewValidation(fmt.Sprintf("%q is not a valid accent color", accent))
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	slog.Info("palette created",
		slog.String("slug", p.Slug),
		slog.Int("colors", p.ColorCount),
	)
	return p, nil
}

// Delete removes a stored palette and drops its cached grids.
func (s *paletteService) Delete(ctx context.Context, slug string) error {
	if builtin.Find(slug) != nil {
		return apperror.NewForbidden("built-in palettes are read-only")
	}

	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	s.invalidateGrids(ctx, slug)
	slog.Info("palette deleted", slog.String("slug", slug))
	return nil
}

// AddColor validates and appends one color, then invalidates cached grids.
func (s *paletteService) AddColor(ctx context.Context, slug string, in AddColorInput) (*Color, error) {
	if builtin.Find(slug) != nil {
		return nil, apperror.NewForbidden("built-in palettes are read-only")
	}

	value := strings.TrimSpace(in.HexValue)
	if !hexcolor.IsValidHex(value) {
		return nil, apperror.NewValidation(fmt.Sprintf("%q is not a valid hex color", value))
	}

	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(p.Colors) >= maxColorsPerPalette {
		return nil, apperror.NewValidation(fmt.Sprintf("a palette can hold at most %d colors", maxColorsPerPalette))
	}

	c := &Color{
		ID:        uuid.NewString(),
		PaletteID: p.ID,
		HexValue:  storedHex(value),
		Label:     sanitize.Text(in.Label),
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddColor(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateGrids(ctx, slug)
	return c, nil
}

// RemoveColor deletes one color and invalidates cached grids.
func (s *paletteService) RemoveColor(ctx context.Context, slug, colorID string) error {
	if builtin.Find(slug) != nil {
		return apperror.NewForbidden("built-in palettes are read-only")
	}

	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.RemoveColor(ctx, p.ID, colorID); err != nil {
		return err
	}

	s.invalidateGrids(ctx, slug)
	return nil
}

// RenderGrid renders (or serves from cache) the palette's swatch grid.
func (s *paletteService) RenderGrid(ctx context.Context, slug string, opts *swatch.Options) (string, error) {
	key := gridCacheKey(slug, opts)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, key).Result()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			// Cache trouble should never break rendering.
			slog.Warn("grid cache read failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	p, err := s.Get(ctx, slug)
	if err != nil {
		return "", err
	}

	html := renderGrid(p, opts)

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, html, s.cacheTTL).Err(); err != nil {
			slog.Warn("grid cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return html, nil
}

// renderGrid builds the swatch-grid markup for a palette: colors sorted by
// relative luminance (dark to light) and rendered through the root package.
func renderGrid(p *Palette, opts *swatch.Options) string {
	colors := make([]Color, len(p.Colors))
	copy(colors, p.Colors)
	sort.SliceStable(colors, func(i, j int) bool {
		return hexcolor.Luminance(colors[i].HexValue) < hexcolor.Luminance(colors[j].HexValue)
	})

	var b strings.Builder
	b.WriteString(`<div class="swatch-grid" data-palette="` + p.Slug + `">`)
	for _, c := range colors {
		b.WriteString(swatch.ColoredHexHTML(c.HexValue, opts))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// gridCacheKey builds a stable Redis key from the slug and the option
// fields that affect markup. ClassName is deliberately excluded: the web
// UI and embed API never pass one, and caller classes would explode the
// key space.
func gridCacheKey(slug string, opts *swatch.Options) string {
	mode, size, border := swatch.ModeInline, swatch.SizeMedium, true
	if opts != nil {
		if opts.Mode != "" {
			mode = opts.Mode
		}
		if opts.Size != "" {
			size = opts.Size
		}
		if opts.ShowBorder != nil {
			border = *opts.ShowBorder
		}
	}
	return fmt.Sprintf("%s%s:%s:%s:%t", gridKeyPrefix, slug, mode, size, border)
}

// invalidateGrids drops every cached grid for a slug, across all option
// combinations.
func (s *paletteService) invalidateGrids(ctx context.Context, slug string) {
	if s.redis == nil {
		return
	}

	iter := s.redis.Scan(ctx, 0, gridKeyPrefix+slug+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("grid cache invalidation failed",
				slog.String("key", iter.Val()), slog.Any("error", err))
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("grid cache scan failed", slog.String("slug", slug), slog.Any("error", err))
	}
}

// builtinAsPalette projects a built-in palette into the shared model.
func builtinAsPalette(b builtin.Palette, withColors bool) Palette {
	p := Palette{
		Slug:        b.Slug,
		Name:        b.Name,
		Description: b.Description,
		AccentHex:   b.AccentHex,
		Builtin:     true,
		ColorCount:  len(b.Colors),
	}
	if withColors {
		for i, hex := range b.Colors {
			p.Colors = append(p.Colors, Color{HexValue: hex, SortOrder: i})
		}
	}
	return p
}

// storedHex is the canonical storage form: #-prefixed, 6-digit, original
// casing preserved the way the renderer preserves it.
func storedHex(value string) string {
	return hexcolor.Normalize(expandForStorage(value))
}

// expandForStorage widens 3-digit shorthand so CHAR(7) columns always hold
// the full form.
func expandForStorage(value string) string {
	h := strings.TrimPrefix(value, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	return h
}

// slugPattern strips everything that isn't a lowercase word character or dash.
var slugPattern = regexp.MustCompile(`[^a-z0-9-]+`)

// dashRuns collapses consecutive dashes left over from stripping.
var dashRuns = regexp.MustCompile(`-{2,}`)

// Slugify derives a URL-safe slug from a palette name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugPattern.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}

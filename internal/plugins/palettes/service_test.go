package palettes

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pigmentlab/swatch"
	"github.com/pigmentlab/swatch/hexcolor"
	"github.com/pigmentlab/swatch/internal/apperror"
	"github.com/pigmentlab/swatch/internal/builtin"
)

// --- Mock Repository ---

// mockPaletteRepo implements PaletteRepository for testing.
type mockPaletteRepo struct {
	createFn      func(ctx context.Context, p *Palette) error
	findBySlugFn  func(ctx context.Context, slug string) (*Palette, error)
	listFn        func(ctx context.Context) ([]Palette, error)
	slugExistsFn  func(ctx context.Context, slug string) (bool, error)
	deleteFn      func(ctx context.Context, id string) error
	addColorFn    func(ctx context.Context, c *Color) error
	removeColorFn func(ctx context.Context, paletteID, colorID string) error
}

func (m *mockPaletteRepo) Create(ctx context.Context, p *Palette) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPaletteRepo) FindBySlug(ctx context.Context, slug string) (*Palette, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, apperror.NewNotFound("palette not found")
}

func (m *mockPaletteRepo) List(ctx context.Context) ([]Palette, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPaletteRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *mockPaletteRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPaletteRepo) AddColor(ctx context.Context, c *Color) error {
	if m.addColorFn != nil {
		return m.addColorFn(ctx, c)
	}
	return nil
}

func (m *mockPaletteRepo) RemoveColor(ctx context.Context, paletteID, colorID string) error {
	if m.removeColorFn != nil {
		return m.removeColorFn(ctx, paletteID, colorID)
	}
	return nil
}

// --- Test Helpers ---

// newTestService creates a paletteService with a mock repo and no Redis.
func newTestService(repo *mockPaletteRepo) *paletteService {
	return &paletteService{repo: repo, cacheTTL: time.Minute}
}

// newCachedTestService creates a paletteService backed by miniredis.
func newCachedTestService(t *testing.T, repo *mockPaletteRepo) (*paletteService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &paletteService{repo: repo, redis: client, cacheTTL: time.Minute}, mr
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	var created *Palette
	repo := &mockPaletteRepo{
		createFn: func(ctx context.Context, p *Palette) error {
			created = p
			return nil
		},
	}

	svc := newTestService(repo)
	p, err := svc.Create(context.Background(), CreatePaletteInput{
		Name:        "Sunset Tones",
		Description: "Warm evening colors",
		Colors:      []string{"ff5733", "#C70039", "#abc"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("repository Create was not called")
	}

	if p.Slug != "sunset-tones" {
		t.Errorf("slug = %q, want %q", p.Slug, "sunset-tones")
	}
	if p.ID == "" {
		t.Error("expected a generated palette ID")
	}
	if p.ColorCount != 3 {
		t.Errorf("ColorCount = %d, want 3", p.ColorCount)
	}

	// Colors are stored #-normalized and shorthand-expanded.
	wantColors := []string{"#ff5733", "#C70039", "#aabbcc"}
	for i, c := range p.Colors {
		if c.HexValue != wantColors[i] {
			t.Errorf("color %d = %q, want %q", i, c.HexValue, wantColors[i])
		}
		if c.PaletteID != p.ID {
			t.Errorf("color %d palette ID = %q, want %q", i, c.PaletteID, p.ID)
		}
	}

	// No accent given: one is derived from the slug, and it must be valid.
	if !hexcolor.IsValidHex(p.AccentHex) {
		t.Errorf("derived accent %q is not a valid hex color", p.AccentHex)
	}
	if p.AccentHex != hexcolor.ForString("sunset-tones") {
		t.Errorf("accent %q not derived from slug", p.AccentHex)
	}
}

func TestCreate_SanitizesNameAndDescription(t *testing.T) {
	repo := &mockPaletteRepo{}
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), CreatePaletteInput{
		Name:        "<b>Bold</b> Name<script>alert(1)</script>",
		Description: "desc with <img src=x onerror=alert(1)> markup",
		Colors:      []string{"#123456"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if strings.ContainsAny(p.Name, "<>") {
		t.Errorf("name was not sanitized: %q", p.Name)
	}
	if strings.ContainsAny(p.Description, "<>") {
		t.Errorf("description was not sanitized: %q", p.Description)
	}
	if p.Slug != "bold-name" {
		t.Errorf("slug = %q, want %q", p.Slug, "bold-name")
	}
}

func TestCreate_InvalidColor(t *testing.T) {
	svc := newTestService(&mockPaletteRepo{})
	_, err := svc.Create(context.Background(), CreatePaletteInput{
		Name:   "Broken",
		Colors: []string{"#123456", "tomato"},
	})
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestCreate_InvalidAccent(t *testing.T) {
	svc := newTestService(&mockPaletteRepo{})
	_, err := svc.Create(context.Background(), CreatePaletteInput{
		Name:      "Broken",
		AccentHex: "#12345",
		Colors:    []string{"#123456"},
	})
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestCreate_MissingName(t *testing.T) {
	svc := newTestService(&mockPaletteRepo{})
	_, err := svc.Create(context.Background(), CreatePaletteInput{
		Colors: []string{"#123456"},
	})
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestCreate_NoColors(t *testing.T) {
	svc := newTestService(&mockPaletteRepo{})
	_, err := svc.Create(context.Background(), CreatePaletteInput{Name: "Empty"})
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestCreate_BuiltinSlugConflict(t *testing.T) {
	svc := newTestService(&mockPaletteRepo{})
	_, err := svc.Create(context.Background(), CreatePaletteInput{
		Name:   "Grayscale",
		Colors: []string{"#123456"},
	})
	assertAppError(t, err, http.StatusConflict)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := &mockPaletteRepo{
		slugExistsFn: func(ctx context.Context, slug string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(repo)
	_, err := svc.Create(context.Background(), CreatePaletteInput{
		Name:   "Taken",
		Colors: []string{"#123456"},
	})
	assertAppError(t, err, http.StatusConflict)
}

// --- Get / List Tests ---

func TestGet_BuiltinWins(t *testing.T) {
	repo := &mockPaletteRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*Palette, error) {
			t.Error("repository should not be consulted for a built-in slug")
			return nil, apperror.NewNotFound("nope")
		},
	}
	svc := newTestService(repo)

	p, err := svc.Get(context.Background(), "grayscale")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !p.Builtin {
		t.Error("expected a built-in palette")
	}
	if len(p.Colors) == 0 {
		t.Error("built-in palette should have colors loaded")
	}
}

func TestList_BuiltinsFirst(t *testing.T) {
	repo := &mockPaletteRepo{
		listFn: func(ctx context.Context) ([]Palette, error) {
			return []Palette{{Slug: "mine", Name: "Mine"}}, nil
		},
	}
	svc := newTestService(repo)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	builtins := len(builtin.Registry())
	if len(list) != builtins+1 {
		t.Fatalf("list length = %d, want %d", len(list), builtins+1)
	}
	for i := 0; i < builtins; i++ {
		if !list[i].Builtin {
			t.Errorf("entry %d should be built-in", i)
		}
	}
	if list[builtins].Slug != "mine" {
		t.Errorf("stored palette should follow built-ins, got %q", list[builtins].Slug)
	}
}

// --- Read-Only Built-in Tests ---

func TestMutations_BuiltinReadOnly(t *testing.T) {
	svc := newTestService(&mockPaletteRepo{})
	ctx := context.Background()

	if _, err := svc.AddColor(ctx, "grayscale", AddColorInput{HexValue: "#123456"}); err == nil {
		t.Error("AddColor on built-in should fail")
	} else {
		assertAppError(t, err, http.StatusForbidden)
	}

	assertAppError(t, svc.RemoveColor(ctx, "grayscale", "some-id"), http.StatusForbidden)
	assertAppError(t, svc.Delete(ctx, "grayscale"), http.StatusForbidden)
}

// --- Rendering Tests ---

// storedPalette returns a mock repo serving one fixed palette.
func storedPalette(colors ...string) *mockPaletteRepo {
	return &mockPaletteRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*Palette, error) {
			p := &Palette{ID: "p1", Slug: slug, Name: "Stored"}
			for i, hex := range colors {
				p.Colors = append(p.Colors, Color{ID: "c" + hex, PaletteID: "p1", HexValue: hex, SortOrder: i})
			}
			p.ColorCount = len(p.Colors)
			return p, nil
		},
	}
}

func TestRenderGrid_SortsDarkToLight(t *testing.T) {
	svc := newTestService(storedPalette("#ffffff", "#000000", "#808080"))

	grid, err := svc.RenderGrid(context.Background(), "stored", nil)
	if err != nil {
		t.Fatalf("RenderGrid returned error: %v", err)
	}

	black := strings.Index(grid, "#000000")
	gray := strings.Index(grid, "#808080")
	white := strings.Index(grid, "#ffffff")
	if black == -1 || gray == -1 || white == -1 {
		t.Fatalf("grid missing colors: %s", grid)
	}
	if !(black < gray && gray < white) {
		t.Errorf("colors not sorted dark to light: %s", grid)
	}
}

func TestRenderGrid_AppliesOptions(t *testing.T) {
	svc := newTestService(storedPalette("#336699"))

	grid, err := svc.RenderGrid(context.Background(), "stored", &swatch.Options{
		Mode: swatch.ModeBlock,
		Size: swatch.SizeLarge,
	})
	if err != nil {
		t.Fatalf("RenderGrid returned error: %v", err)
	}
	if !strings.Contains(grid, "<div class=\"colored-hex colored-hex-lg\"") {
		t.Errorf("options not applied to swatches: %s", grid)
	}
}

func TestRenderGrid_NotFound(t *testing.T) {
	svc := newTestService(&mockPaletteRepo{})
	_, err := svc.RenderGrid(context.Background(), "missing", nil)
	assertAppError(t, err, http.StatusNotFound)
}

func TestRenderGrid_Caches(t *testing.T) {
	calls := 0
	repo := storedPalette("#123456")
	inner := repo.findBySlugFn
	repo.findBySlugFn = func(ctx context.Context, slug string) (*Palette, error) {
		calls++
		return inner(ctx, slug)
	}

	svc, mr := newCachedTestService(t, repo)
	ctx := context.Background()

	first, err := svc.RenderGrid(ctx, "stored", nil)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := svc.RenderGrid(ctx, "stored", nil)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if first != second {
		t.Error("cached render differs from fresh render")
	}
	if calls != 1 {
		t.Errorf("repository consulted %d times, want 1 (second hit should come from cache)", calls)
	}
	if len(mr.Keys()) == 0 {
		t.Error("expected a cached grid key in redis")
	}
}

func TestRenderGrid_OptionsGetSeparateCacheEntries(t *testing.T) {
	svc, mr := newCachedTestService(t, storedPalette("#123456"))
	ctx := context.Background()

	if _, err := svc.RenderGrid(ctx, "stored", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := svc.RenderGrid(ctx, "stored", &swatch.Options{Size: swatch.SizeLarge}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := len(mr.Keys()); got != 2 {
		t.Errorf("cache holds %d keys, want 2", got)
	}
}

func TestAddColor_InvalidatesCache(t *testing.T) {
	svc, mr := newCachedTestService(t, storedPalette("#123456"))
	ctx := context.Background()

	if _, err := svc.RenderGrid(ctx, "stored", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(mr.Keys()) == 0 {
		t.Fatal("expected cached grid before mutation")
	}

	if _, err := svc.AddColor(ctx, "stored", AddColorInput{HexValue: "#abcdef"}); err != nil {
		t.Fatalf("AddColor: %v", err)
	}

	if got := len(mr.Keys()); got != 0 {
		t.Errorf("cache holds %d keys after mutation, want 0", got)
	}
}

func TestAddColor_StoresNormalizedHex(t *testing.T) {
	var added *Color
	repo := storedPalette("#123456")
	repo.addColorFn = func(ctx context.Context, c *Color) error {
		added = c
		return nil
	}
	svc := newTestService(repo)

	if _, err := svc.AddColor(context.Background(), "stored", AddColorInput{HexValue: "abc", Label: " Sky "}); err != nil {
		t.Fatalf("AddColor: %v", err)
	}
	if added == nil {
		t.Fatal("repository AddColor was not called")
	}
	if added.HexValue != "#aabbcc" {
		t.Errorf("stored hex = %q, want %q", added.HexValue, "#aabbcc")
	}
	if added.Label != "Sky" {
		t.Errorf("label = %q, want trimmed %q", added.Label, "Sky")
	}
}

// --- Helper Tests ---

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Sunset Tones", "sunset-tones"},
		{"punctuation stripped", "Art déco!", "art-dco"},
		{"dash runs collapsed", "a  --  b", "a-b"},
		{"trimmed", " spaced ", "spaced"},
		{"empty", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGridCacheKey_DistinguishesOptions(t *testing.T) {
	base := gridCacheKey("p", nil)
	if gridCacheKey("p", &swatch.Options{}) != base {
		t.Error("zero options should share the default key")
	}
	if gridCacheKey("p", &swatch.Options{Size: swatch.SizeLarge}) == base {
		t.Error("size must vary the key")
	}
	if gridCacheKey("p", &swatch.Options{ShowBorder: swatch.Bool(false)}) == base {
		t.Error("border must vary the key")
	}
	if gridCacheKey("q", nil) == base {
		t.Error("slug must vary the key")
	}
}

package hexcolor

import (
	"math"
	"testing"
)

func TestIsValidHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"six digits with hash", "#ff5733", true},
		{"six digits without hash", "ff5733", true},
		{"six digits uppercase", "#FF5733", true},
		{"six digits mixed case", "#Ff5733", true},
		{"three digit shorthand with hash", "#abc", true},
		{"three digit shorthand without hash", "abc", true},
		{"empty string", "", false},
		{"hash only", "#", false},
		{"four digits", "#abcd", false},
		{"five digits", "#abcde", false},
		{"seven digits", "#1234567", false},
		{"eight digits", "#12345678", false},
		{"non-hex characters", "#gg5733", false},
		{"trailing garbage", "#ff5733x", false},
		{"leading whitespace", " #ff5733", false},
		{"css named color", "tomato", false},
		{"double hash", "##ff5733", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidHex(tt.input); got != tt.want {
				t.Errorf("IsValidHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RGB
	}{
		{"with hash", "#FF5733", RGB{255, 87, 51}},
		{"without hash", "FF5733", RGB{255, 87, 51}},
		{"lowercase", "#ff5733", RGB{255, 87, 51}},
		{"white", "#ffffff", RGB{255, 255, 255}},
		{"black", "#000000", RGB{0, 0, 0}},
		{"shorthand expanded", "#abc", RGB{170, 187, 204}},
		{"shorthand white", "fff", RGB{255, 255, 255}},
		{"malformed length falls back to black", "#ff57", RGB{0, 0, 0}},
		{"non-hex falls back to black", "#zzzzzz", RGB{0, 0, 0}},
		{"empty falls back to black", "", RGB{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexToRGB(tt.input); got != tt.want {
				t.Errorf("HexToRGB(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{255, 87, 51}).Hex(); got != "#ff5733" {
		t.Errorf("Hex() = %q, want %q", got, "#ff5733")
	}
}

func TestLuminance_Extremes(t *testing.T) {
	const tolerance = 1e-9

	if got := Luminance("#ffffff"); math.Abs(got-1.0) > tolerance {
		t.Errorf("Luminance(white) = %v, want 1.0", got)
	}
	if got := Luminance("#000000"); got != 0.0 {
		t.Errorf("Luminance(black) = %v, want 0.0", got)
	}
}

func TestLuminance_Range(t *testing.T) {
	inputs := []string{
		"#ff5733", "#808080", "#0000ff", "#00ff00", "#ff0000",
		"#abc", "123456", "not-a-color",
	}
	for _, in := range inputs {
		l := Luminance(in)
		if l < 0 || l > 1 {
			t.Errorf("Luminance(%q) = %v, outside [0,1]", in, l)
		}
	}
}

func TestLuminance_GreenOutweighsBlue(t *testing.T) {
	// BT.709 weights green far above blue at equal channel intensity.
	if g, b := Luminance("#00ff00"), Luminance("#0000ff"); g <= b {
		t.Errorf("Luminance(green) = %v should exceed Luminance(blue) = %v", g, b)
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"white background gets black text", "#ffffff", Black},
		{"black background gets white text", "#000000", White},
		// (255*299 + 87*587 + 51*114) / 1000 ≈ 133.1 > 128.
		{"orange is just past the threshold", "#FF5733", Black},
		{"dark navy", "#112233", White},
		{"pure green reads bright", "#00ff00", Black},
		{"pure blue reads dark", "#0000ff", White},
		{"malformed input degrades to black background", "nope", White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContrastColor(tt.input)
			if got != tt.want {
				t.Errorf("ContrastColor(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got != Black && got != White {
				t.Errorf("ContrastColor(%q) = %q, not one of the two fixed tokens", tt.input, got)
			}
		})
	}
}

func TestContrastColor_Deterministic(t *testing.T) {
	inputs := []string{"#ff5733", "#808080", "", "abc", "#000000"}
	for _, in := range inputs {
		if first, second := ContrastColor(in), ContrastColor(in); first != second {
			t.Errorf("ContrastColor(%q) not deterministic: %q then %q", in, first, second)
		}
	}
}

func TestForString(t *testing.T) {
	a := ForString("default")
	b := ForString("default")
	if a != b {
		t.Errorf("ForString not deterministic: %q then %q", a, b)
	}
	if !IsValidHex(a) {
		t.Errorf("ForString produced invalid hex %q", a)
	}

	// Different seeds should generally land on different hues.
	if ForString("alpha") == ForString("omega") {
		t.Error("distinct seeds produced identical colors")
	}
}

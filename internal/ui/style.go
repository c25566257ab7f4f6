package ui

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Rule is a single CSS rule: one selector and its property values (raw strings).
type Rule struct {
	Selector string            // ".panel" or "#menu"
	Props    map[string]string // "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for layout and drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Right >= 0 anchors the node to the right screen edge instead.
type ComputedStyle struct {
	Background color.RGBA
	Hover      color.RGBA
	Color      color.RGBA
	Accent     color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	Right      int32 // -1 = not set
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32 // text offset from node bounds
	FontSize   int32
	// Positioned is set when the rule declares left, top or right.
	Positioned bool
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:    color.RGBA{255, 255, 255, 255},
		Accent:   color.RGBA{47, 161, 214, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		Right:    -1,
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: defaultFontSize,
	}
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA or a CSS color name.
// Returns opaque black and false on parse error.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	black := color.RGBA{0, 0, 0, 255}
	if s == "" {
		return black, false
	}
	if s == "transparent" {
		return color.RGBA{}, true
	}
	if s[0] != '#' {
		c, ok := colornames.Map[s]
		if !ok {
			return black, false
		}
		return c, true
	}
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return black, false
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return black, false
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, alpha}, true
}

// Lighten blends c towards white by t in [0,1], in Lab space so hover shades stay even.
func Lighten(c color.RGBA, t float64) color.RGBA {
	base, ok := colorful.MakeColor(color.RGBA{c.R, c.G, c.B, 255})
	if !ok {
		return c
	}
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return color.RGBA{r, g, b, c.A}
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	hoverSet := false
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "hover-background":
			if c, ok := ParseColor(v); ok {
				out.Hover = c
				hoverSet = true
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "accent-color":
			if c, ok := ParseColor(v); ok {
				out.Accent = c
			}
		case "border", "border-color":
			if c, ok := ParseColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			out.Positioned = true
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			out.Positioned = true
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "right":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Right = n
				out.Positioned = true
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	if !hoverSet {
		out.Hover = Lighten(out.Background, 0.15)
	}
	return out
}

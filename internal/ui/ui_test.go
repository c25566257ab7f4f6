package ui

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSS = `
/* panel chrome */
.panel { background: #1f1f1f; width: 245px; right: 15px; top: 0; }
.row, .button { height: 24; color: #ebebeb; }
#giftbox { color: gold; }
@media print { .panel { width: 10px; } }
.panel > .row { color: red; }
.empty {}
`

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(testCSS)
	require.NoError(t, err)

	var selectors []string
	for _, r := range sheet.Rules {
		selectors = append(selectors, r.Selector)
	}
	assert.Equal(t, []string{".panel", ".row", ".button", "#giftbox"}, selectors)
	assert.Equal(t, "245px", sheet.Rules[0].Props["width"])
	assert.Equal(t, "24", sheet.Rules[1].Props["height"])
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#fff")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c)

	c, ok = ParseColor("#2FA1D6")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0x2f, 0xa1, 0xd6, 255}, c)

	c, ok = ParseColor("#00000080")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{0, 0, 0, 0x80}, c)

	c, ok = ParseColor("Gold")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{255, 215, 0, 255}, c)

	c, ok = ParseColor("transparent")
	assert.True(t, ok)
	assert.Zero(t, c.A)

	_, ok = ParseColor("not-a-color")
	assert.False(t, ok)
	_, ok = ParseColor("#12")
	assert.False(t, ok)
}

func TestLighten(t *testing.T) {
	base := color.RGBA{31, 31, 31, 200}
	assert.Equal(t, base, Lighten(base, 0))
	light := Lighten(base, 0.5)
	assert.Greater(t, light.R, base.R)
	assert.Equal(t, uint8(200), light.A)
	assert.Equal(t, color.RGBA{255, 255, 255, 200}, Lighten(base, 1))
}

func TestResolveProps(t *testing.T) {
	st := ResolveProps(map[string]string{
		"background": "#000",
		"width":      "100px",
		"top":        "50%",
		"padding":    "6",
		"font-size":  "14px",
	})
	assert.Equal(t, int32(100), st.Width)
	assert.Equal(t, int32(50), st.TopPct)
	assert.Equal(t, int32(6), st.Padding)
	assert.Equal(t, int32(14), st.FontSize)
	assert.True(t, st.Positioned)
	assert.NotEqual(t, st.Background, st.Hover)

	def := ResolveProps(nil)
	assert.False(t, def.Positioned)
	assert.Equal(t, int32(-1), def.Right)
}

func TestLayout(t *testing.T) {
	sheet, err := ParseCSS(testCSS)
	require.NoError(t, err)
	e := New()
	e.SetStylesheet(sheet)

	panel := NewNode("panel", "panel", "", "")
	row := NewNode("label", "row", "", "Number of trees")
	row.Bounds = Rect{X: 7, Y: 9}
	e.SetNodes([]*Node{panel, row})

	items := e.Layout(800, 600)
	require.Len(t, items, 2)
	assert.Equal(t, Rect{X: 800 - 245 - 15, Y: 0, Width: 245}, panel.Bounds)
	// Rows are placed by their owner; only the size comes from CSS.
	assert.Equal(t, Rect{X: 7, Y: 9, Height: 24}, row.Bounds)
	assert.Equal(t, color.RGBA{0xeb, 0xeb, 0xeb, 255}, items[1].Style.Color)
}

func TestLoadCSS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panel.css")
	require.NoError(t, os.WriteFile(path, []byte(`.row { height: 30; color: gold; }`), 0644))

	e := New()
	row := NewNode("label", "row", "", "Sound On/Off")
	assert.Zero(t, e.Style(row).Height)

	require.NoError(t, e.LoadCSS(path))
	st := e.Style(row)
	assert.Equal(t, int32(30), st.Height)
	assert.Equal(t, color.RGBA{255, 215, 0, 255}, st.Color)

	assert.Error(t, e.LoadCSS(filepath.Join(dir, "missing.css")))
	assert.Equal(t, int32(30), e.Style(row).Height, "failed load keeps the old sheet")
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(14.9, 14.9))
	assert.False(t, r.Contains(15, 12))
	assert.False(t, r.Contains(9, 12))
}

func TestInspector(t *testing.T) {
	in := NewInspector()
	in.panel.Bounds = Rect{X: 10, Y: 20, Width: 200}
	assert.Empty(t, in.AppendNodes(nil, false, []string{"ball"}, 20))

	nodes := in.AppendNodes(nil, true, []string{"ground", "ball"}, 20)
	require.Len(t, nodes, 4)
	assert.Equal(t, "Scene", nodes[1].Text)
	assert.Equal(t, "ball", nodes[3].Text)
	assert.Equal(t, Rect{X: 10, Y: 60, Width: 200, Height: 20}, nodes[3].Bounds)
	assert.Equal(t, float32(60), in.panel.Bounds.Height)

	nodes = in.AppendNodes(nil, true, []string{"ground"}, 20)
	assert.Len(t, nodes, 3)
}

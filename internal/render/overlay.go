package render

import (
	_ "embed"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"

	"winter-scene/internal/debug"
	"winter-scene/internal/terminal"
	"winter-scene/internal/ui"
)

//go:embed inspector.css
var inspectorCSS string

const inspectorRowHeight = 22

var (
	termChatBgColor = rl.NewColor(0, 0, 0, 180)
	termBarColor    = rl.NewColor(20, 20, 20, 230)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
)

// Overlay draws the 2D layers on top of the scene: the control panel, the object list,
// the terminal and the stats text.
type Overlay struct {
	font      rl.Font
	engine    *ui.Engine
	inspector *ui.Inspector
}

// NewOverlay returns an overlay using raylib's default font.
func NewOverlay() *Overlay {
	o := &Overlay{engine: ui.New(), inspector: ui.NewInspector()}
	if sheet, err := ui.ParseCSS(inspectorCSS); err == nil {
		o.engine.SetStylesheet(sheet)
	}
	return o
}

// LoadFont loads a TTF font for all overlay text. Call after the window exists.
// If loading fails the overlay keeps its current font.
func (o *Overlay) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return errors.Errorf("font %s could not be loaded", path)
	}
	if o.font.Texture.ID != 0 {
		rl.UnloadFont(o.font)
	}
	o.font = f
	return nil
}

// Unload frees the font.
func (o *Overlay) Unload() {
	if o.font.Texture.ID != 0 {
		rl.UnloadFont(o.font)
		o.font = rl.Font{}
	}
}

func (o *Overlay) text(s string, x, y, size int32, c rl.Color) {
	if o.font.Texture.ID != 0 {
		rl.DrawTextEx(o.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
		return
	}
	rl.DrawText(s, x, y, size, c)
}

func (o *Overlay) measure(s string, size int32) int32 {
	if o.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(o.font, s, float32(size), 1).X)
	}
	return rl.MeasureText(s, size)
}

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// DrawItems draws laid-out UI items in order: background, border, label and the
// right-hand value. Toggles get a check box filled with the accent color when on.
func (o *Overlay) DrawItems(items []ui.Item) {
	for _, it := range items {
		n, st := it.Node, it.Style
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)

		bg := st.Background
		if n.Hovered && st.Hover.A > 0 {
			bg = st.Hover
		}
		if bg.A > 0 {
			rl.DrawRectangle(x, y, w, h, toRL(bg))
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, toRL(st.Border))
		}
		if n.Text != "" {
			o.text(n.Text, x+st.Padding, y+st.Padding, st.FontSize, toRL(st.Color))
		}

		switch n.Type {
		case "toggle":
			box := h - 2*st.Padding
			bx := x + w - st.Padding - box
			by := y + st.Padding
			rl.DrawRectangleLines(bx, by, box, box, toRL(st.Color))
			if n.Checked {
				rl.DrawRectangle(bx+2, by+2, box-4, box-4, toRL(st.Accent))
			}
		case "number":
			if n.Value != "" {
				vw := o.measure(n.Value, st.FontSize)
				o.text(n.Value, x+w-st.Padding-vw, y+st.Padding, st.FontSize, toRL(st.Accent))
			}
		}
	}
}

// DrawInspector draws the list of top-level scene objects.
func (o *Overlay) DrawInspector(entries []string, screenW, screenH int32) {
	// The first layout positions the panel; the rows are stacked under it in the second.
	o.engine.SetNodes(o.inspector.AppendNodes(nil, true, entries, inspectorRowHeight))
	o.engine.Layout(screenW, screenH)
	o.engine.SetNodes(o.inspector.AppendNodes(nil, true, entries, inspectorRowHeight))
	o.DrawItems(o.engine.Layout(screenW, screenH))
}

// DrawTerminal draws the input bar at the bottom and the recent log lines above it.
func (o *Overlay) DrawTerminal(t *terminal.Terminal) {
	if !t.IsOpen() {
		return
	}
	screenW := int(rl.GetScreenWidth())
	barY := terminal.BarY(int(rl.GetScreenHeight()), rl.IsWindowFullscreen())

	chatHeight := terminal.MaxLinesOnScreen * terminal.LineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	for i, line := range t.VisibleLines() {
		y := chatY + i*terminal.LineHeight + terminal.Padding
		o.text(line, terminal.Padding, int32(y), terminal.FontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), terminal.BarHeight, termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	o.text(terminal.Prompt+t.Input()+"|", terminal.Padding, int32(barY+terminal.Padding), terminal.FontSize, rl.White)
}

// DrawDebug draws the enabled stats lines top-right in green.
func (o *Overlay) DrawDebug(d *debug.Debug) {
	screenW := int32(rl.GetScreenWidth())
	y := int32(debug.Padding)
	for _, line := range d.Frame() {
		w := o.measure(line, debug.FontSize)
		o.text(line, screenW-w-debug.Padding, y, debug.FontSize, rl.Green)
		y += debug.LineHeight
	}
}

// Package panel is a small debug control panel: folders of number displays,
// toggles and buttons, laid out as rows and styled with CSS.
package panel

import (
	_ "embed"
	"strconv"

	"winter-scene/internal/ui"
)

//go:embed panel.css
var defaultCSS string

const (
	defaultRowHeight = 24
	folderIndent     = 8
)

// Kind is the type of a controller row.
type Kind int

const (
	Number Kind = iota
	Toggle
	Button
)

// Controller is one row of the panel.
type Controller struct {
	kind   Kind
	label  string
	listen bool
	node   *ui.Node

	number   func() int
	shown    int
	value    *bool
	checked  bool
	onChange func(bool)
	action   func()
}

// Name sets the row label.
func (c *Controller) Name(label string) *Controller {
	c.label = label
	return c
}

// Listen makes the row re-read its bound value on every layout.
func (c *Controller) Listen() *Controller {
	c.listen = true
	return c
}

// OnChange registers the callback a toggle invokes with its new value.
func (c *Controller) OnChange(fn func(bool)) *Controller {
	c.onChange = fn
	return c
}

// Label is the row label.
func (c *Controller) Label() string { return c.label }

// Kind reports the row type.
func (c *Controller) Kind() Kind { return c.kind }

// Display is the text shown in the value column.
func (c *Controller) Display() string {
	switch c.kind {
	case Number:
		return strconv.Itoa(c.shown)
	case Toggle:
		if c.checked {
			return "on"
		}
		return "off"
	}
	return ""
}

func (c *Controller) refresh() {
	if !c.listen {
		return
	}
	switch c.kind {
	case Number:
		c.shown = c.number()
	case Toggle:
		c.checked = *c.value
	}
}

func (c *Controller) activate() {
	switch c.kind {
	case Toggle:
		*c.value = !*c.value
		c.checked = *c.value
		if c.onChange != nil {
			c.onChange(*c.value)
		}
	case Button:
		if c.action != nil {
			c.action()
		}
	}
}

// Folder groups controllers under a collapsible header.
type Folder struct {
	Title string
	Open  bool
	node  *ui.Node
	items []any // *Controller or *Folder, in insertion order
}

func newFolder(title, class string) *Folder {
	return &Folder{Title: title, Open: true, node: ui.NewNode("folder", class, "", title)}
}

// AddNumber adds a read-only number display bound to get.
func (f *Folder) AddNumber(label string, get func() int) *Controller {
	c := &Controller{kind: Number, label: label, number: get, shown: get()}
	return f.add(c, "lil-number")
}

// AddToggle adds a check box bound to value.
func (f *Folder) AddToggle(label string, value *bool) *Controller {
	c := &Controller{kind: Toggle, label: label, value: value, checked: *value}
	return f.add(c, "lil-toggle")
}

// AddButton adds a row that calls fn when clicked.
func (f *Folder) AddButton(label string, fn func()) *Controller {
	c := &Controller{kind: Button, label: label, action: fn}
	return f.add(c, "lil-button")
}

// AddFolder adds a nested folder.
func (f *Folder) AddFolder(title string) *Folder {
	sub := newFolder(title, "lil-folder")
	f.items = append(f.items, sub)
	return sub
}

func (f *Folder) add(c *Controller, class string) *Controller {
	c.node = ui.NewNode(class[len("lil-"):], class, "", "")
	f.items = append(f.items, c)
	return c
}

// Controllers returns the direct controller rows of f.
func (f *Folder) Controllers() []*Controller {
	var out []*Controller
	for _, it := range f.items {
		if c, ok := it.(*Controller); ok {
			out = append(out, c)
		}
	}
	return out
}

// Folder returns the direct sub-folder with the given title, or nil.
func (f *Folder) Folder(title string) *Folder {
	for _, it := range f.items {
		if sub, ok := it.(*Folder); ok && sub.Title == title {
			return sub
		}
	}
	return nil
}

type hit struct {
	node   *ui.Node
	ctrl   *Controller
	folder *Folder
}

// GUI is the panel root. It lays itself out in screen space and handles clicks.
type GUI struct {
	Folder
	engine *ui.Engine
	panel  *ui.Node
	hits   []hit
}

// New returns an open panel titled "Controls" styled with the built-in stylesheet.
func New() *GUI {
	g := &GUI{
		Folder: *newFolder("Controls", "lil-title"),
		engine: ui.New(),
		panel:  ui.NewNode("panel", "lil-panel", "", ""),
	}
	if sheet, err := ui.ParseCSS(defaultCSS); err == nil {
		g.engine.SetStylesheet(sheet)
	}
	return g
}

// LoadStylesheet replaces the built-in stylesheet with the CSS file at path.
// On error the panel keeps its current look.
func (g *GUI) LoadStylesheet(path string) error {
	return g.engine.LoadCSS(path)
}

// Root is the top-level folder.
func (g *GUI) Root() *Folder { return &g.Folder }

// Layout places every visible row for a screen of the given size and returns the
// items to draw, panel background first.
func (g *GUI) Layout(screenW, screenH int32) []ui.Item {
	g.engine.SetNodes([]*ui.Node{g.panel})
	g.engine.Layout(screenW, screenH)
	x, y, w := g.panel.Bounds.X, g.panel.Bounds.Y, g.panel.Bounds.Width

	nodes := []*ui.Node{g.panel}
	g.hits = g.hits[:0]
	var place func(f *Folder, depth int)
	row := func(n *ui.Node, depth int, h hit) {
		height := float32(g.engine.Style(n).Height)
		if height <= 0 {
			height = defaultRowHeight
		}
		indent := float32(depth * folderIndent)
		n.Bounds = ui.Rect{X: x + indent, Y: y, Width: w - indent, Height: height}
		y += height
		nodes = append(nodes, n)
		h.node = n
		g.hits = append(g.hits, h)
	}
	place = func(f *Folder, depth int) {
		f.node.Text = f.Title
		row(f.node, depth, hit{folder: f})
		if !f.Open {
			return
		}
		for _, it := range f.items {
			switch v := it.(type) {
			case *Controller:
				v.refresh()
				v.node.Text = v.label
				v.node.Value = v.Display()
				v.node.Checked = v.checked
				row(v.node, depth, hit{ctrl: v})
			case *Folder:
				place(v, depth+1)
			}
		}
	}
	place(&g.Folder, 0)
	g.panel.Bounds.Height = y - g.panel.Bounds.Y

	g.engine.SetNodes(nodes)
	return g.engine.Layout(screenW, screenH)
}

// Contains reports whether (x, y) falls on the panel as last laid out.
func (g *GUI) Contains(x, y float32) bool {
	return g.panel.Bounds.Contains(x, y)
}

// Hover highlights the row under (x, y).
func (g *GUI) Hover(x, y float32) {
	for _, h := range g.hits {
		h.node.Hovered = h.node.Bounds.Contains(x, y)
	}
}

// Click activates the row under (x, y): toggles flip, buttons fire, folder headers
// collapse or expand. It reports whether the panel consumed the click.
func (g *GUI) Click(x, y float32) bool {
	if !g.Contains(x, y) {
		return false
	}
	for _, h := range g.hits {
		if !h.node.Bounds.Contains(x, y) {
			continue
		}
		switch {
		case h.folder != nil:
			h.folder.Open = !h.folder.Open
		case h.ctrl != nil:
			h.ctrl.activate()
		}
		break
	}
	return true
}

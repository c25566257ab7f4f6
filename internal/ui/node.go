package ui

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single UI element: panel, label, button, toggle. It has optional class and id
// for CSS matching, bounds, and optional text.
// Checked is drawn as a check box for toggles; Hovered switches to the hover background.
type Node struct {
	Type    string // "panel", "label", "button", "toggle", "folder"
	Class   string // "menu" for .menu
	ID      string // "main" for #main
	Bounds  Rect
	Text    string
	Value   string // right-hand column text, e.g. a number display
	Checked bool
	Hovered bool
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

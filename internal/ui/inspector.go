package ui

// Inspector is a left-side panel listing the top-level scene objects.
// It owns its nodes and updates their text when AppendNodes is called with visible true.
type Inspector struct {
	panel *Node
	title *Node
	lines []*Node
}

// NewInspector creates an Inspector with nodes styled by the engine's CSS (.inspector, .inspector-title, .inspector-line).
func NewInspector() *Inspector {
	return &Inspector{
		panel: NewNode("panel", "inspector", "", ""),
		title: NewNode("label", "inspector-title", "", "Scene"),
	}
}

// AppendNodes appends inspector nodes to dst when visible is true, one label per entry
// stacked under the title. rowHeight is the pixel height of each label.
// When visible is false, dst is returned unchanged.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, entries []string, rowHeight float32) []*Node {
	if !visible {
		return dst
	}
	for len(in.lines) < len(entries) {
		in.lines = append(in.lines, NewNode("label", "inspector-line", "", ""))
	}
	x, y := in.panel.Bounds.X, in.panel.Bounds.Y
	in.title.Bounds = Rect{X: x, Y: y, Width: in.panel.Bounds.Width, Height: rowHeight}
	dst = append(dst, in.panel, in.title)
	for i, text := range entries {
		l := in.lines[i]
		l.Text = text
		l.Bounds = Rect{X: x, Y: y + rowHeight*float32(i+1), Width: in.panel.Bounds.Width, Height: rowHeight}
		dst = append(dst, l)
	}
	in.panel.Bounds.Height = rowHeight * float32(len(entries)+1)
	return dst
}

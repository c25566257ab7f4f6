package ui

import (
	"os"

	"github.com/pkg/errors"
)

const defaultFontSize = 20

// Item is a node with its resolved style, in draw order.
type Item struct {
	Node  *Node
	Style ComputedStyle
}

// Engine holds the current stylesheet and nodes and lays them out on screen.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached per node and only recomputed when the sheet changes.
type Engine struct {
	sheet  *Stylesheet
	nodes  []*Node
	styles map[*Node]ComputedStyle
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{styles: make(map[*Node]ComputedStyle)}
}

// LoadCSS loads and parses a CSS file from path and replaces the current stylesheet.
// On error the current stylesheet stays.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "load stylesheet")
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// SetNodes replaces all nodes. Nodes may be rebuilt every frame; styles stay cached by class and id.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
}

// Style returns the resolved style for n.
func (e *Engine) Style(n *Node) ComputedStyle {
	if st, ok := e.styles[n]; ok {
		return st
	}
	st := ResolveProps(e.resolveProps(n))
	e.styles[n] = st
	return st
}

// resolveProps returns merged properties for a node (class and id matched; last wins).
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		sel := rule.Selector
		if len(sel) < 2 {
			continue
		}
		matches := false
		switch sel[0] {
		case '.':
			matches = n.Class == sel[1:]
		case '#':
			matches = n.ID == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// resolveBounds sets n.Bounds size from style and, when the style positions the node,
// its position on a screen of the given size.
func resolveBounds(n *Node, style ComputedStyle, screenW, screenH int32) {
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	if !style.Positioned {
		return
	}
	w := int32(n.Bounds.Width)
	h := int32(n.Bounds.Height)
	switch {
	case style.Right >= 0:
		n.Bounds.X = float32(screenW - w - style.Right)
	case style.LeftPct >= 0:
		n.Bounds.X = float32((screenW - w) * style.LeftPct / 100)
	default:
		n.Bounds.X = float32(style.Left)
	}
	if style.TopPct >= 0 {
		n.Bounds.Y = float32((screenH - h) * style.TopPct / 100)
	} else {
		n.Bounds.Y = float32(style.Top)
	}
}

// Layout resolves every node's style and bounds and returns them in draw order.
func (e *Engine) Layout(screenW, screenH int32) []Item {
	items := make([]Item, 0, len(e.nodes))
	for _, n := range e.nodes {
		st := e.Style(n)
		resolveBounds(n, st, screenW, screenH)
		items = append(items, Item{Node: n, Style: st})
	}
	return items
}

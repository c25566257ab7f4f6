package scene

import (
	"strings"

	"winter-scene/internal/commands"
	"winter-scene/internal/debug"
	"winter-scene/internal/interaction"
	"winter-scene/internal/panel"
)

// Panel labels.
const (
	LabelTreeCount   = "Number of trees"
	LabelAddTree     = "Add tree"
	LabelRemoveTree  = "Remove tree"
	LabelShowInfo    = "Show info"
	LabelSound       = "Sound On/Off"
	FolderGiftbox    = "Giftbox"
	LabelShowGiftbox = "Show Giftbox"
)

// BuildPanel binds the debug panel to the app.
func (a *App) BuildPanel() *panel.GUI {
	gui := panel.New()
	root := gui.Root()
	root.AddNumber(LabelTreeCount, a.Trees.Count).Listen()
	root.AddButton(LabelAddTree, func() { a.Trees.Add() })
	root.AddButton(LabelRemoveTree, func() { a.Trees.RemoveLast() })
	root.AddButton(LabelShowInfo, a.showInfo)
	root.AddToggle(LabelSound, &a.SoundOn).Listen().OnChange(a.SetSound)

	gift := root.AddFolder(FolderGiftbox)
	gift.AddButton(LabelShowGiftbox, func() { a.ToggleGiftbox() })
	return gui
}

// showInfo logs the top-level objects and flips the on-screen list.
func (a *App) showInfo() {
	a.ShowInfo = !a.ShowInfo
	a.Log.Infof("scene: %s", strings.Join(a.Info(), ", "))
}

// RegisterCommands adds the terminal commands that mirror the panel.
func (a *App) RegisterCommands(reg *commands.Registry, dbg *debug.Debug) {
	treeFlags := commands.NewFlagSet("tree")
	add := treeFlags.Bool("add", false, "add a tree")
	remove := treeFlags.Bool("remove", false, "remove the newest tree")
	reg.Register("tree", "add or remove trees", treeFlags, func() error {
		switch {
		case *add:
			a.Log.Infof("added %s", a.Trees.Add())
		case *remove:
			if !a.Trees.RemoveLast() {
				a.Log.Infof("no trees to remove")
			}
		}
		a.Log.Infof("trees: %d", a.Trees.Count())
		return nil
	})

	soundFlags := commands.NewFlagSet("sound")
	on := soundFlags.Bool("on", false, "play the ambient track")
	off := soundFlags.Bool("off", false, "stop the ambient track")
	reg.Register("sound", "play or stop the ambient track", soundFlags, func() error {
		switch {
		case *on:
			a.SetSound(true)
		case *off:
			a.SetSound(false)
		default:
			a.SetSound(!a.SoundOn)
		}
		return nil
	})

	reg.Register("giftbox", "show or hide the giftbox", nil, func() error {
		if !a.ToggleGiftbox() {
			a.Log.Warnf("giftbox not loaded yet")
		}
		return nil
	})

	reg.Register("info", "list top-level scene objects", nil, func() error {
		a.showInfo()
		return nil
	})

	fpsFlags := commands.NewFlagSet("fps")
	show := fpsFlags.Bool("show", false, "show the FPS counter")
	hide := fpsFlags.Bool("hide", false, "hide the FPS counter")
	reg.Register("fps", "show or hide the FPS counter", fpsFlags, func() error {
		switch {
		case *show:
			dbg.SetShowFPS(true)
		case *hide:
			dbg.SetShowFPS(false)
		default:
			dbg.SetShowFPS(!dbg.ShowFPS)
		}
		return nil
	})
}

// PointerDown handles a primary button press at window pixel (x, y). The panel gets
// the first chance; otherwise the press may pick up the ball or start orbiting.
func (a *App) PointerDown(gui *panel.GUI, x, y float32) {
	a.lastX, a.lastY = x, y
	if gui != nil && gui.Click(x, y) {
		return
	}
	ndc := interaction.ToNDC(x, y, float32(a.Width), float32(a.Height))
	if !a.Interaction.PointerDown(ndc) {
		a.orbiting = true
	}
}

// PointerMove drags the ball or orbits the camera while the button is held.
func (a *App) PointerMove(gui *panel.GUI, x, y float32) {
	dx, dy := x-a.lastX, y-a.lastY
	a.lastX, a.lastY = x, y
	if gui != nil {
		gui.Hover(x, y)
	}
	if a.Interaction.State() == interaction.Dragging {
		a.Interaction.PointerMove(interaction.ToNDC(x, y, float32(a.Width), float32(a.Height)))
		return
	}
	if a.orbiting {
		a.Controls.Rotate(dx, dy)
	}
}

// PointerUp ends any drag or orbit.
func (a *App) PointerUp() {
	a.orbiting = false
	a.Interaction.PointerUp()
}

// Wheel zooms the orbit camera.
func (a *App) Wheel(steps float32) {
	a.Controls.Zoom(steps)
}

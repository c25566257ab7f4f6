package graphics

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"winter-scene/internal/panel"
	"winter-scene/internal/scene"
	"winter-scene/internal/terminal"
)

// Input polls raylib once per frame and routes events: window size to the app,
// keys to the terminal while it is open, and the mouse to the panel, the ball and the camera.
type Input struct {
	App  *scene.App
	GUI  *panel.GUI
	Term *terminal.Terminal

	lastMouse rl.Vector2
}

// Update polls input. Call once per frame before the app advances.
func (in *Input) Update() {
	if rl.IsWindowResized() {
		in.App.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		in.Term.Toggle()
	}
	if in.Term.IsOpen() {
		in.typing()
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		in.App.PointerDown(in.GUI, mouse.X, mouse.Y)
	}
	if mouse != in.lastMouse {
		in.App.PointerMove(in.GUI, mouse.X, mouse.Y)
		in.lastMouse = mouse
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		in.App.PointerUp()
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		in.App.Wheel(wheel)
	}
}

func (in *Input) typing() {
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			in.Term.Type(pasted)
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			if r := rune(c); utf8.ValidRune(r) {
				in.Term.Type(string(r))
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
		in.Term.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		in.Term.Submit()
	}
}

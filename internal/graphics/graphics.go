package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the initial window.
type Window struct {
	Width  int
	Height int
	Title  string
}

// Run opens a resizable window and runs the main loop. Each frame it calls update
// (input and simulation), then clears the screen and calls draw. init runs once after the
// OpenGL context exists, before the first frame; shutdown runs before the window closes.
// ESC toggles the terminal, so the window is closed with its close button.
func Run(win Window, init, update, draw, shutdown func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	if init != nil {
		init()
	}
	if shutdown != nil {
		defer shutdown()
	}
	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.White)
		draw()
		rl.EndDrawing()
	}
}

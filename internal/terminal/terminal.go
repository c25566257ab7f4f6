package terminal

import (
	"unicode/utf8"

	"winter-scene/internal/commands"
	"winter-scene/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible (avoids being cut off by taskbar/window bounds).
	WindowedBarOffset = 56
	Prompt            = "> "
	FontSize          = 20
	Padding           = 8
	// Number of log lines drawn above the input bar when terminal is open.
	MaxLinesOnScreen = 14
	LineHeight       = FontSize + 4
	maxLineLength    = 200
)

// Terminal is the command input bar at the bottom of the screen. It is shown and hidden with ESC.
// While open it captures typing and the scene ignores keyboard input.
// Lines starting with "cmd " are parsed as subcommand + flags and executed via the command registry;
// anything else is echoed to the log with a hint.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a new Terminal that logs lines and runs "cmd ..." through reg. It starts closed.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Toggle opens or closes the terminal.
func (t *Terminal) Toggle() {
	t.open = !t.open
}

// Type appends text to the input line. Ignored while closed.
func (t *Terminal) Type(text string) {
	if t.open {
		t.inputBuf += text
	}
}

// Backspace deletes the last rune of the input line.
func (t *Terminal) Backspace() {
	if !t.open || t.inputBuf == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(t.inputBuf)
	t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
}

// Input is the line being edited.
func (t *Terminal) Input() string { return t.inputBuf }

// Submit logs the input line, runs it if it is a command, and clears it.
func (t *Terminal) Submit() {
	if !t.open || t.inputBuf == "" {
		return
	}
	line := t.inputBuf
	t.inputBuf = ""
	t.Run(line)
}

// Run executes one line as if typed. Command errors go to the log.
func (t *Terminal) Run(line string) {
	t.log.Log(Prompt + line)
	args, isCmd := commands.Parse(line)
	if !isCmd {
		t.log.Log("type \"cmd help\" for commands")
		return
	}
	if len(args) == 1 && args[0] == "help" {
		for _, h := range t.reg.Help() {
			t.log.Log(h)
		}
		return
	}
	if err := t.reg.Execute(args); err != nil {
		t.log.Errorf("%v", err)
	}
}

// VisibleLines returns the most recent log lines that fit above the bar, each cut to a drawable length.
func (t *Terminal) VisibleLines() []string {
	lines := t.log.Lines()
	if len(lines) > MaxLinesOnScreen {
		lines = lines[len(lines)-MaxLinesOnScreen:]
	}
	for i, l := range lines {
		if len(l) > maxLineLength {
			lines[i] = l[:maxLineLength-3] + "..."
		}
	}
	return lines
}

// BarY is the top of the input bar on a screen of the given height.
func BarY(screenH int, fullscreen bool) int {
	y := screenH - BarHeight
	if !fullscreen {
		y -= WindowedBarOffset
	}
	return y
}

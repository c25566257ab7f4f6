package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winter-scene/internal/commands"
	"winter-scene/internal/logger"
)

func newTerminal() (*Terminal, *logger.Logger, *int) {
	log := logger.NewAt("")
	reg := commands.NewRegistry()
	calls := 0
	reg.Register("info", "list scene objects", nil, func() error { calls++; return nil })
	return New(log, reg), log, &calls
}

func TestTypingRequiresOpen(t *testing.T) {
	term, _, _ := newTerminal()
	term.Type("x")
	assert.Empty(t, term.Input())

	term.Toggle()
	assert.True(t, term.IsOpen())
	term.Type("héllo")
	term.Backspace()
	term.Backspace()
	term.Backspace()
	term.Backspace()
	assert.Equal(t, "h", term.Input())
}

func TestSubmitRunsCommand(t *testing.T) {
	term, log, calls := newTerminal()
	term.Toggle()
	term.Type("cmd info")
	term.Submit()
	assert.Equal(t, 1, *calls)
	assert.Empty(t, term.Input())
	require.Len(t, log.Lines(), 1)
	assert.True(t, strings.HasSuffix(log.Lines()[0], "> cmd info"))
}

func TestUnknownCommandIsLogged(t *testing.T) {
	term, log, _ := newTerminal()
	term.Run("cmd nope")
	lines := log.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "ERROR unknown command: nope")
}

func TestPlainTextAndHelp(t *testing.T) {
	term, log, _ := newTerminal()
	term.Run("hello")
	term.Run("cmd help")
	lines := log.Lines()
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "cmd help")
	assert.Contains(t, lines[3], "cmd info: list scene objects")
}

func TestVisibleLines(t *testing.T) {
	term, log, _ := newTerminal()
	for range MaxLinesOnScreen + 3 {
		log.Log(strings.Repeat("x", 300))
	}
	lines := term.VisibleLines()
	assert.Len(t, lines, MaxLinesOnScreen)
	assert.Len(t, lines[0], maxLineLength)
	assert.True(t, strings.HasSuffix(lines[0], "..."))
}

func TestBarY(t *testing.T) {
	assert.Equal(t, 560, BarY(600, true))
	assert.Equal(t, 504, BarY(600, false))
}

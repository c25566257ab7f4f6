package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	l := NewAt(path)
	l.now = func() time.Time { return time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC) }

	l.Log("hello")
	l.Warnf("slow %s", "load")
	l.Errorf("load %q failed", "tree")

	lines := l.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "[2024-12-24 18:00:00] hello", lines[0])
	assert.Equal(t, "[2024-12-24 18:00:00] WARN slow load", lines[1])
	assert.Equal(t, `[2024-12-24 18:00:00] ERROR load "tree" failed`, lines[2])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := NewAt("")
	l.Infof("n=%d", 3)
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "] n=3"))

	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0])
}

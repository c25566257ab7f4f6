package debug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiddenByDefault(t *testing.T) {
	d := New(func() int32 { return 60 })
	assert.Empty(t, d.Frame())
}

func TestFPSRefreshesEveryInterval(t *testing.T) {
	fps := int32(60)
	d := New(func() int32 { return fps })
	d.SetShowFPS(true)
	assert.Equal(t, []string{"FPS: 60"}, d.Frame())

	fps = 30
	for range updateInterval - 2 {
		assert.Equal(t, []string{"FPS: 60"}, d.Frame())
	}
	assert.Equal(t, []string{"FPS: 30"}, d.Frame())
}

func TestMemUnderFPS(t *testing.T) {
	d := New(func() int32 { return 1 })
	d.SetShowFPS(true)
	d.SetShowMemAlloc(true)
	lines := d.Frame()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Mem: "))
	assert.True(t, strings.HasSuffix(lines[1], " MiB"))
}

package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemes_Order(t *testing.T) {
	var ids []Mode
	for _, th := range Themes() {
		ids = append(ids, th.ID)
	}
	assert.Equal(t, []Mode{ModeDark, ModeMinimal, ModeCyberpunk, ModeGaming}, ids)
}

func TestLookup_Palettes(t *testing.T) {
	dark, ok := Lookup(ModeDark)
	require.True(t, ok)
	assert.Equal(t, "Hacker Style", dark.Name)
	assert.Equal(t, "#1a8870", dark.Accent)

	cyber, ok := Lookup(ModeCyberpunk)
	require.True(t, ok)
	assert.Equal(t, "#00ff9f", cyber.Foreground)
	assert.Equal(t, "#ff003c", cyber.Border)

	_, ok = Lookup("neon")
	assert.False(t, ok)
}

func TestStore_DefaultsToDark(t *testing.T) {
	mode, th := NewStore().Current()
	assert.Equal(t, ModeDark, mode)
	assert.Equal(t, "Hacker Style", th.Name)
}

func TestStore_SetMode(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetMode(ModeGaming))
	mode, th := s.Current()
	assert.Equal(t, ModeGaming, mode)
	assert.Equal(t, "#ff004d", th.Accent)
}

func TestStore_SetModeUnknownKeepsCurrent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetMode(ModeMinimal))

	err := s.SetMode("neon")
	assert.True(t, errors.Is(err, ErrUnknownMode))

	mode, _ := s.Current()
	assert.Equal(t, ModeMinimal, mode)
}

func TestRenderStyles(t *testing.T) {
	minimal, _ := Lookup(ModeMinimal)
	dark, _ := Lookup(ModeDark)
	assert.Equal(t, "light", minimal.GlamourStyle())
	assert.Equal(t, "dark", dark.GlamourStyle())
	assert.Equal(t, "github", minimal.ChromaStyle())
	assert.Equal(t, "monokai", dark.ChromaStyle())
}

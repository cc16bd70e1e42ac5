// Package theme defines the fixed colour palettes and the per-session store
// that tracks which one is current.
package theme

import (
	"errors"
	"sync"
)

// ErrUnknownMode is returned by Store.SetMode for a mode with no palette.
var ErrUnknownMode = errors.New("unknown theme mode")

// Mode identifies a palette.
type Mode string

const (
	ModeDark      Mode = "dark"
	ModeMinimal   Mode = "minimal"
	ModeCyberpunk Mode = "cyberpunk"
	ModeGaming    Mode = "gaming"
)

// Theme is a named palette. All colours are hex strings.
type Theme struct {
	ID         Mode
	Name       string
	Background string
	Foreground string
	Accent     string
	Secondary  string
	Terminal   string
	Editor     string
	Sidebar    string
	Border     string
}

var palettes = []Theme{
	{
		ID: ModeDark, Name: "Hacker Style",
		Background: "#1e1e1e", Foreground: "#cccccc", Accent: "#1a8870", Secondary: "#252526",
		Terminal: "#1e1e1e", Editor: "#1e1e1e", Sidebar: "#252526", Border: "#3c3c3c",
	},
	{
		ID: ModeMinimal, Name: "Minimal",
		Background: "#ffffff", Foreground: "#2d2d2d", Accent: "#0066cc", Secondary: "#f8f9fa",
		Terminal: "#ffffff", Editor: "#ffffff", Sidebar: "#f8f9fa", Border: "#e2e8f0",
	},
	{
		ID: ModeCyberpunk, Name: "Cyberpunk",
		Background: "#0d0221", Foreground: "#00ff9f", Accent: "#ff003c", Secondary: "#120424",
		Terminal: "#0d0221", Editor: "#0d0221", Sidebar: "#120424", Border: "#ff003c",
	},
	{
		ID: ModeGaming, Name: "Gaming",
		Background: "#1a1c2c", Foreground: "#f4f4f4", Accent: "#ff004d", Secondary: "#29366f",
		Terminal: "#1a1c2c", Editor: "#1a1c2c", Sidebar: "#29366f", Border: "#83769c",
	},
}

// Themes returns every palette in picker order.
func Themes() []Theme {
	return append([]Theme(nil), palettes...)
}

// Lookup returns the palette for mode.
func Lookup(mode Mode) (Theme, bool) {
	for _, t := range palettes {
		if t.ID == mode {
			return t, true
		}
	}
	return Theme{}, false
}

// GlamourStyle names the glamour standard style that reads well on this
// palette's editor background.
func (t Theme) GlamourStyle() string {
	if t.ID == ModeMinimal {
		return "light"
	}
	return "dark"
}

// ChromaStyle names the chroma style used for code highlighting.
func (t Theme) ChromaStyle() string {
	switch t.ID {
	case ModeMinimal:
		return "github"
	case ModeCyberpunk:
		return "fruity"
	case ModeGaming:
		return "dracula"
	default:
		return "monokai"
	}
}

// Store holds the current mode. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	mode Mode
}

// NewStore starts in dark mode.
func NewStore() *Store {
	return &Store{mode: ModeDark}
}

// Current returns the active mode and its palette.
func (s *Store) Current() (Mode, Theme) {
	s.mu.RLock()
	mode := s.mode
	s.mu.RUnlock()
	t, _ := Lookup(mode)
	return mode, t
}

// SetMode switches palettes. An unknown mode leaves the current one in place.
func (s *Store) SetMode(mode Mode) error {
	if _, ok := Lookup(mode); !ok {
		return ErrUnknownMode
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return nil
}

package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"devfolio/internal/theme"
)

// Fixed colours that do not follow the palette.
const (
	ColorSuccess = "#4ec9b0"
	ColorDanger  = "#f14c4c"
	ColorWarning = "#cca700"
	ColorMuted   = "#808080"
)

// Styles contains the style definitions for one palette. Every session
// builds its own from its lipgloss renderer so SSH visitors get styles for
// their terminal, not the server's.
type Styles struct {
	Theme theme.Theme

	// Panels
	App           lipgloss.Style // full-screen background
	Panel         lipgloss.Style // unfocused panel border
	PanelFocused  lipgloss.Style // focused panel border
	PanelTitle    lipgloss.Style // "EXPLORER", "TERMINAL", ...
	StatusBar     lipgloss.Style
	StatusSegment lipgloss.Style

	// Tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Title styles
	Title        lipgloss.Style
	TitleWarning lipgloss.Style

	// Box styles (modals)
	Box        lipgloss.Style
	BoxDanger  lipgloss.Style
	BoxCompact lipgloss.Style

	// Text styles
	Selected lipgloss.Style // highlighted/selected items
	Cursor   lipgloss.Style // keyboard cursor row
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Section  lipgloss.Style
	Empty    lipgloss.Style
	Label    lipgloss.Style
	Details  lipgloss.Style

	// Terminal line kinds
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Prompt  lipgloss.Style

	// Chat roles
	UserRole      lipgloss.Style
	AssistantRole lipgloss.Style
}

// NewStyles derives styles from palette t using renderer r.
func NewStyles(r *lipgloss.Renderer, t theme.Theme) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := lipgloss.Color(t.Foreground)
	accent := lipgloss.Color(t.Accent)
	border := lipgloss.Color(t.Border)
	muted := lipgloss.Color(ColorMuted)
	danger := lipgloss.Color(ColorDanger)

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(lipgloss.Color(t.Secondary)).
		Foreground(fg).
		Padding(1, 2)

	return Styles{
		Theme: t,

		App: r.NewStyle().
			Background(lipgloss.Color(t.Background)).
			Foreground(fg),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		PanelFocused: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent),
		PanelTitle: r.NewStyle().
			Bold(true).
			Foreground(muted),
		StatusBar: r.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#ffffff")),
		StatusSegment: r.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),

		Tab: r.NewStyle().
			Foreground(muted).
			Background(lipgloss.Color(t.Secondary)).
			Padding(0, 1),
		TabActive: r.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color(t.Editor)).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Title: r.NewStyle().
			Bold(true).
			Foreground(accent),
		TitleWarning: r.NewStyle().
			Bold(true).
			Foreground(danger),

		Box: box,
		BoxDanger: box.
			BorderForeground(danger),
		BoxCompact: box.
			Padding(0, 1),

		Selected: r.NewStyle().
			Foreground(accent).
			Bold(true),
		Cursor: r.NewStyle().
			Background(lipgloss.Color(t.Secondary)).
			Foreground(fg),
		Muted: r.NewStyle().
			Foreground(muted),
		Normal: r.NewStyle().
			Foreground(fg),
		Hint: r.NewStyle().
			Foreground(muted),
		Section: r.NewStyle().
			Foreground(accent),
		Empty: r.NewStyle().
			Foreground(muted).
			Italic(true),
		Label: r.NewStyle(),
		Details: r.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)),

		Success: r.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)),
		Error: r.NewStyle().
			Foreground(danger),
		Info: r.NewStyle().
			Foreground(fg),
		Prompt: r.NewStyle().
			Foreground(accent).
			Bold(true),

		UserRole: r.NewStyle().
			Foreground(accent).
			Bold(true),
		AssistantRole: r.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true),
	}
}

// NewCompactListDelegate returns a delegate with zero spacing and shared styles.
func NewCompactListDelegate(s *Styles) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.ShowDescription = false
	d.Styles.SelectedTitle = s.Selected.PaddingLeft(1)
	d.Styles.SelectedDesc = s.Selected
	d.Styles.NormalTitle = s.Muted.PaddingLeft(2)
	d.Styles.NormalDesc = s.Muted
	return d
}

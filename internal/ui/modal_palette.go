package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"devfolio/internal/intent"
)

// PaletteModal accepts a spoken-style phrase ("show me your projects",
// "switch to gaming", ...) and runs the matching action.
type PaletteModal struct {
	input  textinput.Model
	styles *Styles
	err    string
}

var _ View = (*PaletteModal)(nil)

// NewPaletteModal creates a focused palette.
func NewPaletteModal(styles *Styles) *PaletteModal {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "what would you like to see?"
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()
	return &PaletteModal{input: ti, styles: styles}
}

// Err is the message shown for an unmatched phrase.
func (m *PaletteModal) Err() string { return m.err }

// Init implements View.
func (m *PaletteModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *PaletteModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			action, ok := intent.Match(m.input.Value())
			if !ok {
				m.err = intent.NoMatch
				return m, nil
			}
			m.err = ""
			return m, func() tea.Msg { return PaletteActionMsg{Action: action} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *PaletteModal) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Command palette") + "\n\n")
	b.WriteString(m.input.View() + "\n")
	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err) + "\n")
	}
	b.WriteString("\n" + m.styles.Hint.Render("Try:") + "\n")
	for _, ex := range intent.Examples() {
		b.WriteString(m.styles.Muted.Render("  "+ex) + "\n")
	}
	b.WriteString("\n" + m.styles.Hint.Render("Enter: run  Esc: cancel"))
	return m.styles.Box.Render(b.String())
}

package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"devfolio/internal/theme"
)

// ThemePickerModal lists the palettes; enter applies the selected one.
type ThemePickerModal struct {
	list   list.Model
	styles *Styles
}

type themeItem struct {
	theme.Theme
	current bool
}

func (t themeItem) FilterValue() string { return t.Name }
func (t themeItem) Title() string {
	if t.current {
		return t.Name + " ✓"
	}
	return t.Name
}
func (t themeItem) Description() string { return string(t.ID) }

var _ View = (*ThemePickerModal)(nil)

// NewThemePickerModal creates the picker with the cursor on current.
func NewThemePickerModal(current theme.Mode, styles *Styles) *ThemePickerModal {
	themes := theme.Themes()
	items := make([]list.Item, len(themes))
	selected := 0
	for i, t := range themes {
		items[i] = themeItem{Theme: t, current: t.ID == current}
		if t.ID == current {
			selected = i
		}
	}
	l := list.New(items, NewCompactListDelegate(styles), 32, len(items)+6)
	l.Title = "Select theme"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = styles.Title
	l.Select(selected)
	return &ThemePickerModal{list: l, styles: styles}
}

// Selected is the mode under the cursor.
func (m *ThemePickerModal) Selected() theme.Mode {
	if it, ok := m.list.SelectedItem().(themeItem); ok {
		return it.ID
	}
	return ""
}

// Init implements View.
func (m *ThemePickerModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ThemePickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			mode := m.Selected()
			if mode == "" {
				return m, nil
			}
			return m, func() tea.Msg { return ThemeSelectedMsg{Mode: mode} }
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *ThemePickerModal) View() string {
	help := "Enter: apply  Esc: cancel"
	return m.styles.BoxCompact.Render(m.list.View() + "\n" + m.styles.Hint.Render(help))
}

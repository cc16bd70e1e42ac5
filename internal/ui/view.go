package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Each View represents a panel or modal with its own model, update, and view.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Sizer is implemented by views that lay themselves out to a content box.
type Sizer interface {
	SetSize(width, height int)
}

// Focusable is implemented by views with a text cursor.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
}

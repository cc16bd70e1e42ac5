package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"devfolio/internal/ui/textutil"
)

// Size used before the first WindowSizeMsg arrives.
const (
	fallbackWidth  = 100
	fallbackHeight = 30
)

func (m *AppModel) render() string {
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}

	boxes := map[string]string{}
	for _, p := range m.Layout.Panels() {
		boxes[p.ID] = m.renderPanel(p, width, height)
	}
	middle := lipgloss.JoinVertical(lipgloss.Left, boxes[ModeEditor.String()], boxes[ModeTerminal.String()])
	columns := []string{}
	if b, ok := boxes[ModeSidebar.String()]; ok {
		columns = append(columns, b)
	}
	columns = append(columns, middle)
	if b, ok := boxes[ModeCopilot.String()]; ok {
		columns = append(columns, b)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	if top, ok := m.Overlays.Peek(); ok {
		body = m.deps.LipGloss.Place(width, height-StatusBarHeight,
			lipgloss.Center, lipgloss.Center, top.View.View())
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar(width))
	return m.styles.App.Width(width).MaxHeight(height).Render(screen)
}

func (m *AppModel) renderPanel(p Panel, width, height int) string {
	_, _, w, h := p.Bounds(width, height)
	cw, ch := p.Content(width, height)
	if w <= 2 || h <= 2 {
		return ""
	}
	content := lipgloss.NewStyle().MaxWidth(cw).MaxHeight(ch).Render(p.View.View())
	style := m.styles.Panel
	if p.ID == m.Focus.Current {
		style = m.styles.PanelFocused
	}
	return style.Width(cw).Height(ch).Render(content)
}

// statusBar shows the focused panel and file on the left, key help in the
// middle and the notice (or theme name) on the right.
func (m *AppModel) statusBar(width int) string {
	bar := m.styles.StatusBar
	left := m.styles.StatusSegment.Bold(true).Render(m.Mode.Title())
	if tab, ok := m.deps.Workspace.Active(); ok {
		left += m.styles.StatusSegment.Render(tab.File.Name + " · " + string(tab.File.Language))
	}

	right := m.styles.StatusSegment.Render(m.styles.Theme.Name)
	if m.notice.Text != "" {
		text := m.notice.Text
		if m.notice.Error {
			text = "⚠ " + text
		}
		right = m.styles.StatusSegment.Bold(m.notice.Error).Render(text)
	}

	avail := width - textutil.Width(left) - textutil.Width(right) - 1
	help := ""
	if avail > 10 {
		help = RenderKeybindHelp(m.KeyHandler, m.Mode, m.styles, avail)
	}
	gap := max(width-textutil.Width(left)-textutil.Width(help)-textutil.Width(right), 0)
	line := left + help + bar.Render(strings.Repeat(" ", gap)) + right
	return bar.MaxWidth(width).Render(line)
}

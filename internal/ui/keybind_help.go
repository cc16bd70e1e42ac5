package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the one-line key help for the status bar.
// After SPC it lists the next keys of the pending sequence (prefixed with the
// sequence, e.g. "SPC o"); otherwise the direct bindings of the focused panel.
func RenderKeybindHelp(keyHandler *KeyHandler, mode AppMode, styles *Styles, width int) string {
	if keyHandler == nil {
		return ""
	}
	bindings := NewKeyMap(keyHandler.Registry, keyHandler, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	helpModel := help.New()
	helpModel.Width = width
	helpModel.Styles.ShortKey = styles.StatusBar.Bold(true)
	helpModel.Styles.ShortDesc = styles.StatusBar
	helpModel.Styles.ShortSeparator = styles.StatusBar
	helpModel.Styles.Ellipsis = styles.StatusBar
	helpModel.ShortSeparator = " · "

	content := helpModel.ShortHelpView(bindings)
	if keyHandler.LeaderWaiting {
		label := styles.StatusBar.Bold(true).Render(keyHandler.CurrentSeq() + " ›")
		content = lipgloss.JoinHorizontal(lipgloss.Top, label, styles.StatusBar.Render(" "), content)
	}
	return content
}

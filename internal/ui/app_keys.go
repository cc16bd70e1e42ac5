package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"devfolio/internal/catalog"
	"devfolio/internal/theme"
)

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// bindKeys registers the global shortcuts and the SPC leader menu.
func (m *AppModel) bindKeys(reg *KeybindRegistry) {
	browse := []AppMode{ModeSidebar, ModeEditor}

	reg.BindWithDesc("ctrl+c", tea.Quit, "quit")
	reg.BindWithDescForMode("q", tea.Quit, "quit", browse)
	reg.BindWithDesc("tab", send(FocusMsg{Delta: 1}), "next panel")
	reg.Bind("shift+tab", send(FocusMsg{Delta: -1}))
	reg.BindWithDesc("ctrl+b", send(ToggleSidebarMsg{}), "explorer")
	reg.BindWithDesc("ctrl+w", send(CloseTabMsg{}), "close tab")
	reg.Bind("ctrl+right", send(CycleTabMsg{Delta: 1}))
	reg.Bind("ctrl+left", send(CycleTabMsg{Delta: -1}))
	reg.BindWithDesc("ctrl+t", send(OpenThemePickerMsg{}), "theme")
	reg.BindWithDesc("ctrl+p", send(OpenPaletteMsg{}), "palette")
	reg.BindWithDesc("ctrl+a", send(ToggleCopilotMsg{}), "copilot")
	reg.BindWithDescForMode("ctrl+up", send(ResizeTerminalMsg{Delta: 2}), "grow", []AppMode{ModeTerminal})
	reg.BindWithDescForMode("ctrl+down", send(ResizeTerminalMsg{Delta: -2}), "shrink", []AppMode{ModeTerminal})

	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC t", send(OpenThemePickerMsg{}), "Theme picker")
	reg.BindWithDesc("SPC p", send(OpenPaletteMsg{}), "Palette")
	reg.BindWithDesc("SPC b", send(ToggleSidebarMsg{}), "Explorer")
	reg.BindWithDesc("SPC a", send(ToggleCopilotMsg{}), "Copilot")
	reg.BindWithDesc("SPC w", send(CloseTabMsg{}), "Close tab")
	reg.BindWithDesc("SPC d", send(OpenResumeMsg{}), "Download resume")
	reg.BindWithDesc("SPC x", send(FocusMsg{Mode: ModeTerminal}), "Terminal")

	files := []struct{ key, name string }{
		{"h", catalog.HomeFile},
		{"a", catalog.AboutFile},
		{"e", catalog.ExperienceFile},
		{"u", catalog.EducationFile},
		{"p", catalog.ProjectsFile},
		{"c", catalog.ContactFile},
		{"r", catalog.ResumeFile},
		{"g", catalog.ActivityFile},
	}
	for _, f := range files {
		reg.BindWithDesc("SPC o "+f.key, send(OpenFileMsg{Name: f.name}), f.name)
	}

	for _, t := range theme.Themes() {
		reg.BindWithDesc("SPC c "+string(t.ID[0]), send(ThemeSelectedMsg{Mode: t.ID}), t.Name)
	}
}

package ui

// AppMode names the focused panel. Keybinding hints are filtered by mode and
// input panels route printable keys to their text field instead of the
// keybinding registry.
type AppMode int

const (
	ModeSidebar AppMode = iota
	ModeEditor
	ModeTerminal
	ModeCopilot
)

func (m AppMode) String() string {
	switch m {
	case ModeSidebar:
		return "sidebar"
	case ModeEditor:
		return "editor"
	case ModeTerminal:
		return "terminal"
	case ModeCopilot:
		return "copilot"
	default:
		return "unknown"
	}
}

// Title is the label shown in the status bar.
func (m AppMode) Title() string {
	switch m {
	case ModeSidebar:
		return "Explorer"
	case ModeEditor:
		return "Editor"
	case ModeTerminal:
		return "Terminal"
	case ModeCopilot:
		return "Copilot"
	default:
		return "Unknown"
	}
}

// AcceptsText reports whether the panel hosts a text field.
func (m AppMode) AcceptsText() bool {
	return m == ModeTerminal || m == ModeCopilot
}

// modeFromID maps a panel ID back to its mode.
func modeFromID(id string) AppMode {
	for _, m := range []AppMode{ModeSidebar, ModeEditor, ModeTerminal, ModeCopilot} {
		if m.String() == id {
			return m
		}
	}
	return ModeEditor
}

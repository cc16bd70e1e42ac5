package ui

import (
	"devfolio/internal/github"
	"devfolio/internal/intent"
	"devfolio/internal/resume"
	"devfolio/internal/theme"
)

// OpenFileMsg opens (or activates) the named file in the editor.
type OpenFileMsg struct {
	Name string
}

// CloseTabMsg closes the active tab.
type CloseTabMsg struct{}

// CycleTabMsg activates the next (Delta 1) or previous (Delta -1) tab.
type CycleTabMsg struct {
	Delta int
}

// FocusMsg moves focus: Delta cycles, otherwise Mode is focused directly.
type FocusMsg struct {
	Delta int
	Mode  AppMode
}

// ToggleSidebarMsg shows or hides the explorer.
type ToggleSidebarMsg struct{}

// ToggleCopilotMsg shows or hides the assistant panel.
type ToggleCopilotMsg struct{}

// ResizeTerminalMsg grows (positive) or shrinks the terminal panel by Delta rows.
type ResizeTerminalMsg struct {
	Delta int
}

// OpenThemePickerMsg pushes the theme picker overlay.
type OpenThemePickerMsg struct{}

// OpenPaletteMsg pushes the command palette overlay.
type OpenPaletteMsg struct{}

// DismissModalMsg pops the top overlay.
type DismissModalMsg struct{}

// ThemeSelectedMsg switches the palette.
type ThemeSelectedMsg struct {
	Mode theme.Mode
}

// PaletteActionMsg carries a matched palette phrase.
type PaletteActionMsg struct {
	Action intent.Action
}

// OpenResumeMsg opens the resume URL with the session's opener.
type OpenResumeMsg struct{}

// CommandRanMsg is sent after the terminal executed a line.
type CommandRanMsg struct {
	Input string
}

// CopilotReplyMsg delivers the assistant's answer.
type CopilotReplyMsg struct {
	Question string
	Reply    string
}

// FeedUpdatedMsg delivers a GitHub feed snapshot from the poller.
type FeedUpdatedMsg struct {
	Snapshot github.Snapshot
}

// ResumeLoadedMsg delivers the parsed resume or the load error.
type ResumeLoadedMsg struct {
	Document *resume.Document
	Err      error
}

// NoticeMsg shows a transient message in the status bar.
type NoticeMsg struct {
	Text  string
	Error bool
}

// clearNoticeMsg expires notice number seq.
type clearNoticeMsg struct {
	seq int
}

package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"devfolio/internal/intent"
	"devfolio/internal/resume"
	"devfolio/internal/theme"
)

// noticeTTL is how long a status bar notice stays up.
const noticeTTL = 6 * time.Second

const (
	overlayTheme   = "theme"
	overlayPalette = "palette"
)

func (m *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.relayout()
	case tea.KeyMsg:
		return m.handleKey(msg)

	case OpenFileMsg:
		return m.openFile(msg.Name)
	case CloseTabMsg:
		if tab, ok := m.deps.Workspace.Active(); ok {
			m.deps.Workspace.CloseTab(tab.File.Name)
		}
		return m.Editor.Refresh()
	case CycleTabMsg:
		if msg.Delta < 0 {
			m.deps.Workspace.PrevTab()
		} else {
			m.deps.Workspace.NextTab()
		}
		return m.Editor.Refresh()
	case FocusMsg:
		switch {
		case msg.Delta > 0:
			m.Focus.Next()
		case msg.Delta < 0:
			m.Focus.Prev()
		default:
			m.Focus.SetFocus(msg.Mode.String())
		}
		return m.focusCmd()
	case ToggleSidebarMsg:
		m.deps.Workspace.ToggleSidebar()
		return m.relayoutFocusing(ModeSidebar, m.deps.Workspace.SidebarVisible())
	case ToggleCopilotMsg:
		m.Layout.CopilotVisible = !m.Layout.CopilotVisible
		return m.relayoutFocusing(ModeCopilot, m.Layout.CopilotVisible)
	case ResizeTerminalMsg:
		m.Layout.TerminalHeight += msg.Delta
		return m.relayout()

	case OpenThemePickerMsg:
		mode, _ := m.deps.Themes.Current()
		m.Overlays.Push(Overlay{Name: overlayTheme, View: NewThemePickerModal(mode, m.styles), Dismiss: "esc"})
		return nil
	case OpenPaletteMsg:
		p := NewPaletteModal(m.styles)
		m.Overlays.Push(Overlay{Name: overlayPalette, View: p, Dismiss: "esc"})
		return p.Init()
	case DismissModalMsg:
		m.Overlays.Pop()
		return nil
	case ThemeSelectedMsg:
		m.closeOverlay(overlayTheme)
		return m.setTheme(msg.Mode)
	case PaletteActionMsg:
		m.closeOverlay(overlayPalette)
		return m.runAction(msg.Action)

	case OpenResumeMsg:
		return m.openResume()
	case CommandRanMsg:
		m.logger.Debug("terminal command", zap.String("input", msg.Input))
		return m.showLinks()

	case CopilotReplyMsg, spinner.TickMsg:
		_, cmd := m.Copilot.Update(msg)
		return cmd
	case FeedUpdatedMsg, ResumeLoadedMsg:
		_, cmd := m.Editor.Update(msg)
		return cmd

	case NoticeMsg:
		return m.setNotice(msg)
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = NoticeMsg{}
		}
		return nil
	}

	// Anything else (cursor blinks and the like) goes to the overlay and
	// the focused panel.
	var cmds []tea.Cmd
	if cmd, ok := m.Overlays.UpdateTop(msg); ok {
		cmds = append(cmds, cmd)
	}
	_, cmd := m.viewFor(m.Mode).Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if top, ok := m.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			m.Overlays.Pop()
			return nil
		}
		cmd, _ := m.Overlays.UpdateTop(msg)
		return cmd
	}
	if consumed, cmd := m.KeyHandler.Handle(msg, m.Mode); consumed {
		return cmd
	}
	_, cmd := m.viewFor(m.Mode).Update(msg)
	return cmd
}

// relayoutFocusing relayouts after a panel was shown or hidden, focusing it
// when it appeared.
func (m *AppModel) relayoutFocusing(mode AppMode, shown bool) tea.Cmd {
	cmd := m.relayout()
	if !shown {
		return cmd
	}
	m.Focus.SetFocus(mode.String())
	return tea.Batch(cmd, m.focusCmd())
}

func (m *AppModel) closeOverlay(name string) {
	if top, ok := m.Overlays.Peek(); ok && top.Name == name {
		m.Overlays.Pop()
	}
}

func (m *AppModel) openFile(name string) tea.Cmd {
	f, ok := m.deps.Workspace.File(name)
	if !ok {
		return m.setNotice(NoticeMsg{Text: "No such file: " + name, Error: true})
	}
	m.deps.Workspace.OpenFile(f)
	m.Sidebar.Reveal(name)
	return m.Editor.Refresh()
}

func (m *AppModel) setTheme(mode theme.Mode) tea.Cmd {
	if err := m.deps.Themes.SetMode(mode); err != nil {
		m.logger.Warn("theme change failed", zap.String("mode", string(mode)), zap.Error(err))
		return m.setNotice(NoticeMsg{Text: err.Error(), Error: true})
	}
	_, t := m.deps.Themes.Current()
	*m.styles = NewStyles(m.deps.LipGloss, t)
	m.logger.Debug("theme changed", zap.String("mode", string(mode)))
	m.Copilot.Refresh()
	return tea.Batch(m.Editor.Refresh(), m.setNotice(NoticeMsg{Text: "Theme: " + t.Name}))
}

func (m *AppModel) runAction(a intent.Action) tea.Cmd {
	switch a.Kind {
	case intent.OpenFile:
		return m.openFile(a.File)
	case intent.SetTheme:
		return m.setTheme(a.Mode)
	case intent.OpenResume:
		return m.openResume()
	}
	return nil
}

func (m *AppModel) openResume() tea.Cmd {
	if err := m.deps.Opener.Open(m.deps.ResumeURL); err != nil {
		m.logger.Warn("open resume failed", zap.Error(err))
		return m.setNotice(NoticeMsg{Text: fmt.Sprintf("Could not open resume: %v", err), Error: true})
	}
	if cmd := m.showLinks(); cmd != nil {
		return cmd
	}
	return m.setNotice(NoticeMsg{Text: "Opening resume…"})
}

// showLinks turns queued URLs into a clickable notice.
func (m *AppModel) showLinks() tea.Cmd {
	if m.deps.Links == nil {
		return nil
	}
	urls := m.deps.Links.Drain()
	if len(urls) == 0 {
		return nil
	}
	u := urls[len(urls)-1]
	return m.setNotice(NoticeMsg{Text: "Resume: " + resume.Hyperlink(u, u)})
}

func (m *AppModel) setNotice(n NoticeMsg) tea.Cmd {
	m.noticeSeq++
	m.notice = n
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"devfolio/internal/catalog"
	"devfolio/internal/copilot"
	"devfolio/internal/render"
	"devfolio/internal/resume"
	"devfolio/internal/terminal"
	"devfolio/internal/theme"
	"devfolio/internal/workspace"
)

// Deps are the per-session stores and shared services the UI runs on.
// Zero fields get local defaults.
type Deps struct {
	Context   context.Context
	Workspace *workspace.Store
	Themes    *theme.Store
	Terminal  *terminal.Interpreter
	Assistant *copilot.Assistant

	ResumeLoader ResumeLoader
	ResumeURL    string
	Opener       resume.Opener
	// Links, when set, collects URLs the opener could not open locally;
	// they are shown as hyperlinks in the status bar.
	Links *resume.LinkQueue

	GitHubUser string
	LipGloss   *lipgloss.Renderer
	Render     *render.Renderer
	Logger     *zap.Logger
	Now        func() time.Time
}

// AppModel is the root model: explorer, editor, terminal and copilot panels
// with overlays for the theme picker and command palette.
type AppModel struct {
	Mode       AppMode
	Focus      *FocusManager
	Layout     *IDELayout
	Overlays   OverlayStack
	KeyHandler *KeyHandler

	Sidebar  *SidebarView
	Editor   *EditorView
	Terminal *TerminalView
	Copilot  *CopilotView

	deps   Deps
	styles *Styles
	logger *zap.Logger

	width, height int
	notice        NoticeMsg
	noticeSeq     int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Editor.Refresh(), a.focusCmd())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.update(msg)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.render()
}

// NewAppModel creates the root application model.
func NewAppModel(d Deps) *AppModel {
	d = withDefaults(d)
	_, t := d.Themes.Current()
	styles := NewStyles(d.LipGloss, t)

	m := &AppModel{
		Mode:   ModeSidebar,
		deps:   d,
		styles: &styles,
		logger: d.Logger,
	}
	m.Sidebar = NewSidebarView(d.Workspace, m.styles)
	m.Editor = NewEditorView(d.Workspace, d.Themes, d.Render, m.styles,
		NewResumeView(d.Context, d.ResumeLoader, d.ResumeURL, m.styles),
		NewFeedView(d.GitHubUser, m.styles, d.Now),
		d.Logger)
	m.Terminal = NewTerminalView(d.Terminal, m.styles)
	m.Copilot = NewCopilotView(d.Context, d.Assistant, d.Themes, d.Render, m.styles, d.Logger)

	m.Layout = &IDELayout{
		Sidebar:        m.Sidebar,
		Editor:         m.Editor,
		Terminal:       m.Terminal,
		Copilot:        m.Copilot,
		SidebarVisible: d.Workspace.SidebarVisible(),
		TerminalHeight: DefaultTermHeight,
	}
	m.Focus = &FocusManager{
		Current:  ModeSidebar.String(),
		Order:    m.Layout.FocusOrder(),
		OnChange: m.onFocusChange,
	}

	reg := NewKeybindRegistry()
	m.bindKeys(reg)
	m.KeyHandler = NewKeyHandler(reg)
	return m
}

func withDefaults(d Deps) Deps {
	if d.Context == nil {
		d.Context = context.Background()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Workspace == nil {
		d.Workspace = workspace.NewStore(catalog.Default())
	}
	if d.Themes == nil {
		d.Themes = theme.NewStore()
	}
	if d.Opener == nil {
		d.Opener = resume.BrowserOpener{}
	}
	if d.Terminal == nil {
		d.Terminal = terminal.New(terminal.Config{ResumeURL: d.ResumeURL}, d.Themes, d.Opener, d.Logger)
	}
	if d.Assistant == nil {
		d.Assistant = copilot.NewAssistant(nil, d.Workspace.Files(), d.Logger)
	}
	if d.LipGloss == nil {
		d.LipGloss = lipgloss.DefaultRenderer()
	}
	if d.Render == nil {
		d.Render = render.New(d.LipGloss.ColorProfile())
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Styles returns the live styles of the current palette.
func (m *AppModel) Styles() *Styles { return m.styles }

// Workspace is the session's file and tab store.
func (m *AppModel) Workspace() *workspace.Store { return m.deps.Workspace }

// Notice is the status bar message currently shown.
func (m *AppModel) Notice() NoticeMsg { return m.notice }

func (m *AppModel) viewFor(mode AppMode) View {
	switch mode {
	case ModeSidebar:
		return m.Sidebar
	case ModeTerminal:
		return m.Terminal
	case ModeCopilot:
		return m.Copilot
	default:
		return m.Editor
	}
}

func (m *AppModel) onFocusChange(from, to string) {
	if from != "" {
		if f, ok := m.viewFor(modeFromID(from)).(Focusable); ok {
			f.Blur()
		}
	}
	m.Mode = modeFromID(to)
	m.KeyHandler.Reset()
}

// focusCmd gives the focused view its text cursor.
func (m *AppModel) focusCmd() tea.Cmd {
	if f, ok := m.viewFor(m.Mode).(Focusable); ok {
		return f.Focus()
	}
	return nil
}

// relayout recomputes focus order and sizes every visible panel.
func (m *AppModel) relayout() tea.Cmd {
	m.Layout.SidebarVisible = m.deps.Workspace.SidebarVisible()
	before := m.Focus.Current
	m.Focus.SetOrder(m.Layout.FocusOrder(), ModeEditor.String())
	var cmds []tea.Cmd
	if m.Focus.Current != before {
		cmds = append(cmds, m.focusCmd())
	}
	if m.width > 0 && m.height > 0 {
		m.Layout.TerminalHeight = ClampTerminal(m.Layout.TerminalHeight, m.height)
		for _, p := range m.Layout.Panels() {
			if s, ok := p.View.(Sizer); ok {
				s.SetSize(p.Content(m.width, m.height))
			}
		}
	}
	cmds = append(cmds, m.Editor.Refresh())
	return tea.Batch(cmds...)
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"devfolio/internal/catalog"
	"devfolio/internal/render"
	"devfolio/internal/theme"
	"devfolio/internal/ui/textutil"
	"devfolio/internal/workspace"
)

// EditorView is the tab strip plus the read-only content of the active tab.
// Code is highlighted, markdown rendered, the PDF paged and the activity
// feed listed.
type EditorView struct {
	store    *workspace.Store
	themes   *theme.Store
	renderer *render.Renderer
	styles   *Styles
	logger   *zap.Logger

	Resume *ResumeView
	Feed   *FeedView

	viewport viewport.Model
	width    int
	height   int
	shown    string // name of the file last rendered
}

var _ View = (*EditorView)(nil)

// NewEditorView creates the editor.
func NewEditorView(store *workspace.Store, themes *theme.Store, renderer *render.Renderer, styles *Styles, resumeView *ResumeView, feed *FeedView, logger *zap.Logger) *EditorView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorView{
		store:    store,
		themes:   themes,
		renderer: renderer,
		styles:   styles,
		logger:   logger,
		Resume:   resumeView,
		Feed:     feed,
		viewport: viewport.New(0, 0),
	}
}

// Init implements View.
func (e *EditorView) Init() tea.Cmd { return nil }

// SetSize implements Sizer.
func (e *EditorView) SetSize(width, height int) {
	e.width, e.height = width, height
	e.viewport.Width = width
	e.viewport.Height = max(height-2, 1) // tab strip + rule
}

// Update implements View.
func (e *EditorView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ResumeLoadedMsg:
		e.Resume.Loaded(msg)
		return e, e.Refresh()
	case FeedUpdatedMsg:
		e.Feed.Set(msg.Snapshot)
		if e.activeLanguage() == catalog.LangActivity {
			e.Refresh()
		}
		return e, nil
	case tea.KeyMsg:
		if e.activeLanguage() == catalog.LangPDF {
			if used, cmd := e.Resume.HandleKey(msg); used {
				return e, tea.Batch(cmd, e.Refresh())
			}
		}
	}
	var cmd tea.Cmd
	e.viewport, cmd = e.viewport.Update(msg)
	return e, cmd
}

// Refresh re-renders the active tab's content. It returns the command that
// loads the resume when the PDF tab is shown for the first time.
func (e *EditorView) Refresh() tea.Cmd {
	tab, ok := e.store.Active()
	if !ok {
		e.shown = ""
		e.viewport.SetContent(e.styles.Empty.Render("No file open. Select a file from the explorer."))
		return nil
	}
	var cmd tea.Cmd
	if tab.File.Language == catalog.LangPDF {
		cmd = e.Resume.Ensure()
	}
	e.viewport.SetContent(e.content(tab.File))
	if tab.File.Name != e.shown {
		e.viewport.GotoTop()
		e.shown = tab.File.Name
	}
	return cmd
}

func (e *EditorView) content(f catalog.File) string {
	_, t := e.themes.Current()
	width := max(e.width, 20)
	switch f.Language {
	case catalog.LangPDF:
		return e.Resume.Render(width)
	case catalog.LangActivity:
		return e.Feed.Render(width)
	case catalog.LangMarkdown:
		out, err := e.renderer.Markdown(f.Content, t.GlamourStyle(), width)
		if err != nil {
			e.logger.Warn("markdown render failed", zap.String("file", f.Name), zap.Error(err))
			return f.Content
		}
		return out
	default:
		out, err := e.renderer.Code(f.Content, string(f.Language), t.ChromaStyle())
		if err != nil {
			e.logger.Warn("highlight failed", zap.String("file", f.Name), zap.Error(err))
			return f.Content
		}
		return out
	}
}

func (e *EditorView) activeLanguage() catalog.Language {
	tab, ok := e.store.Active()
	if !ok {
		return ""
	}
	return tab.File.Language
}

// View implements View.
func (e *EditorView) View() string {
	return e.tabStrip() + "\n" + e.viewport.View()
}

func (e *EditorView) tabStrip() string {
	tabs := e.store.Tabs()
	if len(tabs) == 0 {
		return e.styles.Muted.Render("no open editors") + "\n"
	}
	maxTab := 22
	if e.width > 0 && len(tabs) > 0 {
		maxTab = min(maxTab, max(e.width/len(tabs)-2, 6))
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := textutil.Truncate(iconFor(t.File)+" "+t.File.Name, maxTab)
		if t.Active {
			parts = append(parts, e.styles.TabActive.Render(label))
		} else {
			parts = append(parts, e.styles.Tab.Render(label))
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if e.width > 0 {
		strip = lipgloss.NewStyle().MaxWidth(e.width).Render(strip)
	}
	rule := e.styles.Muted.Render(strings.Repeat("─", max(e.width, 1)))
	return strip + "\n" + rule
}

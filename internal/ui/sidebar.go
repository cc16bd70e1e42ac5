package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"devfolio/internal/catalog"
	"devfolio/internal/ui/textutil"
	"devfolio/internal/workspace"
)

// SidebarView is the explorer: the portfolio files with the active one
// highlighted. j/k (or arrows) move the cursor, enter opens the file.
type SidebarView struct {
	store  *workspace.Store
	styles *Styles
	cursor int
	width  int
	height int
}

var _ View = (*SidebarView)(nil)

// NewSidebarView creates the explorer over store.
func NewSidebarView(store *workspace.Store, styles *Styles) *SidebarView {
	return &SidebarView{store: store, styles: styles}
}

// Init implements View.
func (s *SidebarView) Init() tea.Cmd { return nil }

// SetSize implements Sizer.
func (s *SidebarView) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Cursor is the index of the row under the keyboard cursor.
func (s *SidebarView) Cursor() int { return s.cursor }

// Update implements View.
func (s *SidebarView) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	files := s.store.Files()
	switch km.String() {
	case "j", "down":
		if s.cursor < len(files)-1 {
			s.cursor++
		}
	case "k", "up":
		if s.cursor > 0 {
			s.cursor--
		}
	case "g", "home":
		s.cursor = 0
	case "G", "end":
		s.cursor = len(files) - 1
	case "enter", "l":
		if s.cursor < len(files) {
			name := files[s.cursor].Name
			return s, func() tea.Msg { return OpenFileMsg{Name: name} }
		}
	}
	return s, nil
}

// View implements View.
func (s *SidebarView) View() string {
	var b strings.Builder
	b.WriteString(s.styles.PanelTitle.Render("EXPLORER") + "\n")
	b.WriteString(s.styles.Section.Render("▾ Portfolio") + "\n")
	width := s.width
	if width <= 0 {
		width = 24
	}
	for i, f := range s.store.Files() {
		line := textutil.PadRight(" "+f.Icon.Glyph()+" "+f.Name, width)
		style := s.styles.Normal
		if s.store.IsActive(f.Name) {
			style = s.styles.Selected
		}
		if i == s.cursor {
			style = style.Inherit(s.styles.Cursor)
		}
		b.WriteString(style.Render(line))
		if i < len(s.store.Files())-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Reveal moves the cursor onto name, used when a file is opened from
// elsewhere.
func (s *SidebarView) Reveal(name string) {
	for i, f := range s.store.Files() {
		if f.Name == name {
			s.cursor = i
			return
		}
	}
}

// iconFor is the glyph for the tab strip.
func iconFor(f catalog.File) string {
	return strings.TrimSpace(f.Icon.Glyph())
}

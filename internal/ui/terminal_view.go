package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"devfolio/internal/terminal"
	"devfolio/internal/ui/textutil"
)

// TerminalView shows the interpreter log above a prompt. up/down recall
// history.
type TerminalView struct {
	interp *terminal.Interpreter
	styles *Styles
	input  textinput.Model

	histIdx int // len(history) when not browsing
	width   int
	height  int
}

var _ View = (*TerminalView)(nil)

// NewTerminalView creates the terminal panel.
func NewTerminalView(interp *terminal.Interpreter, styles *Styles) *TerminalView {
	ti := textinput.New()
	ti.Prompt = "$ "
	ti.Placeholder = `type "help"`
	ti.CharLimit = 256
	return &TerminalView{
		interp:  interp,
		styles:  styles,
		input:   ti,
		histIdx: len(interp.History()),
	}
}

// Init implements View.
func (t *TerminalView) Init() tea.Cmd { return nil }

// SetSize implements Sizer.
func (t *TerminalView) SetSize(width, height int) {
	t.width, t.height = width, height
	t.input.Width = max(width-3, 1)
}

// Focus implements Focusable.
func (t *TerminalView) Focus() tea.Cmd { return t.input.Focus() }

// Blur implements Focusable.
func (t *TerminalView) Blur() { t.input.Blur() }

// Value is the text currently typed at the prompt.
func (t *TerminalView) Value() string { return t.input.Value() }

// Update implements View.
func (t *TerminalView) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			raw := t.input.Value()
			t.input.Reset()
			t.interp.Execute(raw)
			t.histIdx = len(t.interp.History())
			return t, func() tea.Msg { return CommandRanMsg{Input: raw} }
		case tea.KeyUp:
			t.recall(-1)
			return t, nil
		case tea.KeyDown:
			t.recall(1)
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TerminalView) recall(delta int) {
	hist := t.interp.History()
	idx := t.histIdx + delta
	if idx < 0 || idx > len(hist) {
		return
	}
	t.histIdx = idx
	if idx == len(hist) {
		t.input.SetValue("")
		return
	}
	t.input.SetValue(hist[idx])
	t.input.CursorEnd()
}

// View implements View.
func (t *TerminalView) View() string {
	var rows []string
	for _, l := range t.interp.Lines() {
		style := t.styles.Info
		switch l.Kind {
		case terminal.KindSuccess:
			style = t.styles.Success
		case terminal.KindError:
			style = t.styles.Error
		}
		for _, w := range textutil.Wrap(l.Content, t.width) {
			rows = append(rows, style.Render(w))
		}
	}
	visible := t.height - 2 // title + prompt
	if t.height <= 0 {
		visible = len(rows)
	}
	body := textutil.Tail(rows, visible)
	out := t.styles.PanelTitle.Render("TERMINAL") + "\n"
	if len(body) > 0 {
		out += strings.Join(body, "\n") + "\n"
	}
	return out + t.input.View()
}

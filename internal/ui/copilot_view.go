package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"devfolio/internal/copilot"
	"devfolio/internal/render"
	"devfolio/internal/theme"
)

// askTimeout bounds one assistant request.
const askTimeout = 60 * time.Second

// ChatMessage is one entry of the chat history.
type ChatMessage struct {
	Role copilot.Role
	Text string
}

// CopilotView is the chat panel. Without an API key it only shows setup
// instructions.
type CopilotView struct {
	ctx       context.Context
	assistant *copilot.Assistant
	themes    *theme.Store
	renderer  *render.Renderer
	styles    *Styles
	logger    *zap.Logger

	messages []ChatMessage
	pending  bool
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

var _ View = (*CopilotView)(nil)

// NewCopilotView creates the chat panel. The history starts with the greeting.
func NewCopilotView(ctx context.Context, assistant *copilot.Assistant, themes *theme.Store, renderer *render.Renderer, styles *Styles, logger *zap.Logger) *CopilotView {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Ask about the portfolio…"
	ti.CharLimit = 500

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Section

	return &CopilotView{
		ctx:       ctx,
		assistant: assistant,
		themes:    themes,
		renderer:  renderer,
		styles:    styles,
		logger:    logger,
		messages:  []ChatMessage{{Role: copilot.RoleModel, Text: copilot.Greeting}},
		input:     ti,
		spinner:   s,
		viewport:  viewport.New(0, 0),
	}
}

// Init implements View.
func (c *CopilotView) Init() tea.Cmd { return nil }

// SetSize implements Sizer.
func (c *CopilotView) SetSize(width, height int) {
	c.width, c.height = width, height
	c.input.Width = max(width-3, 1)
	c.viewport.Width = width
	c.viewport.Height = max(height-3, 1) // title + blank + prompt
	c.Refresh()
}

// Focus implements Focusable.
func (c *CopilotView) Focus() tea.Cmd { return c.input.Focus() }

// Blur implements Focusable.
func (c *CopilotView) Blur() { c.input.Blur() }

// Pending reports whether a request is in flight.
func (c *CopilotView) Pending() bool { return c.pending }

// Messages returns a copy of the chat history.
func (c *CopilotView) Messages() []ChatMessage {
	return append([]ChatMessage(nil), c.messages...)
}

// Update implements View.
func (c *CopilotView) Update(msg tea.Msg) (View, tea.Cmd) {
	if !c.assistant.Configured() {
		return c, nil
	}
	switch msg := msg.(type) {
	case CopilotReplyMsg:
		c.pending = false
		c.messages = append(c.messages, ChatMessage{Role: copilot.RoleModel, Text: msg.Reply})
		c.Refresh()
		return c, nil
	case spinner.TickMsg:
		if !c.pending {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return c, c.submit()
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit sends the typed question. Blank input and input typed while a
// request is in flight are ignored.
func (c *CopilotView) submit() tea.Cmd {
	q := strings.TrimSpace(c.input.Value())
	if q == "" || c.pending {
		return nil
	}
	c.input.Reset()
	c.pending = true
	c.messages = append(c.messages, ChatMessage{Role: copilot.RoleUser, Text: q})
	c.Refresh()

	ctx, assistant := c.ctx, c.assistant
	ask := func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, askTimeout)
		defer cancel()
		return CopilotReplyMsg{Question: q, Reply: assistant.Ask(ctx, q)}
	}
	return tea.Batch(ask, c.spinner.Tick)
}

// Refresh re-renders the history, e.g. after a theme change.
func (c *CopilotView) Refresh() {
	if c.width <= 0 {
		return
	}
	_, t := c.themes.Current()
	var b strings.Builder
	for i, m := range c.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.Role == copilot.RoleUser {
			b.WriteString(c.styles.UserRole.Render("You") + "\n")
			b.WriteString(c.styles.Normal.Width(c.width).Render(m.Text))
			continue
		}
		b.WriteString(c.styles.AssistantRole.Render("Copilot") + "\n")
		out, err := c.renderer.Markdown(m.Text, t.GlamourStyle(), c.width)
		if err != nil {
			c.logger.Debug("copilot markdown render failed", zap.Error(err))
			out = c.styles.Normal.Width(c.width).Render(m.Text)
		}
		b.WriteString(out)
	}
	c.viewport.SetContent(b.String())
	c.viewport.GotoBottom()
}

// View implements View.
func (c *CopilotView) View() string {
	title := c.styles.PanelTitle.Render("AI COPILOT")
	if !c.assistant.Configured() {
		hint := c.styles.Details.Width(max(c.width, 20)).Render(copilot.SetupHint)
		return title + "\n\n" + hint
	}
	if c.pending {
		title += " " + c.spinner.View() + c.styles.Muted.Render(" thinking")
	}
	return title + "\n" + c.viewport.View() + "\n\n" + c.input.View()
}

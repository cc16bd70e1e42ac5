package ui

// Layout arranges panels and defines focus order.
type Layout interface {
	Panels() []Panel
	FocusOrder() []string // Tab order for focus
}

// Panel sizes.
const (
	SidebarWidth       = 26
	CopilotWidth       = 42
	StatusBarHeight    = 1
	MinTerminalHeight  = 6
	DefaultTermHeight  = 10
	maxTerminalPercent = 80
)

// IDELayout is the editor arrangement: explorer on the left, editor over
// terminal in the middle, assistant on the right and the status bar at the
// bottom. Hidden panels are left out of Panels and FocusOrder.
type IDELayout struct {
	Sidebar  View
	Editor   View
	Terminal View
	Copilot  View

	SidebarVisible bool
	CopilotVisible bool
	TerminalHeight int
}

var _ Layout = (*IDELayout)(nil)

// ClampTerminal keeps rows between MinTerminalHeight and 80% of the body
// height.
func ClampTerminal(rows, screenHeight int) int {
	body := screenHeight - StatusBarHeight
	upper := max(body*maxTerminalPercent/100, MinTerminalHeight)
	return min(max(rows, MinTerminalHeight), upper)
}

func (l *IDELayout) sideWidth(width int) int {
	if !l.SidebarVisible {
		return 0
	}
	return min(SidebarWidth, width/3)
}

func (l *IDELayout) copilotWidth(width int) int {
	if !l.CopilotVisible {
		return 0
	}
	return min(CopilotWidth, width/3)
}

func (l *IDELayout) termHeight(height int) int {
	return ClampTerminal(l.TerminalHeight, height)
}

// Panels implements Layout.
func (l *IDELayout) Panels() []Panel {
	var out []Panel
	if l.SidebarVisible {
		out = append(out, Panel{
			ID:   ModeSidebar.String(),
			View: l.Sidebar,
			Bounds: func(width, height int) (int, int, int, int) {
				return 0, 0, l.sideWidth(width), height - StatusBarHeight
			},
		})
	}
	out = append(out,
		Panel{
			ID:   ModeEditor.String(),
			View: l.Editor,
			Bounds: func(width, height int) (int, int, int, int) {
				x := l.sideWidth(width)
				w := width - x - l.copilotWidth(width)
				h := height - StatusBarHeight - l.termHeight(height)
				return x, 0, w, h
			},
		},
		Panel{
			ID:   ModeTerminal.String(),
			View: l.Terminal,
			Bounds: func(width, height int) (int, int, int, int) {
				x := l.sideWidth(width)
				w := width - x - l.copilotWidth(width)
				th := l.termHeight(height)
				return x, height - StatusBarHeight - th, w, th
			},
		},
	)
	if l.CopilotVisible {
		out = append(out, Panel{
			ID:   ModeCopilot.String(),
			View: l.Copilot,
			Bounds: func(width, height int) (int, int, int, int) {
				w := l.copilotWidth(width)
				return width - w, 0, w, height - StatusBarHeight
			},
		})
	}
	return out
}

// FocusOrder implements Layout.
func (l *IDELayout) FocusOrder() []string {
	panels := l.Panels()
	order := make([]string, len(panels))
	for i, p := range panels {
		order[i] = p.ID
	}
	return order
}

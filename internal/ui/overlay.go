package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal drawn over the IDE. The topmost overlay receives every
// key until it is dismissed.
type Overlay struct {
	Name    string // e.g. "theme", "palette"; one overlay per name
	View    View
	Dismiss string // key that dismisses (e.g. "esc")
}

// IsDismissKey returns true if the given key string should dismiss this overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	return o.Dismiss != "" && key == o.Dismiss
}

// OverlayStack manages a stack of overlays.
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack. An overlay with the same
// name already on the stack is moved to the top instead of duplicated.
func (s *OverlayStack) Push(o Overlay) {
	if i := s.index(o.Name); i >= 0 {
		s.Stack = append(s.Stack[:i], s.Stack[i+1:]...)
	}
	s.Stack = append(s.Stack, o)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// Has reports whether an overlay with name is open.
func (s *OverlayStack) Has(name string) bool {
	return s.index(name) >= 0
}

// UpdateTop passes msg to the top overlay's Update and replaces its View with the result.
// Returns the cmd from the overlay's Update. Caller must run the cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}

func (s *OverlayStack) index(name string) int {
	if name == "" {
		return -1
	}
	for i, o := range s.Stack {
		if o.Name == name {
			return i
		}
	}
	return -1
}

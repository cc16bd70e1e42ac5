package ui

// FocusManager tracks and rotates focus across panels.
type FocusManager struct {
	Current  string   // ID of the currently focused panel
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Next advances focus to the next panel in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous panel in order.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.indexOf(f.Current)
	var next int
	switch {
	case idx < 0 && delta > 0:
		next = 0
	case idx < 0:
		next = len(f.Order) - 1
	default:
		next = (idx + delta + len(f.Order)) % len(f.Order)
	}
	f.change(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given panel ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if f.indexOf(id) < 0 {
		return false
	}
	f.change(id)
	return true
}

// SetOrder replaces the tab order. When the focused panel is no longer part
// of the order, focus moves to fallback (or the first panel).
func (f *FocusManager) SetOrder(order []string, fallback string) {
	f.Order = append([]string(nil), order...)
	if f.indexOf(f.Current) >= 0 || len(f.Order) == 0 {
		return
	}
	if f.indexOf(fallback) >= 0 {
		f.change(fallback)
		return
	}
	f.change(f.Order[0])
}

func (f *FocusManager) change(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}

func (f *FocusManager) indexOf(id string) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}

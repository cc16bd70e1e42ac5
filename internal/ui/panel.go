package ui

// BoundsFunc returns the panel's position and size given terminal dimensions.
// Returns x, y, width, height, borders included.
type BoundsFunc func(width, height int) (x, y, w, h int)

// Panel hosts a View and knows its bounds within a layout.
type Panel struct {
	ID     string
	View   View
	Bounds BoundsFunc
}

// Content returns the inner size of the panel at the given terminal size,
// i.e. its bounds minus the one-cell rounded border.
func (p Panel) Content(width, height int) (w, h int) {
	_, _, pw, ph := p.Bounds(width, height)
	return max(pw-2, 0), max(ph-2, 0)
}

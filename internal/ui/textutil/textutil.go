// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies. ANSI escape
// sequences (colours, OSC 8 links) take no columns.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Truncate shortens plain text to at most maxWidth columns, ending with an
// ellipsis when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight truncates or space-pads plain text to exactly width columns.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// Tail returns the last n lines; all of them when there are fewer.
func Tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

// Wrap hard-wraps plain text to width columns, preserving existing line
// breaks. Used where content is not markdown (terminal output).
func Wrap(s string, width int) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if runewidth.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		var cur strings.Builder
		w := 0
		for _, r := range line {
			rw := runewidth.RuneWidth(r)
			if w+rw > width {
				out = append(out, cur.String())
				cur.Reset()
				w = 0
			}
			cur.WriteRune(r)
			w += rw
		}
		out = append(out, cur.String())
	}
	return out
}

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar for fraction (0..1), e.g. "███░░░░░░░".
// The percent label is left to the caller.
func ProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	if width < 5 {
		width = 5
	}
	t := Current()
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(t.BarFilled, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return t.Success.Render(bar)
}

// Panel frames lines in a box using the current theme.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// OK and Fail print one-line status messages.
func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render("✖ "+msg))
}

// Truncate shortens s to max runes, ending with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

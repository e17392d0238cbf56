package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout stacks the menu bar, the active screen and the status bar.
func ComposeLayout(menuBar, body, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}

// SideBySide joins two panels horizontally.
func SideBySide(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// RenderPanel wraps lines in a bordered box of exactly width x height.
// lipgloss Height only sets a minimum, so overflow is clamped here.
func RenderPanel(lines []string, width, height int, active bool) string {
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	sty := StylePanelBorder
	if active {
		sty = StylePanelActive
	}
	rendered := sty.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))

	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// panelHeader returns the title line with an optional right-aligned hint
// and a separator.
func panelHeader(title, hint string, innerW int) []string {
	t := StylePanelTitle.Render(title)
	h := StyleHelp.Render(hint)
	gap := innerW - lipgloss.Width(t) - lipgloss.Width(h)
	if gap < 1 {
		gap = 1
	}
	return []string{
		t + strings.Repeat(" ", gap) + h,
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if w < 0 {
		w = 0
	}
	if len(s) > w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}

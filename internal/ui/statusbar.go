package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the bottom bar summarises.
type StatusInfo struct {
	Scanning  bool
	Bluetooth bool
	Balls     int
	Hole      int
	ToPar     string
	Message   string
	IsError   bool
	Help      string
}

// RenderStatusBar renders the bottom status bar. A message, when present,
// replaces the key help.
func RenderStatusBar(width int, s StatusInfo) string {
	var status string
	switch {
	case !s.Bluetooth:
		status = StyleStatusError.Render("[BT OFF]")
	case s.Scanning:
		status = StyleStatusScanning.Render("[SCANNING]")
	default:
		status = StyleStatusIdle.Render("[READY]")
	}

	info := fmt.Sprintf(" Balls: %d  Hole: %d  Score: %s  ", s.Balls, s.Hole, s.ToPar)
	tail := StyleHelp.Render(s.Help)
	if s.Message != "" {
		if s.IsError {
			tail = StyleStatusError.Render(s.Message)
		} else {
			tail = StyleStatusInfo.Render(s.Message)
		}
	}

	content := status + StyleMenuLabel.Render(info) + tail
	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jacktrack.app/internal/config"
)

// RenderMenuBar renders the top bar: title, tabs and the mode badge.
func RenderMenuBar(width int, active Tab, demo bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	var tabs []string
	for i, t := range Tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			tabs = append(tabs, StyleTabActive.Render(label))
		} else {
			tabs = append(tabs, StyleTabInactive.Render(label))
		}
	}

	mode := StyleMenuLabel.Render("BLE")
	if demo {
		mode = StyleMenuKey.Render("DEMO")
	}

	left := StyleMenuKey.Render(title) + " " + strings.Join(tabs, "")
	right := mode + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

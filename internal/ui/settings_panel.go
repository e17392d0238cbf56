package ui

import (
	"fmt"

	"jacktrack.app/internal/settings"
)

// RenderSettings renders the preference toggles.
func RenderSettings(s settings.Settings, cursor, width, height int) string {
	innerW := max(width-4, 30)
	lines := panelHeader("SETTINGS", "[space]toggle", innerW)
	lines = append(lines, "")

	for i, k := range settings.Keys {
		on, _ := s.Get(k)
		check := StyleCheckOff.Render("[ ]")
		if on {
			check = StyleCheckOn.Render("[x]")
		}
		if i == cursor {
			mark := "[ ]"
			if on {
				mark = "[x]"
			}
			lines = append(lines, StyleCursorRow.Render(truncRaw(fmt.Sprintf(" >> %s %s", mark, k.Title()), innerW)))
		} else {
			lines = append(lines, fmt.Sprintf("    %s %s", check, StyleName.Render(k.Title())))
		}
		lines = append(lines, StyleHelp.Render("        "+k.Subtitle()), "")
	}
	return RenderPanel(lines, width, height, true)
}

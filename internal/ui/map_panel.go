package ui

import (
	"fmt"
	"sort"

	"jacktrack.app/internal/geo"
	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/tracking"
)

// MapInfo is the side panel next to the map.
type MapInfo struct {
	Player    geo.Point
	Hole      *scoring.HoleRecord
	Flag      *geo.Point
	Balls     []tracking.TrackedBall
	Selected  string
	Measure   []geo.Point
	Measuring bool
	Cursor    *geo.Point
	Range     float64
}

// RenderMapPanel wraps rendered map content and its legend in a border.
func RenderMapPanel(width, height int, content, legend string) string {
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content + "\n" + legend)
}

// RenderMapInfo renders hole, ball and measurement readouts.
func RenderMapInfo(m MapInfo, width, height int) string {
	innerW := max(width-4, 20)
	lines := panelHeader("COURSE", "", innerW)

	if m.Hole != nil {
		lines = append(lines, field("Hole", fmt.Sprintf("%d  par %d", m.Hole.Number, m.Hole.Par)))
	}
	if m.Flag != nil {
		lines = append(lines, field("Flag", formatDistance(geo.Distance(m.Player, *m.Flag))))
	}
	lines = append(lines, field("Range", fmt.Sprintf("%.0fm", m.Range)), "")

	lines = append(lines, StylePanelTitle.Render("BALLS"))
	balls := make([]tracking.TrackedBall, len(m.Balls))
	copy(balls, m.Balls)
	sort.SliceStable(balls, func(i, j int) bool {
		return balls[i].DistanceFrom(m.Player) < balls[j].DistanceFrom(m.Player)
	})
	if len(balls) == 0 {
		lines = append(lines, StyleHelp.Render("  none connected"))
	}
	for _, b := range balls {
		d := b.DistanceFrom(m.Player)
		name := truncRaw(b.DisplayName(), 14)
		line := fmt.Sprintf("  %s %s %s", name, formatDistance(d), geo.CompassPoint(geo.Bearing(m.Player, b.Position)))
		if b.ID == m.Selected {
			lines = append(lines, StyleCursorRow.Render(truncRaw(line, innerW)))
		} else {
			lines = append(lines, StyleMenuLabel.Render(line))
		}
	}
	lines = append(lines, "")

	title := "MEASURE"
	if m.Measuring {
		title += " (on)"
	}
	lines = append(lines, StylePanelTitle.Render(title))
	if m.Cursor != nil {
		lines = append(lines, field("Cursor", formatDistance(geo.Distance(m.Player, *m.Cursor))))
	}
	if len(m.Measure) > 0 {
		lines = append(lines, field("Points", fmt.Sprintf("%d", len(m.Measure))))
		lines = append(lines, field("Total", formatDistance(geo.PathLength(m.Measure))))
		if len(m.Measure) > 1 {
			last := geo.Distance(m.Measure[len(m.Measure)-2], m.Measure[len(m.Measure)-1])
			lines = append(lines, field("Last leg", formatDistance(last)))
		}
	} else {
		lines = append(lines, StyleHelp.Render("  [m] measure mode, [space] add point"))
	}

	lines = append(lines, "", StyleHelp.Render(fmt.Sprintf("  you %.5f, %.5f", m.Player.Lat, m.Player.Lon)))
	return RenderPanel(lines, width, height, false)
}

package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"jacktrack.app/internal/geo"
	"jacktrack.app/internal/tracking"
)

// RenderBallDetail renders one ball with a compass pointing at it.
func RenderBallDetail(b tracking.TrackedBall, player geo.Point, history []float64, now time.Time, width, height int) string {
	innerW := max(width-4, 20)
	lines := panelHeader("BALL DETAIL", "[esc]", innerW)
	lines = append(lines, "")

	dist := b.DistanceFrom(player)
	bearing := geo.Bearing(player, b.Position)

	lines = append(lines,
		field("Name", b.DisplayName()),
		field("ID", b.ID),
		field("Distance", formatDistance(dist)),
		field("Heading", fmt.Sprintf("%s %.0f°", geo.CompassPoint(bearing), bearing*180/math.Pi)),
		field("Position", fmt.Sprintf("%.6f, %.6f", b.Position.Lat, b.Position.Lon)),
		field("Updated", formatAgo(b.LastUpdated, now)),
		"",
	)

	barW := max(innerW-24, 10)
	lines = append(lines,
		StyleSubtle.Render("  Battery   ")+renderBatteryBar(b.BatteryPercent, barW)+StyleValue.Render(fmt.Sprintf(" %d%%", b.BatteryPercent)),
		StyleSubtle.Render("  Signal    ")+renderSignalBar(b.SignalDBm, barW)+StyleValue.Render(fmt.Sprintf(" %ddBm", b.SignalDBm)),
	)
	if len(history) > 0 {
		lines = append(lines, StyleSubtle.Render("  Signal history ")+StyleMenuLabel.Render(renderSparkline(history, innerW-18)))
	}
	lines = append(lines, "")

	compassH := max(height-len(lines)-4, 5)
	compassW := min(innerW, compassH*3)
	if compass := RenderCompass(compassW, compassH, bearing, dist, b.SignalDBm); compass != "" {
		prefix := strings.Repeat(" ", max(0, (innerW-compassW)/2))
		for _, cl := range strings.Split(compass, "\n") {
			lines = append(lines, prefix+cl)
		}
	}

	return RenderPanel(lines, width, height, true)
}

package ui

import (
	"fmt"
	"strings"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/geo"
	"jacktrack.app/internal/tracking"
)

// TrackingView is the data behind the tracking screen. The cursor runs over
// connected balls first, then discovered ones.
type TrackingView struct {
	Connected  []tracking.TrackedBall
	Discovered []tracking.DiscoveredBall
	Player     geo.Point
	Cursor     int
	Scanning   bool
	Bluetooth  bool
	Stale      map[string]bool // ids with no recent telemetry
}

// RenderTracking renders the paired and discovered ball lists.
func RenderTracking(v TrackingView, width, height int) string {
	innerW := max(width-4, 20)
	lines := panelHeader(fmt.Sprintf("TRACKERS [%d]", len(v.Connected)), "[s]can [enter]pair/detail [x]unpair", innerW)

	switch {
	case !v.Bluetooth:
		lines = append(lines, StyleStatusError.Render(" Bluetooth is off. Enable it in Settings."))
	case v.Scanning:
		lines = append(lines, StyleStatusScanning.Render(" Scanning for golf balls..."))
	default:
		lines = append(lines, StyleHelp.Render(" Press s to scan"))
	}
	lines = append(lines, "")

	lines = append(lines, StylePanelTitle.Render("CONNECTED"))
	if len(v.Connected) == 0 {
		lines = append(lines, StyleHelp.Render("   No balls connected"))
	}
	for i, b := range v.Connected {
		lines = append(lines, connectedEntry(b, v.Player, innerW, i == v.Cursor, v.Stale[b.ID])...)
	}

	lines = append(lines, "", StylePanelTitle.Render("AVAILABLE"))
	if len(v.Discovered) == 0 {
		lines = append(lines, StyleHelp.Render("   Nothing found yet"))
	}
	for i, d := range v.Discovered {
		lines = append(lines, discoveredEntry(d, innerW, len(v.Connected)+i == v.Cursor))
	}

	return RenderPanel(lines, width, height, true)
}

func connectedEntry(b tracking.TrackedBall, player geo.Point, w int, cursor, stale bool) []string {
	dist := b.DistanceFrom(player)
	dir := geo.CompassPoint(geo.Bearing(player, b.Position))
	note := ""
	if stale {
		note = " (no signal)"
	}

	raw1 := fmt.Sprintf(" %s o %s%s", cursorMark(cursor), b.DisplayName(), note)
	raw2 := fmt.Sprintf("      %s %s  bat %d%%  %ddBm %s", formatDistance(dist), dir, b.BatteryPercent, b.SignalDBm, signalLabel(b.SignalDBm))
	if cursor {
		return []string{StyleCursorRow.Render(truncRaw(raw1, w)), StyleCursorRow.Render(truncRaw(raw2, w))}
	}
	line1 := fmt.Sprintf("    o %s%s", StyleName.Render(b.DisplayName()), StyleStatusError.Render(note))
	line2 := fmt.Sprintf("      %s %s  %s %s",
		StyleValue.Render(formatDistance(dist)), StyleSubtle.Render(dir),
		renderBatteryBar(b.BatteryPercent, 5), renderSignalBar(b.SignalDBm, 5))
	return []string{line1, line2}
}

func discoveredEntry(d tracking.DiscoveredBall, w int, cursor bool) string {
	est := d.EstimatedRange(config.MeasuredPower, config.PathLossExp)
	raw := fmt.Sprintf(" %s + %s  %ddBm ~%.0fm  bat %d%%", cursorMark(cursor), d.DisplayName(), d.SignalDBm, est, d.BatteryPercent)
	if cursor {
		return StyleCursorRow.Render(truncRaw(raw, w))
	}
	return StyleSubtle.Render(strings.TrimRight(truncRaw(raw, w), " "))
}

func cursorMark(on bool) string {
	if on {
		return ">>"
	}
	return "  "
}

package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/tracking"
)

// renderSignalBar maps -100..-30 dBm onto width cells.
func renderSignalBar(dbm, width int) string {
	ratio := math.Max(0, math.Min(1, (float64(dbm)+100.0)/70.0))
	return meter(ratio, width, proximityColor(dbm))
}

// renderBatteryBar maps 0..100 percent onto width cells.
func renderBatteryBar(pct, width int) string {
	color := string(ColorFairway)
	switch tracking.BatteryLevelOf(pct) {
	case tracking.BatteryLow:
		color = string(ColorError)
	case tracking.BatteryMedium:
		color = string(ColorWarning)
	}
	return meter(float64(pct)/100.0, width, color)
}

func meter(ratio float64, width int, color string) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	on := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("|", filled))
	off := StyleHelp.Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + on + off + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	span := math.Max(maxV-minV, 1)

	if len(values) > width {
		values = values[len(values)-width:]
	}
	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / span * float64(len(chars)-1))
		sb.WriteByte(chars[max(0, min(idx, len(chars)-1))])
	}
	return sb.String()
}

func signalLabel(dbm int) string {
	switch tracking.QualityOf(dbm) {
	case tracking.SignalStrong:
		return "strong"
	case tracking.SignalMedium:
		return "medium"
	default:
		return "weak"
	}
}

func formatAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// formatDistance shows meters with yards alongside, as golfers read both.
func formatDistance(m float64) string {
	return fmt.Sprintf("%.0fm (%.0fyd)", m, m*1.09361)
}

func scoreStyle(c scoring.Class) lipgloss.Style {
	color := ColorPar
	switch c {
	case scoring.ClassEagleOrBetter:
		color = ColorEagle
	case scoring.ClassBirdie:
		color = ColorBirdie
	case scoring.ClassBogey:
		color = ColorBogey
	case scoring.ClassDoubleOrWorse:
		color = ColorDouble
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

func field(label, value string) string {
	return StyleSubtle.Render(fmt.Sprintf("  %-10s", label)) + StyleValue.Render(value)
}

package ui

import (
	"fmt"

	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/stats"
)

// RenderHistory renders aggregate statistics and the recent rounds list.
func RenderHistory(st stats.Statistics, recent []scoring.Summary, cursor, width, height int) string {
	innerW := max(width-4, 30)
	lines := panelHeader("HISTORY", "[enter]load [d]elete [r]efresh", innerW)
	lines = append(lines, "")

	if st.TotalRounds == 0 {
		lines = append(lines, StyleHelp.Render("  No saved rounds yet."))
		return RenderPanel(lines, width, height, true)
	}

	trend := fmt.Sprintf("%+.1f", st.Trend)
	switch {
	case st.Trend < 0:
		trend += " improving"
	case st.Trend > 0:
		trend += " slipping"
	}
	lines = append(lines,
		field("Rounds", fmt.Sprintf("%d", st.TotalRounds)),
		field("Average", fmt.Sprintf("%d", st.AverageScore)),
		field("Best", fmt.Sprintf("%d", st.BestRound)),
		field("Avg +/-", fmt.Sprintf("%+.1f", st.AverageToPar)),
		field("Trend", trend),
		"",
		StylePanelTitle.Render("RECENT ROUNDS"),
	)

	for i, s := range recent {
		state := ""
		if !s.IsComplete {
			state = " (in progress)"
		}
		raw := fmt.Sprintf(" %s %s  %-18s %3d  %-3s  best #%d worst #%d%s",
			cursorMark(i == cursor), s.StartedAt.Local().Format("Jan 02 2006"),
			truncRaw(s.CourseName, 18), s.TotalStrokes, scoring.FormatToPar(s.ToPar()),
			s.BestHole, s.WorstHole, state)
		if i == cursor {
			lines = append(lines, StyleCursorRow.Render(truncRaw(raw, innerW)))
		} else {
			lines = append(lines, StyleMenuLabel.Render(raw))
		}
	}
	return RenderPanel(lines, width, height, true)
}

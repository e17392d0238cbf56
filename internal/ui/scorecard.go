package ui

import (
	"fmt"
	"strings"

	"jacktrack.app/internal/course"
	"jacktrack.app/internal/scoring"
)

// RenderScorecard renders the round as two nine-hole tables plus the
// current hole editor.
func RenderScorecard(r *scoring.Round, c course.Course, current, width, height int) string {
	innerW := max(width-4, 40)
	if r == nil {
		lines := panelHeader("SCORECARD", "[n]ew round", innerW)
		lines = append(lines, "", StyleHelp.Render("  No active round. Press n to start one."))
		return RenderPanel(lines, width, height, true)
	}

	title := fmt.Sprintf("SCORECARD  %s", r.CourseName)
	lines := panelHeader(title, "[+/-]strokes [←/→]hole [w]save [n]ew", innerW)
	lines = append(lines, "")
	lines = append(lines, nineTable(r, 1, current)...)
	lines = append(lines, "")
	lines = append(lines, nineTable(r, 10, current)...)
	lines = append(lines, "")

	total := fmt.Sprintf("  Total %d  Par %d  %s", r.TotalStrokes(), r.TotalPar(), scoring.FormatToPar(r.ToPar()))
	if r.IsComplete {
		total += "  (complete)"
	}
	lines = append(lines, StyleValue.Render(total))
	fwHit, fwRec := r.FairwaysHit()
	girHit, girRec := r.GreensInRegulation()
	lines = append(lines, StyleSubtle.Render(fmt.Sprintf("  Putts %d  Fairways %d/%d  GIR %d/%d",
		r.TotalPutts(), fwHit, fwRec, girHit, girRec)), "")

	if h := r.Hole(current); h != nil {
		lines = append(lines, StylePanelTitle.Render(fmt.Sprintf("HOLE %d", h.Number)))
		yardage := ""
		if ch, ok := c.Hole(h.Number); ok && ch.Yardage > 0 {
			yardage = fmt.Sprintf("  %d yds", ch.Yardage)
		}
		lines = append(lines, field("Par", fmt.Sprintf("%d%s", h.Par, yardage)))
		cls := scoring.Classify(h.Strokes, h.Par)
		lines = append(lines, StyleSubtle.Render(fmt.Sprintf("  %-10s", "Strokes"))+
			scoreStyle(cls).Render(fmt.Sprintf("%d  %s", h.Strokes, scoring.Label(h.Strokes, h.Par))))
		lines = append(lines, field("Putts", fmt.Sprintf("%d", h.Putts)))
		lines = append(lines, field("Fairway", flagText(h.FairwayHit))+StyleHelp.Render("  [f]"))
		lines = append(lines, field("GIR", flagText(h.GreenInRegulation))+StyleHelp.Render("  [g]"))
	}

	return RenderPanel(lines, width, height, true)
}

func nineTable(r *scoring.Round, from, current int) []string {
	var hole, par, score strings.Builder
	hole.WriteString(StyleSubtle.Render(" Hole "))
	par.WriteString(StyleSubtle.Render(" Par  "))
	score.WriteString(StyleSubtle.Render(" Score"))

	for n := from; n < from+9; n++ {
		h := r.Hole(n)
		if h == nil {
			continue
		}
		num := fmt.Sprintf("%4d", n)
		if n == current {
			hole.WriteString(StyleCursorRow.Render(num))
		} else {
			hole.WriteString(StyleName.Render(num))
		}
		par.WriteString(StyleSubtle.Render(fmt.Sprintf("%4d", h.Par)))
		score.WriteString(scoreStyle(scoring.Classify(h.Strokes, h.Par)).Render(fmt.Sprintf("%4d", h.Strokes)))
	}

	strokes, p := r.FrontNine()
	label := " OUT"
	if from > 9 {
		strokes, p = r.BackNine()
		label = "  IN"
	}
	hole.WriteString(StyleValue.Render(fmt.Sprintf("%5s", label)))
	par.WriteString(StyleValue.Render(fmt.Sprintf("%5d", p)))
	score.WriteString(StyleValue.Render(fmt.Sprintf("%5d", strokes)))
	return []string{hole.String(), par.String(), score.String()}
}

func flagText(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "hit"
	default:
		return "missed"
	}
}

package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/geo"
)

// RenderCompass draws a compass rose with an arrow pointing along bearing
// (radians, 0=north, clockwise). Nearer balls get a longer arrow.
func RenderCompass(width, height int, bearing, distance float64, signal int) string {
	if width < 9 || height < 5 {
		return ""
	}

	g := newGrid(width, height)

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := math.Max(fcx-2.0, 3)
	ry := math.Max(fcy-2.0, 2)

	for i := 0; i < 80; i++ {
		a := float64(i) * 2 * math.Pi / 80
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if g.get(col, row) == ' ' {
			g.set(col, row, sectorChar(a, `-\|/-\|/`), cellRing)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))
	g.set(cx, cy-int(math.Round(ry))-1, 'N', cellMark)
	g.set(cx, cy+int(math.Round(ry))+1, 'S', cellMark)
	g.set(cx+int(math.Round(rx))+1, cy, 'E', cellMark)
	g.set(cx-int(math.Round(rx))-1, cy, 'W', cellMark)
	g.set(cx, cy, '+', cellMark)

	const maxFrac, minFrac = 0.85, 0.3
	frac := maxFrac - (maxFrac-minFrac)*math.Min(distance/config.MapRange, 1.0)

	steps := int(math.Max(rx, ry) * frac)
	if steps < 2 {
		steps = 2
	}
	tipCol, tipRow := cx, cy
	for s := 1; s <= steps; s++ {
		t := float64(s) / float64(steps) * frac
		col := int(math.Round(fcx + t*rx*math.Sin(bearing)))
		row := int(math.Round(fcy - t*ry*math.Cos(bearing)))
		if g.in(col, row) {
			g.set(col, row, sectorChar(bearing, `|\-/|\-/`), cellArrow)
			tipCol, tipRow = col, row
		}
	}
	g.set(tipCol, tipRow, sectorChar(bearing, `^/>\v/<\`), cellArrow)

	arrowSty := lipgloss.NewStyle().Foreground(lipgloss.Color(proximityColor(signal))).Bold(true)
	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	markSty := lipgloss.NewStyle().Foreground(ColorSand).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := string(g.get(col, row))
			switch g.kind[row][col] {
			case cellMark:
				sb.WriteString(markSty.Render(ch))
			case cellArrow:
				sb.WriteString(arrowSty.Render(ch))
			case cellRing:
				sb.WriteString(ringSty.Render(ch))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellRing
	cellMark
	cellArrow
)

type grid struct {
	w, h  int
	chars [][]byte
	kind  [][]cellKind
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, chars: make([][]byte, h), kind: make([][]cellKind, h)}
	for i := range g.chars {
		g.chars[i] = []byte(strings.Repeat(" ", w))
		g.kind[i] = make([]cellKind, w)
	}
	return g
}

func (g *grid) in(col, row int) bool {
	return col >= 0 && col < g.w && row >= 0 && row < g.h
}

func (g *grid) get(col, row int) byte {
	if !g.in(col, row) {
		return 0
	}
	return g.chars[row][col]
}

func (g *grid) set(col, row int, ch byte, k cellKind) {
	if g.in(col, row) {
		g.chars[row][col] = ch
		g.kind[row][col] = k
	}
}

// sectorChar picks one of eight characters by compass sector, N first.
func sectorChar(a float64, chars string) byte {
	return chars[int(math.Round(geo.NormalizeAngle(a)/(math.Pi/4)))%8]
}

// proximityColor maps signal strength to a green shade, brighter when closer.
func proximityColor(dbm int) string {
	switch {
	case dbm > -50:
		return "#A5D6A7"
	case dbm > -60:
		return "#81C784"
	case dbm > -70:
		return "#66BB6A"
	case dbm > -80:
		return "#43A047"
	default:
		return "#2E7D32"
	}
}

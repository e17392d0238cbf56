package radar

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/geo"
	"jacktrack.app/internal/tracking"
)

var (
	colorFairway  = lipgloss.Color("#4CAF50")
	colorRough    = lipgloss.Color("#2E7D32")
	colorDim      = lipgloss.Color("#1B5E20")
	colorBall     = lipgloss.Color("#FFFFFF")
	colorSelected = lipgloss.Color("#FFD54F")
	colorFlag     = lipgloss.Color("#F44336")
	colorMeasure  = lipgloss.Color("#29B6F6")
	colorCursor   = lipgloss.Color("#FFEB3B")

	styleCenter   = lipgloss.NewStyle().Foreground(colorSelected).Bold(true)
	styleRing     = lipgloss.NewStyle().Foreground(colorRough)
	styleDot      = lipgloss.NewStyle().Foreground(colorDim)
	styleBall     = lipgloss.NewStyle().Foreground(colorBall).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(colorSelected).Bold(true)
	styleFlag     = lipgloss.NewStyle().Foreground(colorFlag).Bold(true)
	styleMeasure  = lipgloss.NewStyle().Foreground(colorMeasure).Bold(true)
	styleCursor   = lipgloss.NewStyle().Foreground(colorCursor).Bold(true).Reverse(true)
	styleLabel    = lipgloss.NewStyle().Foreground(colorFairway)
	styleLabelSel = lipgloss.NewStyle().Foreground(colorSelected)
)

const maxLabelLen = 10

// Scene is everything drawn on the map for one frame.
type Scene struct {
	Player   geo.Point
	Range    float64
	Balls    []tracking.TrackedBall
	Selected string // id of the highlighted ball
	Flag     *geo.Point
	Measure  []geo.Point
	Cursor   *Cell
}

// Cell is a grid position.
type Cell struct {
	Col, Row int
}

type marker struct {
	cell     Cell
	glyph    string
	style    lipgloss.Style
	label    string
	labelCol int
	labelRow int
	labelSty lipgloss.Style
}

// Render produces the map as a styled string of width x height cells.
func Render(width, height int, scene Scene, sweep *Sweep) string {
	if width < 10 || height < 5 {
		return ""
	}

	proj := Projection{Center: scene.Player, Range: scene.Range, Width: width, Height: height}
	centerX, centerY := proj.CenterCell()
	radius := proj.Radius()

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = radius * float64(i+1) / float64(config.RingCount)
	}

	markers := buildMarkers(proj, scene)

	glyphs := make(map[Cell]int, len(markers))
	labels := make(map[Cell]string)
	for i, m := range markers {
		glyphs[m.cell] = i
		for ci := 0; ci < len(m.label); ci++ {
			labels[Cell{m.labelCol + ci, m.labelRow}] = m.labelSty.Render(string(m.label[ci]))
		}
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := Cell{col, row}
			switch {
			case scene.Cursor != nil && *scene.Cursor == c:
				sb.WriteString(styleCursor.Render("x"))
			case hasGlyph(glyphs, c):
				m := markers[glyphs[c]]
				sb.WriteString(m.style.Render(m.glyph))
			case labels[c] != "":
				sb.WriteString(labels[c])
			default:
				sb.WriteString(renderCell(col, row, centerX, centerY, radius, ringRadii, sweep))
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hasGlyph(glyphs map[Cell]int, c Cell) bool {
	_, ok := glyphs[c]
	return ok
}

// buildMarkers places measure points, the flag and balls, in increasing
// priority, and resolves label collisions.
func buildMarkers(proj Projection, scene Scene) []marker {
	var out []marker
	occupied := make(map[int][]segment)

	for i, p := range scene.Measure {
		col, row, _ := proj.Cell(p)
		out = append(out, marker{
			cell:  Cell{col, row},
			glyph: fmt.Sprintf("%d", (i+1)%10),
			style: styleMeasure,
		})
		occupied[row] = append(occupied[row], segment{col, col + 1})
	}

	if scene.Flag != nil {
		col, row, _ := proj.Cell(*scene.Flag)
		m := marker{cell: Cell{col, row}, glyph: "F", style: styleFlag}
		m.label, m.labelCol, m.labelRow = placeLabel(occupied, col, row, "FLAG", proj.Width)
		m.labelSty = styleFlag
		out = append(out, m)
	}

	for _, b := range scene.Balls {
		col, row, inside := proj.Cell(b.Position)
		m := marker{cell: Cell{col, row}, glyph: "o", style: styleBall, labelSty: styleLabel}
		if !inside {
			m.glyph = ">"
		}
		if b.ID == scene.Selected {
			m.glyph = "@"
			m.style = styleSelected
			m.labelSty = styleLabelSel
		}
		m.label, m.labelCol, m.labelRow = placeLabel(occupied, col, row, callsign(b), proj.Width)
		out = append(out, m)
	}
	return out
}

type segment struct{ start, end int }

// placeLabel tries right of the glyph, then the rows below and above. The
// label is dropped if all three collide.
func placeLabel(occupied map[int][]segment, col, row int, label string, width int) (string, int, int) {
	occupied[row] = append(occupied[row], segment{col, col + 1})

	lc := col + 2
	if lc+len(label) >= width {
		lc = col - len(label) - 1
	}
	if lc < 0 {
		lc = 0
	}

	for _, lr := range []int{row, row + 1, row - 1} {
		if collides(occupied[lr], lc, lc+len(label)) {
			continue
		}
		occupied[lr] = append(occupied[lr], segment{lc, lc + len(label)})
		return label, lc, lr
	}
	return "", 0, 0
}

func collides(segs []segment, start, end int) bool {
	for _, s := range segs {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

func callsign(b tracking.TrackedBall) string {
	name := b.DisplayName()
	if len(name) > maxLabelLen {
		name = name[:maxLabelLen]
	}
	return name
}

func renderCell(col, row, centerX, centerY int, radius float64, ringRadii []float64, sweep *Sweep) string {
	dist := CellDistance(col, row, centerX, centerY)
	angle := CellAngle(col, row, centerX, centerY)

	if dist > radius+0.5 {
		return " "
	}
	if col == centerX && row == centerY {
		return styleCenter.Render("+")
	}
	for _, ringR := range ringRadii {
		if math.Abs(dist-ringR) < 0.8 {
			return renderSweepChar(RingChar(angle), sweep, angle)
		}
	}
	if dist <= radius {
		return renderSweepChar('.', sweep, angle)
	}
	return " "
}

func renderSweepChar(ch rune, sweep *Sweep, angle float64) string {
	intensity := sweep.Intensity(angle)
	color := sweepColor(intensity)
	if color == "" {
		if ch == '.' {
			return styleDot.Render(".")
		}
		return styleRing.Render(string(ch))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(ch))
}

func sweepColor(intensity float64) string {
	switch {
	case intensity <= 0:
		return ""
	case intensity > 0.8:
		return "#A5D6A7"
	case intensity > 0.5:
		return "#81C784"
	case intensity > 0.3:
		return "#66BB6A"
	default:
		return "#388E3C"
	}
}

// RenderLegend produces the legend line under the map.
func RenderLegend(width int, rangeM float64) string {
	legend := styleCenter.Render("+ you") + "  " +
		styleBall.Render("o ball") + "  " +
		styleFlag.Render("F flag") + "  " +
		styleMeasure.Render("1 measure") + "  " +
		styleRing.Render(fmt.Sprintf("ring %.0fm", rangeM/float64(config.RingCount)))

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}

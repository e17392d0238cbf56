package radar

import (
	"math"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/geo"
)

// CellDistance computes the distance from a cell to the map center in
// cells, accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the angle from center to a cell.
// Returns radians in [0, 2π), where 0=north, increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return geo.NormalizeAngle(math.Atan2(dx, -dy))
}

// RingChar returns the character drawn for a range ring at the given angle.
func RingChar(angle float64) rune {
	switch int(math.Round(geo.NormalizeAngle(angle)/(math.Pi/4))) % 4 {
	case 0:
		return '-'
	case 1:
		return '/'
	case 2:
		return '|'
	default:
		return '\\'
	}
}

// AngleDiff returns the shortest angular distance between two angles.
// Result is in [0, π].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(geo.NormalizeAngle(a) - geo.NormalizeAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// Projection maps geographic points onto a character grid centred on the
// player. Range is the distance in meters from the centre to the edge.
type Projection struct {
	Center        geo.Point
	Range         float64
	Width, Height int
}

// CenterCell returns the grid cell of the player.
func (p Projection) CenterCell() (col, row int) {
	return p.Width / 2, p.Height / 2
}

// Radius is the map radius in cells.
func (p Projection) Radius() float64 {
	cx, cy := p.CenterCell()
	r := float64(min(cx-1, int(float64(cy-1)/config.AspectRatio)))
	if r < 3 {
		r = 3
	}
	return r
}

// MetersPerCell is the horizontal scale of the grid.
func (p Projection) MetersPerCell() float64 {
	return p.Range / p.Radius()
}

// Cell returns the grid position of pt. Points beyond the range are pinned
// to the edge along their bearing and reported with inside=false.
func (p Projection) Cell(pt geo.Point) (col, row int, inside bool) {
	cx, cy := p.CenterCell()
	dist := geo.Distance(p.Center, pt)
	bearing := geo.Bearing(p.Center, pt)

	radius := p.Radius()
	r := dist / p.Range * radius
	inside = dist <= p.Range
	if !inside {
		r = radius
	}
	col = cx + int(math.Round(r*math.Sin(bearing)))
	row = cy - int(math.Round(r*math.Cos(bearing)*config.AspectRatio))
	return col, row, inside
}

// Point converts a grid cell back to a coordinate.
func (p Projection) Point(col, row int) geo.Point {
	cx, cy := p.CenterCell()
	if col == cx && row == cy {
		return p.Center
	}
	dist := CellDistance(col, row, cx, cy) * p.MetersPerCell()
	return geo.Destination(p.Center, CellAngle(col, row, cx, cy), dist)
}

// FlagNear returns the mock flag position for the current hole: a fixed
// offset north-east of the player.
func FlagNear(player geo.Point) geo.Point {
	return geo.Offset(player, config.HoleFlagOffset, config.HoleFlagOffset)
}

// ClampRange keeps a map range within the configured bounds.
func ClampRange(r float64) float64 {
	return math.Max(config.MapRangeMin, math.Min(config.MapRangeMax, r))
}

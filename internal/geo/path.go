package geo

// Path is the ordered point sequence of the measurement tool. It lives only
// for the UI session and is never persisted.
type Path struct {
	points []Point
}

// Add appends a point to the path.
func (p *Path) Add(pt Point) {
	p.points = append(p.points, pt)
}

// Clear drops all points.
func (p *Path) Clear() {
	p.points = nil
}

// Len returns the number of points.
func (p *Path) Len() int {
	return len(p.points)
}

// Points returns a copy of the points in insertion order.
func (p *Path) Points() []Point {
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}

// Length returns the cumulative open-path length in meters.
func (p *Path) Length() float64 {
	return PathLength(p.points)
}

// Segments returns the length of each leg; len is Len()-1 (or 0).
func (p *Path) Segments() []float64 {
	if len(p.points) < 2 {
		return nil
	}
	out := make([]float64, 0, len(p.points)-1)
	for i := 1; i < len(p.points); i++ {
		out = append(out, Distance(p.points[i-1], p.points[i]))
	}
	return out
}

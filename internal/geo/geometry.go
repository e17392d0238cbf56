package geo

import (
	"math"

	"jacktrack.app/internal/config"
)

// Point is a geographic position in decimal degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Distance returns the great-circle distance between a and b in meters
// using the haversine formula. Inputs outside the valid lat/lon ranges
// produce a defined but meaningless result.
func Distance(a, b Point) float64 {
	phi1 := toRad(a.Lat)
	phi2 := toRad(b.Lat)
	dPhi := toRad(b.Lat - a.Lat)
	dLambda := toRad(b.Lon - a.Lon)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// Rounding can push h just past 1 near the antipode.
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return config.EarthRadiusM * c
}

// PathLength sums the distances between consecutive points. The path is
// open: the last point is not joined back to the first.
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Bearing returns the initial bearing from a to b.
// Returns radians in [0, 2π), where 0=north, increasing clockwise.
func Bearing(a, b Point) float64 {
	phi1 := toRad(a.Lat)
	phi2 := toRad(b.Lat)
	dLambda := toRad(b.Lon - a.Lon)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	return NormalizeAngle(math.Atan2(y, x))
}

// Destination returns the point reached by travelling meters from p along
// the given bearing (radians, 0=north, clockwise).
func Destination(p Point, bearing, meters float64) Point {
	delta := meters / config.EarthRadiusM
	phi1 := toRad(p.Lat)
	lambda1 := toRad(p.Lon)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(bearing))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(bearing)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	lon := toDeg(lambda2)
	// Wrap to [-180, 180)
	lon = math.Mod(lon+540, 360) - 180
	return Point{Lat: toDeg(phi2), Lon: lon}
}

// Offset shifts p by the given number of degrees.
func Offset(p Point, dLat, dLon float64) Point {
	return Point{Lat: p.Lat + dLat, Lon: p.Lon + dLon}
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// CompassPoint returns the 8-wind label for a bearing in radians.
func CompassPoint(a float64) string {
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int(math.Round(NormalizeAngle(a)/(math.Pi/4))) % 8
	return dirs[idx]
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

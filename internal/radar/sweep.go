package radar

import (
	"math"
	"time"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/geo"
)

// Sweep is the rotating highlight drawn over the map while a scan runs.
type Sweep struct {
	Angle     float64 // radians [0, 2π)
	StartTime time.Time
}

// NewSweep creates a sweep pointing north at start.
func NewSweep(start time.Time) *Sweep {
	return &Sweep{StartTime: start}
}

// Update advances the sweep angle to now.
func (s *Sweep) Update(now time.Time) {
	elapsed := now.Sub(s.StartTime).Seconds()
	rps := float64(config.SweepSpeedRPM) / 60.0
	s.Angle = geo.NormalizeAngle(elapsed * rps * 2 * math.Pi)
}

// Degrees returns the current sweep angle in degrees.
func (s *Sweep) Degrees() float64 {
	return s.Angle * 180 / math.Pi
}

// Intensity returns the glow in [0, 1] for a cell angle: 1 at the sweep
// head falling linearly to 0 at the end of the trail.
func (s *Sweep) Intensity(cellAngle float64) float64 {
	if s == nil {
		return 0
	}
	diff := geo.NormalizeAngle(s.Angle - cellAngle)
	trailRad := config.SweepTrailDeg * math.Pi / 180.0
	if diff > trailRad {
		return 0
	}
	return 1.0 - diff/trailRad
}

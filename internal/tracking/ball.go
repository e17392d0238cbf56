package tracking

import (
	"math"
	"time"

	"jacktrack.app/internal/geo"
)

// TrackedBall is a connected tracker's latest telemetry.
type TrackedBall struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	BatteryPercent int       `json:"batteryLevel"`
	SignalDBm      int       `json:"signalStrength"`
	Position       geo.Point `json:"location"`
	ConnectedAt    time.Time `json:"connectedAt"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// DisplayName returns the tracker name or "[unnamed]" if empty.
func (b *TrackedBall) DisplayName() string {
	return displayName(b.Name)
}

// DistanceFrom is the haversine distance from p to the ball in meters.
func (b *TrackedBall) DistanceFrom(p geo.Point) float64 {
	return geo.Distance(p, b.Position)
}

// DiscoveredBall is a tracker seen by a scan but not yet connected.
type DiscoveredBall struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BatteryPercent int    `json:"batteryLevel"`
	SignalDBm      int    `json:"signalStrength"`
}

// DisplayName returns the tracker name or "[unnamed]" if empty.
func (d *DiscoveredBall) DisplayName() string {
	return displayName(d.Name)
}

// EstimatedRange is the signal-based distance estimate in meters.
func (d *DiscoveredBall) EstimatedRange(measuredPower, pathLossExp float64) float64 {
	return SignalToDistance(float64(d.SignalDBm), measuredPower, pathLossExp)
}

func displayName(name string) string {
	if name == "" {
		return "[unnamed]"
	}
	return name
}

// SignalToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func SignalToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}

// SignalQuality buckets a reading the way the tracking screen colours it.
type SignalQuality int

const (
	SignalWeak SignalQuality = iota
	SignalMedium
	SignalStrong
)

// QualityOf classifies an RSSI reading.
func QualityOf(dbm int) SignalQuality {
	switch {
	case dbm > -40:
		return SignalStrong
	case dbm > -60:
		return SignalMedium
	default:
		return SignalWeak
	}
}

// BatteryLevel buckets a battery percentage.
type BatteryLevel int

const (
	BatteryLow BatteryLevel = iota
	BatteryMedium
	BatteryHigh
)

// BatteryLevelOf classifies a battery percentage.
func BatteryLevelOf(pct int) BatteryLevel {
	switch {
	case pct > 50:
		return BatteryHigh
	case pct > 20:
		return BatteryMedium
	default:
		return BatteryLow
	}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

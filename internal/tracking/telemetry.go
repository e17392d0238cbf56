package tracking

import (
	"math/rand"

	"github.com/rs/zerolog/log"
)

// Telemetry simulates tracker updates in demo mode: battery drains slowly,
// signal wanders and balls drift a few meters.
type Telemetry struct {
	store *BallStore
	rng   *rand.Rand
}

// NewTelemetry creates a simulator over store using rng.
func NewTelemetry(store *BallStore, rng *rand.Rand) *Telemetry {
	return &Telemetry{store: store, rng: rng}
}

// Step applies one round of drift to every connected ball.
func (t *Telemetry) Step() {
	for _, b := range t.store.Snapshot() {
		if t.rng.Intn(10) == 0 {
			if err := t.store.UpdateBattery(b.ID, b.BatteryPercent-1); err != nil {
				continue
			}
		}

		sig := b.SignalDBm + t.rng.Intn(7) - 3
		if sig > -30 {
			sig = -30
		}
		if sig < -95 {
			sig = -95
		}
		if err := t.store.UpdateSignal(b.ID, sig); err != nil {
			continue
		}

		dLat := (t.rng.Float64() - 0.5) * 0.00002
		dLon := (t.rng.Float64() - 0.5) * 0.00002
		p := b.Position
		p.Lat += dLat
		p.Lon += dLon
		if err := t.store.UpdateLocation(b.ID, p); err != nil {
			log.Debug().Err(err).Msg("telemetry skipped ball")
		}
	}
}

package tracking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/geo"
)

var mockTrackers = []DiscoveredBall{
	{ID: "C0:FF:EE:00:00:01", Name: "Golf Ball #1", BatteryPercent: 85, SignalDBm: -45},
	{ID: "C0:FF:EE:00:00:02", Name: "Golf Ball #2", BatteryPercent: 65, SignalDBm: -60},
	{ID: "C0:FF:EE:00:00:03", Name: "Pro Golf Ball", BatteryPercent: 92, SignalDBm: -35},
}

// MockProvider reports a fixed set of trackers after a delay, for demo mode.
type MockProvider struct {
	delay time.Duration
}

// NewMockProvider creates a mock provider. A zero delay uses config.ScanDelay.
func NewMockProvider(delay time.Duration) *MockProvider {
	if delay == 0 {
		delay = config.ScanDelay
	}
	return &MockProvider{delay: delay}
}

// Discover waits out the delay and returns the sample trackers, or the
// context error if cancelled first.
func (p *MockProvider) Discover(ctx context.Context) ([]DiscoveredBall, error) {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	out := make([]DiscoveredBall, len(mockTrackers))
	copy(out, mockTrackers)
	return out, nil
}

// SeedDemoBalls connects two sample balls near home, as a fresh install in
// demo mode shows them.
func SeedDemoBalls(store *BallStore, home geo.Point) {
	now := store.now()
	seed := []TrackedBall{
		{
			ID:             "ball_1",
			Name:           "Pro Golf Ball #1",
			BatteryPercent: 85,
			SignalDBm:      -45,
			Position:       geo.Offset(home, 0.001, 0.001),
		},
		{
			ID:             "ball_2",
			Name:           "Golf Ball #2",
			BatteryPercent: 72,
			SignalDBm:      -55,
			Position:       geo.Offset(home, -0.0015, 0.002),
		},
	}
	for _, b := range seed {
		b.ConnectedAt = now
		b.LastUpdated = now
		if err := store.AddBall(b); err != nil {
			log.Debug().Err(err).Str("ball", b.ID).Msg("demo ball not seeded")
		}
	}
}

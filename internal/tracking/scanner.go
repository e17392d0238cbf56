package tracking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"tinygo.org/x/bluetooth"

	"jacktrack.app/internal/config"
)

// Provider eventually produces zero or more discoverable trackers. It may
// also never return; callers bound it with ctx.
type Provider interface {
	Discover(ctx context.Context) ([]DiscoveredBall, error)
}

// BLEProvider discovers ball trackers with a Bluetooth Low Energy scan.
type BLEProvider struct {
	adapter *bluetooth.Adapter
	window  time.Duration
}

// NewBLEProvider creates a provider on the default adapter that listens for
// window per scan. A zero window uses config.BLEScanWindow.
func NewBLEProvider(window time.Duration) *BLEProvider {
	if window == 0 {
		window = config.BLEScanWindow
	}
	return &BLEProvider{
		adapter: bluetooth.DefaultAdapter,
		window:  window,
	}
}

// Enable powers up the adapter. Called once before the first scan so a
// permissions problem surfaces at startup.
func (p *BLEProvider) Enable() error {
	if err := p.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}
	return nil
}

// Discover listens for advertisements for the scan window and returns the
// trackers seen, strongest signal kept per address.
func (p *BLEProvider) Discover(ctx context.Context) ([]DiscoveredBall, error) {
	scanCtx, cancel := context.WithTimeout(ctx, p.window)
	defer cancel()

	var mu sync.Mutex
	found := make(map[string]DiscoveredBall)
	var order []string

	errc := make(chan error, 1)
	go func() {
		errc <- p.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			ad := advertisement{
				address: result.Address.String(),
				name:    result.LocalName(),
				rssi:    result.RSSI,
				battery: -1,
			}
			for _, m := range result.ManufacturerData() {
				if m.CompanyID == config.TrackerCompanyID && len(m.Data) > 0 {
					ad.battery = int(m.Data[0])
				}
			}

			ball, ok := parseAdvertisement(ad)
			if !ok {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			prev, seen := found[ball.ID]
			if !seen {
				order = append(order, ball.ID)
			}
			if !seen || ball.SignalDBm > prev.SignalDBm {
				if ball.BatteryPercent < 0 && seen {
					ball.BatteryPercent = prev.BatteryPercent
				}
				found[ball.ID] = ball
			}
		})
	}()

	select {
	case err := <-errc:
		if err != nil {
			return nil, fmt.Errorf("ble scan: %w", err)
		}
	case <-scanCtx.Done():
		if err := p.adapter.StopScan(); err != nil {
			log.Warn().Err(err).Msg("stop scan")
		}
		<-errc
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]DiscoveredBall, 0, len(order))
	for _, id := range order {
		b := found[id]
		if b.BatteryPercent < 0 {
			b.BatteryPercent = 0
		}
		out = append(out, b)
	}
	log.Debug().Int("found", len(out)).Msg("ble scan finished")
	return out, nil
}

// advertisement is the subset of a scan result a tracker is identified by.
// battery is -1 when the advertisement carried no battery byte.
type advertisement struct {
	address string
	name    string
	rssi    int16
	battery int
}

// parseAdvertisement keeps only advertisements whose local name marks a
// ball tracker.
func parseAdvertisement(ad advertisement) (DiscoveredBall, bool) {
	name := strings.TrimSpace(ad.name)
	if !isTrackerName(name) {
		return DiscoveredBall{}, false
	}
	battery := ad.battery
	if battery > 100 {
		battery = 100
	}
	return DiscoveredBall{
		ID:             strings.ToUpper(ad.address),
		Name:           name,
		BatteryPercent: battery,
		SignalDBm:      int(ad.rssi),
	}, true
}

func isTrackerName(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, strings.ToLower(config.TrackerNamePrefix)) ||
		strings.Contains(lower, "golf ball")
}

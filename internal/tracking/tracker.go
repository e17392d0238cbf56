package tracking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/geo"
)

var (
	// ErrScanInProgress is returned when a scan is started while one runs.
	ErrScanInProgress = errors.New("scan already in progress")
	// ErrBluetoothDisabled is returned when scanning with bluetooth off.
	ErrBluetoothDisabled = errors.New("bluetooth is disabled")
	// ErrScanCancelled is the result of a scan that was cancelled or replaced.
	ErrScanCancelled = errors.New("scan cancelled")
)

// Tracker coordinates discovery and connection on top of a BallStore.
type Tracker struct {
	mu         sync.Mutex
	store      *BallStore
	provider   Provider
	discovered []DiscoveredBall
	active     *Scan
	seq        uint64

	jitter func() float64
}

// NewTracker creates a tracker feeding store from provider.
func NewTracker(store *BallStore, provider Provider) *Tracker {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var rngMu sync.Mutex
	return &Tracker{
		store:    store,
		provider: provider,
		jitter: func() float64 {
			rngMu.Lock()
			defer rngMu.Unlock()
			return rng.Float64()
		},
	}
}

// Store returns the underlying ball store.
func (t *Tracker) Store() *BallStore {
	return t.store
}

// Scan is one cancellable discovery run.
type Scan struct {
	id      uint64
	tracker *Tracker
	cancel  context.CancelFunc
	done    chan struct{}

	devices []DiscoveredBall
	err     error
}

// ID identifies the scan; later scans have larger ids.
func (s *Scan) ID() uint64 { return s.id }

// Done is closed once the scan has finished or been cancelled.
func (s *Scan) Done() <-chan struct{} { return s.done }

// Cancel stops the scan. Its results, if any arrive, are discarded.
func (s *Scan) Cancel() {
	s.tracker.release(s)
	s.cancel()
}

// Wait blocks until the scan finishes and returns what it found.
func (s *Scan) Wait(ctx context.Context) ([]DiscoveredBall, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return s.devices, s.err
	}
}

// StartScan begins a discovery run. Results replace the discovered list
// only if the scan is still the active one when it completes.
func (t *Tracker) StartScan(ctx context.Context) (*Scan, error) {
	if !t.store.BluetoothEnabled() {
		return nil, ErrBluetoothDisabled
	}

	t.mu.Lock()
	if t.active != nil {
		t.mu.Unlock()
		return nil, ErrScanInProgress
	}
	t.seq++
	scanCtx, cancel := context.WithCancel(ctx)
	s := &Scan{id: t.seq, tracker: t, cancel: cancel, done: make(chan struct{})}
	t.active = s
	t.mu.Unlock()

	t.store.SetScanning(true)
	log.Info().Uint64("scan", s.id).Msg("scan started")

	go t.run(scanCtx, s)
	return s, nil
}

func (t *Tracker) run(ctx context.Context, s *Scan) {
	devices, err := t.provider.Discover(ctx)
	t.finish(ctx, s, devices, err)
}

func (t *Tracker) finish(ctx context.Context, s *Scan, devices []DiscoveredBall, err error) {
	t.mu.Lock()
	current := t.active == s
	if current {
		t.active = nil
	}
	cancelled := !current || ctx.Err() != nil

	switch {
	case cancelled:
		s.err = ErrScanCancelled
	case err != nil:
		s.err = fmt.Errorf("discover: %w", err)
	default:
		s.devices = t.withoutConnected(devices)
		t.discovered = append([]DiscoveredBall(nil), s.devices...)
	}
	t.mu.Unlock()

	if current {
		t.store.SetScanning(false)
	}
	s.cancel()
	close(s.done)

	if s.err != nil {
		log.Warn().Err(s.err).Uint64("scan", s.id).Msg("scan ended without results")
		return
	}
	log.Info().Uint64("scan", s.id).Int("found", len(s.devices)).Msg("scan finished")
}

// withoutConnected drops devices that are already connected. Caller holds t.mu.
func (t *Tracker) withoutConnected(devices []DiscoveredBall) []DiscoveredBall {
	out := make([]DiscoveredBall, 0, len(devices))
	for _, d := range devices {
		if _, ok := t.store.Get(d.ID); ok {
			continue
		}
		out = append(out, d)
	}
	return out
}

// release forgets s if it is the active scan.
func (t *Tracker) release(s *Scan) {
	t.mu.Lock()
	current := t.active == s
	if current {
		t.active = nil
	}
	t.mu.Unlock()
	if current {
		t.store.SetScanning(false)
	}
}

// CancelScan cancels the active scan, if any.
func (t *Tracker) CancelScan() {
	t.mu.Lock()
	s := t.active
	t.mu.Unlock()
	if s != nil {
		s.Cancel()
	}
}

// Scanning reports whether a scan is active.
func (t *Tracker) Scanning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active != nil
}

// SetBluetoothEnabled updates the store flag; turning bluetooth off also
// cancels any running scan.
func (t *Tracker) SetBluetoothEnabled(enabled bool) {
	t.store.SetBluetoothEnabled(enabled)
	if !enabled {
		t.CancelScan()
	}
}

// Discovered returns a copy of the last scan's trackers not yet connected.
func (t *Tracker) Discovered() []DiscoveredBall {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]DiscoveredBall, len(t.discovered))
	copy(out, t.discovered)
	return out
}

// Connect moves a discovered tracker into the store, giving it a synthetic
// position near the player.
func (t *Tracker) Connect(id string, near geo.Point) (TrackedBall, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i := range t.discovered {
		if t.discovered[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return TrackedBall{}, fmt.Errorf("%s: %w", id, ErrBallNotFound)
	}

	d := t.discovered[idx]
	now := t.store.now()
	ball := TrackedBall{
		ID:             d.ID,
		Name:           d.Name,
		BatteryPercent: d.BatteryPercent,
		SignalDBm:      d.SignalDBm,
		Position: geo.Offset(near,
			(t.jitter()-0.5)*config.ConnectJitterDeg,
			(t.jitter()-0.5)*config.ConnectJitterDeg),
		ConnectedAt: now,
		LastUpdated: now,
	}
	if err := t.store.AddBall(ball); err != nil {
		return TrackedBall{}, err
	}
	rest := make([]DiscoveredBall, 0, len(t.discovered)-1)
	rest = append(rest, t.discovered[:idx]...)
	t.discovered = append(rest, t.discovered[idx+1:]...)

	log.Info().Str("ball", ball.ID).Str("name", ball.Name).Msg("ball connected")
	return ball, nil
}

// Disconnect removes a connected ball.
func (t *Tracker) Disconnect(id string) error {
	if !t.store.RemoveBall(id) {
		return fmt.Errorf("%s: %w", id, ErrBallNotFound)
	}
	log.Info().Str("ball", id).Msg("ball disconnected")
	return nil
}

package tracking

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"jacktrack.app/internal/geo"
)

var (
	// ErrBallNotFound is returned when no connected ball has the given id.
	ErrBallNotFound = errors.New("ball not found")
	// ErrDuplicateBall is returned when adding a ball whose id is already connected.
	ErrDuplicateBall = errors.New("ball already connected")
)

// BallStore is a thread-safe store for connected balls, kept in connection
// order, plus the scanning and bluetooth flags.
type BallStore struct {
	mu        sync.RWMutex
	balls     []TrackedBall
	scanning  bool
	bluetooth bool

	now func() time.Time
}

// NewBallStore creates an empty store with bluetooth enabled.
func NewBallStore() *BallStore {
	return &BallStore{
		bluetooth: true,
		now:       time.Now,
	}
}

// AddBall appends a ball. An id that is already connected is rejected so
// lookups by id stay unambiguous.
func (s *BallStore) AddBall(b TrackedBall) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(b.ID) >= 0 {
		return fmt.Errorf("%s: %w", b.ID, ErrDuplicateBall)
	}
	if b.LastUpdated.IsZero() {
		b.LastUpdated = s.now()
	}
	if b.ConnectedAt.IsZero() {
		b.ConnectedAt = b.LastUpdated
	}
	b.BatteryPercent = clampPercent(b.BatteryPercent)
	s.balls = append(s.balls, b)
	return nil
}

// RemoveBall removes every entry with id. Returns false if none matched.
func (s *BallStore) RemoveBall(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.balls[:0]
	removed := false
	for _, b := range s.balls {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	// Clear the tail so dropped entries do not linger in the backing array.
	for i := len(kept); i < len(s.balls); i++ {
		s.balls[i] = TrackedBall{}
	}
	s.balls = kept
	return removed
}

// UpdateLocation replaces the ball's position and refreshes LastUpdated.
func (s *BallStore) UpdateLocation(id string, p geo.Point) error {
	return s.update(id, func(b *TrackedBall) { b.Position = p })
}

// UpdateBattery replaces the battery level (clamped to 0..100) and
// refreshes LastUpdated.
func (s *BallStore) UpdateBattery(id string, level int) error {
	return s.update(id, func(b *TrackedBall) { b.BatteryPercent = clampPercent(level) })
}

// UpdateSignal replaces the signal reading and refreshes LastUpdated.
func (s *BallStore) UpdateSignal(id string, dbm int) error {
	return s.update(id, func(b *TrackedBall) { b.SignalDBm = dbm })
}

func (s *BallStore) update(id string, fn func(b *TrackedBall)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrBallNotFound)
	}
	fn(&s.balls[i])
	s.balls[i].LastUpdated = s.now()
	return nil
}

func (s *BallStore) indexOf(id string) int {
	for i := range s.balls {
		if s.balls[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the ball with id.
func (s *BallStore) Get(id string) (TrackedBall, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return TrackedBall{}, false
	}
	return s.balls[i], true
}

// Snapshot returns a copy of all balls in connection order.
func (s *BallStore) Snapshot() []TrackedBall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TrackedBall, len(s.balls))
	copy(out, s.balls)
	return out
}

// Count returns the number of connected balls.
func (s *BallStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.balls)
}

// Stale returns the ids of balls whose telemetry is older than timeout.
func (s *BallStore) Stale(timeout time.Duration) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-timeout)
	var ids []string
	for _, b := range s.balls {
		if b.LastUpdated.Before(cutoff) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// SetScanning sets the scanning flag.
func (s *BallStore) SetScanning(v bool) {
	s.mu.Lock()
	s.scanning = v
	s.mu.Unlock()
}

// Scanning reports the scanning flag.
func (s *BallStore) Scanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanning
}

// SetBluetoothEnabled sets the bluetooth flag.
func (s *BallStore) SetBluetoothEnabled(v bool) {
	s.mu.Lock()
	s.bluetooth = v
	s.mu.Unlock()
}

// BluetoothEnabled reports the bluetooth flag.
func (s *BallStore) BluetoothEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bluetooth
}

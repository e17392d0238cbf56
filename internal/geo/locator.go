package geo

import (
	"context"
	"errors"
	"sync"
)

// ErrPermissionDenied is returned when location services are turned off.
var ErrPermissionDenied = errors.New("location permission denied")

// Locator supplies the current device position on demand.
type Locator interface {
	CurrentPosition(ctx context.Context) (Point, error)
}

// StaticLocator reports a fixed position. It stands in for a GPS receiver,
// which a terminal host does not have.
type StaticLocator struct {
	mu      sync.RWMutex
	pos     Point
	enabled bool
}

// NewStaticLocator creates an enabled locator at pos.
func NewStaticLocator(pos Point) *StaticLocator {
	return &StaticLocator{pos: pos, enabled: true}
}

// CurrentPosition returns the configured position, or ErrPermissionDenied
// while disabled.
func (l *StaticLocator) CurrentPosition(ctx context.Context) (Point, error) {
	if err := ctx.Err(); err != nil {
		return Point{}, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.enabled {
		return Point{}, ErrPermissionDenied
	}
	return l.pos, nil
}

// SetEnabled mirrors the location-services preference.
func (l *StaticLocator) SetEnabled(enabled bool) {
	l.mu.Lock()
	l.enabled = enabled
	l.mu.Unlock()
}

// Move sets a new position.
func (l *StaticLocator) Move(p Point) {
	l.mu.Lock()
	l.pos = p
	l.mu.Unlock()
}

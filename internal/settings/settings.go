package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"jacktrack.app/internal/storage"
)

const storageKey = "settings"

// Key names a toggleable preference.
type Key string

const (
	Bluetooth     Key = "bluetooth"
	Location      Key = "location"
	Notifications Key = "notifications"
	Sound         Key = "sound"
	Vibration     Key = "vibration"
)

// Keys lists the preferences in display order.
var Keys = []Key{Bluetooth, Location, Notifications, Sound, Vibration}

// ErrUnknownKey is returned for a preference that does not exist.
var ErrUnknownKey = errors.New("unknown setting")

// Settings are the user's preferences. Everything defaults to on.
type Settings struct {
	Bluetooth     bool `json:"bluetooth"`
	Location      bool `json:"location"`
	Notifications bool `json:"notifications"`
	Sound         bool `json:"sound"`
	Vibration     bool `json:"vibration"`
}

// Defaults returns the initial preferences.
func Defaults() Settings {
	return Settings{Bluetooth: true, Location: true, Notifications: true, Sound: true, Vibration: true}
}

// Get reports the value of k.
func (s Settings) Get(k Key) (bool, error) {
	p, err := s.field(k)
	if err != nil {
		return false, err
	}
	return *p, nil
}

func (s *Settings) field(k Key) (*bool, error) {
	switch k {
	case Bluetooth:
		return &s.Bluetooth, nil
	case Location:
		return &s.Location, nil
	case Notifications:
		return &s.Notifications, nil
	case Sound:
		return &s.Sound, nil
	case Vibration:
		return &s.Vibration, nil
	}
	return nil, fmt.Errorf("%q: %w", k, ErrUnknownKey)
}

// Title returns the display name of k.
func (k Key) Title() string {
	switch k {
	case Bluetooth:
		return "Bluetooth"
	case Location:
		return "Location Services"
	case Notifications:
		return "Push Notifications"
	case Sound:
		return "Sound Effects"
	case Vibration:
		return "Vibration"
	}
	return string(k)
}

// Subtitle is the one-line description shown under the title.
func (k Key) Subtitle() string {
	switch k {
	case Bluetooth:
		return "Connect to golf ball trackers"
	case Location:
		return "GPS tracking for ball positioning"
	case Notifications:
		return "Game updates and reminders"
	case Sound:
		return "Audio feedback for actions"
	case Vibration:
		return "Haptic feedback"
	}
	return ""
}

// Store keeps the settings in memory and persists every change to a KV.
// Observers registered with OnChange run after each successful toggle.
type Store struct {
	mu        sync.RWMutex
	kv        storage.KV
	current   Settings
	observers []func(Settings)
}

// NewStore creates a store holding the defaults. Call Load to read saved values.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, current: Defaults()}
}

// Load reads saved settings. Missing or corrupt data keeps the defaults; a
// corrupt blob is reported as storage.ErrMalformed.
func (s *Store) Load(ctx context.Context) (Settings, error) {
	data, err := s.kv.Get(ctx, storageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s.Get(), nil
	}
	if err != nil {
		return s.Get(), err
	}

	loaded := Defaults()
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Warn().Err(err).Msg("ignoring malformed settings")
		return s.Get(), fmt.Errorf("settings: %w: %v", storage.ErrMalformed, err)
	}

	s.mu.Lock()
	s.current = loaded
	obs := append([]func(Settings){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range obs {
		fn(loaded)
	}
	return loaded, nil
}

// Get returns the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnChange registers fn to run with the new settings after every change.
func (s *Store) OnChange(fn func(Settings)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Toggle flips k and persists the result. If persisting fails the change is
// rolled back and the error returned.
func (s *Store) Toggle(ctx context.Context, k Key) (Settings, error) {
	s.mu.Lock()
	next := s.current
	p, err := next.field(k)
	if err != nil {
		s.mu.Unlock()
		return s.Get(), err
	}
	*p = !*p

	data, err := json.Marshal(next)
	if err != nil {
		s.mu.Unlock()
		return s.Get(), err
	}
	if err := s.kv.Set(ctx, storageKey, data); err != nil {
		s.mu.Unlock()
		log.Error().Err(err).Str("setting", string(k)).Msg("error saving settings")
		return s.Get(), fmt.Errorf("save settings: %w", err)
	}
	s.current = next
	obs := append([]func(Settings){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range obs {
		fn(next)
	}
	return next, nil
}

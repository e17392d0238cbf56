package app

import (
	"time"

	"jacktrack.app/internal/geo"
	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/settings"
	"jacktrack.app/internal/tracking"
)

// TickMsg triggers a frame update for animation.
type TickMsg time.Time

// TelemetryMsg triggers a telemetry step and signal history sample.
type TelemetryMsg time.Time

// ScanDoneMsg reports the end of a discovery run.
type ScanDoneMsg struct {
	ScanID uint64
	Found  []tracking.DiscoveredBall
	Err    error
}

// SavedMsg reports the result of persisting the round.
type SavedMsg struct {
	Err error
}

// LoadedMsg reports the result of loading a saved round.
type LoadedMsg struct {
	ID  string
	Err error
}

// DeletedMsg reports the result of deleting a saved round.
type DeletedMsg struct {
	ID  string
	Err error
}

// HistoryMsg carries the saved round summaries.
type HistoryMsg struct {
	Summaries []scoring.Summary
	Err       error
}

// PositionMsg carries a location fix.
type PositionMsg struct {
	Pos geo.Point
	Err error
}

// SettingsMsg reports a toggled preference.
type SettingsMsg struct {
	Key      settings.Key
	Settings settings.Settings
	Err      error
}

// statusExpiredMsg clears the status message it was issued for.
type statusExpiredMsg struct {
	seq int
}

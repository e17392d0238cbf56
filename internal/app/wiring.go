package app

import (
	"github.com/rs/zerolog/log"

	"jacktrack.app/internal/settings"
	"jacktrack.app/internal/tracking"
)

// LocationSwitch is a locator that can be turned off by the user.
type LocationSwitch interface {
	SetEnabled(enabled bool)
}

// BindSettings applies the bluetooth and location preferences now and on
// every later change.
func BindSettings(store *settings.Store, tracker *tracking.Tracker, loc LocationSwitch) {
	apply := func(s settings.Settings) {
		tracker.SetBluetoothEnabled(s.Bluetooth)
		if loc != nil {
			loc.SetEnabled(s.Location)
		}
		log.Debug().Bool("bluetooth", s.Bluetooth).Bool("location", s.Location).Msg("preferences applied")
	}
	apply(store.Get())
	store.OnChange(apply)
}

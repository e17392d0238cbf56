package ui

// Tab is one of the application screens.
type Tab int

const (
	TabMap Tab = iota
	TabScorecard
	TabTracking
	TabHistory
	TabSettings
)

// Tabs lists the screens in menu order.
var Tabs = []Tab{TabMap, TabScorecard, TabTracking, TabHistory, TabSettings}

func (t Tab) String() string {
	switch t {
	case TabMap:
		return "Map"
	case TabScorecard:
		return "Scorecard"
	case TabTracking:
		return "Tracking"
	case TabHistory:
		return "History"
	case TabSettings:
		return "Settings"
	default:
		return "?"
	}
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	return Tabs[(int(t)+1)%len(Tabs)]
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	return Tabs[(int(t)-1+len(Tabs))%len(Tabs)]
}

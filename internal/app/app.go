package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/course"
	"jacktrack.app/internal/geo"
	"jacktrack.app/internal/radar"
	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/settings"
	"jacktrack.app/internal/stats"
	"jacktrack.app/internal/tracking"
	"jacktrack.app/internal/ui"
)

// History lists and deletes saved rounds.
type History interface {
	List(ctx context.Context) ([]scoring.Summary, error)
	DeleteRound(ctx context.Context, id string) error
}

// Deps are the state containers the model drives. main.go owns them.
type Deps struct {
	Session   *scoring.Session
	History   History
	Tracker   *tracking.Tracker
	Settings  *settings.Store
	Locator   geo.Locator
	Telemetry *tracking.Telemetry // nil outside demo mode
	Course    course.Course
	Home      geo.Point
	Range     float64
	Demo      bool
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	ctx       context.Context
	session   *scoring.Session
	history   History
	tracker   *tracking.Tracker
	settings  *settings.Store
	locator   geo.Locator
	telemetry *tracking.Telemetry
	signals   *tracking.SignalHistory
	sweep     *radar.Sweep
	path      *geo.Path
	course    course.Course
	now       func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	width  int
	height int

	tab    ui.Tab
	demo   bool
	player geo.Point

	// Map
	mapRange  float64
	measuring bool
	cursorDX  int
	cursorDY  int
	selected  string

	// Tracking
	trackCursor int
	detail      bool

	historyCursor  int
	settingsCursor int

	status         string
	statusErr      bool
	statusSeq      int
	locationWarned bool

	shared *shared

	// Cached snapshots
	balls      []tracking.TrackedBall
	discovered []tracking.DiscoveredBall
	scanning   bool
	stale      map[string]bool
	summaries  []scoring.Summary
	statistics stats.Statistics
	prefs      settings.Settings
}

// New creates the root model over deps.
func New(ctx context.Context, deps Deps) AppModel {
	r := deps.Range
	if r == 0 {
		r = config.MapRange
	}
	return AppModel{
		demo:     deps.Demo,
		player:   deps.Home,
		mapRange: radar.ClampRange(r),
		prefs:    deps.Settings.Get(),
		shared: &shared{
			ctx:       ctx,
			session:   deps.Session,
			history:   deps.History,
			tracker:   deps.Tracker,
			settings:  deps.Settings,
			locator:   deps.Locator,
			telemetry: deps.Telemetry,
			signals:   tracking.NewSignalHistory(config.SignalHistory),
			sweep:     radar.NewSweep(time.Now()),
			path:      &geo.Path{},
			course:    deps.Course,
			now:       time.Now,
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		telemetryCmd(),
		m.locateCmd(),
		m.historyCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.sweep.Update(time.Time(msg))
		m.refresh()
		return m, tickCmd()

	case TelemetryMsg:
		if m.shared.telemetry != nil {
			m.shared.telemetry.Step()
		}
		store := m.shared.tracker.Store()
		m.shared.signals.Record(store.Snapshot())
		m.stale = make(map[string]bool)
		for _, id := range store.Stale(config.StaleAfter) {
			m.stale[id] = true
		}
		return m, telemetryCmd()

	case ScanDoneMsg:
		m.refresh()
		switch {
		case errors.Is(msg.Err, tracking.ErrScanCancelled):
			return m.setStatus("Scan cancelled", false)
		case msg.Err != nil:
			return m.setStatus("Scan failed: "+msg.Err.Error(), true)
		}
		return m.setStatus(foundText(len(msg.Found)), false)

	case SavedMsg:
		if msg.Err != nil {
			return m.setStatus("Save failed: "+msg.Err.Error(), true)
		}
		next, cmd := m.setStatus("Round saved", false)
		return next, tea.Batch(cmd, m.historyCmd())

	case LoadedMsg:
		if msg.Err != nil {
			return m.setStatus("Load failed: "+msg.Err.Error(), true)
		}
		m.tab = ui.TabScorecard
		return m.setStatus("Round loaded", false)

	case DeletedMsg:
		if msg.Err != nil {
			return m.setStatus("Delete failed: "+msg.Err.Error(), true)
		}
		next, cmd := m.setStatus("Round deleted", false)
		return next, tea.Batch(cmd, m.historyCmd())

	case HistoryMsg:
		if msg.Err != nil {
			return m.setStatus("History unavailable: "+msg.Err.Error(), true)
		}
		m.summaries = stats.Recent(msg.Summaries, len(msg.Summaries))
		m.statistics = stats.Compute(msg.Summaries)
		if m.historyCursor >= len(m.summaries) {
			m.historyCursor = max(0, len(m.summaries)-1)
		}
		return m, nil

	case PositionMsg:
		if msg.Err != nil {
			if m.locationWarned {
				return m, nil
			}
			m.locationWarned = true
			return m.setStatus("Location unavailable: "+msg.Err.Error(), true)
		}
		m.player = msg.Pos
		m.locationWarned = false
		return m, nil

	case SettingsMsg:
		if msg.Err != nil {
			return m.setStatus("Could not change setting: "+msg.Err.Error(), true)
		}
		m.prefs = msg.Settings
		m.refresh()
		if msg.Key == settings.Location && msg.Settings.Location {
			return m, m.locateCmd()
		}
		return m, nil

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

// refresh re-reads the snapshots the view renders from.
func (m *AppModel) refresh() {
	m.balls = m.shared.tracker.Store().Snapshot()
	m.discovered = m.shared.tracker.Discovered()
	m.scanning = m.shared.tracker.Scanning()
}

// setStatus shows a transient message in the status bar.
func (m AppModel) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return m, tea.Tick(config.StatusMessageTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func telemetryCmd() tea.Cmd {
	return tea.Tick(config.TelemetryInterval, func(t time.Time) tea.Msg {
		return TelemetryMsg(t)
	})
}

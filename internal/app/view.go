package app

import (
	"jacktrack.app/internal/config"
	"jacktrack.app/internal/radar"
	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/ui"
)

const (
	menuH   = 1
	statusH = 1
)

func (m AppModel) bodySize() (int, int) {
	return m.width, max(m.height-menuH-statusH, 5)
}

// mapSize splits the body between the map panel and its side panel.
func (m AppModel) mapSize() (mapW, infoW, bodyH int) {
	w, bodyH := m.bodySize()
	mapW = max(w*2/3, 30)
	infoW = w - mapW
	if infoW < 24 {
		infoW = 24
		mapW = w - infoW
	}
	return mapW, infoW, bodyH
}

func (m AppModel) projection() radar.Projection {
	mapW, _, bodyH := m.mapSize()
	return radar.Projection{
		Center: m.player,
		Range:  m.mapRange,
		Width:  max(mapW-4, 5),
		Height: max(bodyH-4, 3),
	}
}

// cursorCell returns the measure cursor, kept on the grid.
func (m AppModel) cursorCell(p radar.Projection) (int, int) {
	cx, cy := p.CenterCell()
	col := min(max(cx+m.cursorDX, 0), p.Width-1)
	row := min(max(cy+m.cursorDY, 0), p.Height-1)
	return col, row
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	w, bodyH := m.bodySize()
	var body string
	switch m.tab {
	case ui.TabMap:
		body = m.mapView()
	case ui.TabScorecard:
		body = ui.RenderScorecard(m.shared.session.Round(), m.shared.course, m.shared.session.CurrentHole(), w, bodyH)
	case ui.TabTracking:
		body = m.trackingView(w, bodyH)
	case ui.TabHistory:
		body = ui.RenderHistory(m.statistics, m.summaries, m.historyCursor, w, bodyH)
	case ui.TabSettings:
		body = ui.RenderSettings(m.prefs, m.settingsCursor, w, bodyH)
	}

	return ui.ComposeLayout(ui.RenderMenuBar(m.width, m.tab, m.demo), body, ui.RenderStatusBar(m.width, m.statusInfo()))
}

func (m AppModel) statusInfo() ui.StatusInfo {
	return ui.StatusInfo{
		Scanning:  m.scanning,
		Bluetooth: m.prefs.Bluetooth,
		Balls:     len(m.balls),
		Hole:      m.shared.session.CurrentHole(),
		ToPar:     scoring.FormatToPar(m.shared.session.ToPar()),
		Message:   m.status,
		IsError:   m.statusErr,
		Help:      helpFor(m.tab),
	}
}

func helpFor(t ui.Tab) string {
	switch t {
	case ui.TabMap:
		return "m measure  space point  c clear  +/- zoom  b ball  tab next  q quit"
	case ui.TabScorecard:
		return "+/- strokes  ←/→ hole  p/P putts  f fairway  g GIR  c complete  w save"
	case ui.TabTracking:
		return "s scan  esc cancel  enter pair/detail  x unpair"
	case ui.TabHistory:
		return "↑/↓ select  enter load  d delete  r refresh"
	default:
		return "↑/↓ select  space toggle"
	}
}

func (m AppModel) mapView() string {
	mapW, infoW, bodyH := m.mapSize()
	proj := m.projection()

	scene := radar.Scene{
		Player:   m.player,
		Range:    m.mapRange,
		Balls:    m.balls,
		Selected: m.selected,
		Measure:  m.shared.path.Points(),
	}
	info := ui.MapInfo{
		Player:    m.player,
		Balls:     m.balls,
		Selected:  m.selected,
		Measure:   scene.Measure,
		Measuring: m.measuring,
		Range:     m.mapRange,
	}

	if h, ok := m.shared.session.HoleScore(m.shared.session.CurrentHole()); ok {
		flag := radar.FlagNear(m.player)
		scene.Flag = &flag
		info.Flag = &flag
		info.Hole = &h
	}
	if m.measuring {
		col, row := m.cursorCell(proj)
		scene.Cursor = &radar.Cell{Col: col, Row: row}
		p := proj.Point(col, row)
		info.Cursor = &p
	}

	var sweep *radar.Sweep
	if m.scanning {
		sweep = m.shared.sweep
	}
	content := radar.Render(proj.Width, proj.Height, scene, sweep)
	legend := radar.RenderLegend(proj.Width, m.mapRange)
	return ui.SideBySide(
		ui.RenderMapPanel(mapW, bodyH, content, legend),
		ui.RenderMapInfo(info, infoW, bodyH),
	)
}

func (m AppModel) trackingView(w, h int) string {
	if m.detail {
		if b, ok := m.shared.tracker.Store().Get(m.selected); ok {
			return ui.RenderBallDetail(b, m.player, m.shared.signals.Values(b.ID), m.shared.now(), w, h)
		}
	}
	return ui.RenderTracking(ui.TrackingView{
		Connected:  m.balls,
		Discovered: m.discovered,
		Player:     m.player,
		Cursor:     m.trackCursor,
		Scanning:   m.scanning,
		Bluetooth:  m.prefs.Bluetooth,
		Stale:      m.stale,
	}, w, h)
}

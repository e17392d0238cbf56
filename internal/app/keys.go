package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"jacktrack.app/internal/course"
	"jacktrack.app/internal/radar"
	"jacktrack.app/internal/settings"
	"jacktrack.app/internal/tracking"
	"jacktrack.app/internal/ui"
)

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.shared.tracker.CancelScan()
		return m, tea.Quit
	case "tab":
		m.tab = m.tab.Next()
		m.detail = false
		return m, nil
	case "shift+tab":
		m.tab = m.tab.Prev()
		m.detail = false
		return m, nil
	case "1", "2", "3", "4", "5":
		m.tab = ui.Tabs[int(msg.String()[0]-'1')]
		m.detail = false
		return m, nil
	}

	switch m.tab {
	case ui.TabMap:
		return m.mapKey(msg)
	case ui.TabScorecard:
		return m.scorecardKey(msg)
	case ui.TabTracking:
		return m.trackingKey(msg)
	case ui.TabHistory:
		return m.historyKey(msg)
	case ui.TabSettings:
		return m.settingsKey(msg)
	}
	return m, nil
}

func (m AppModel) mapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "m":
		m.measuring = !m.measuring
		m.cursorDX, m.cursorDY = 0, 0
		if !m.measuring {
			m.shared.path.Clear()
		}
	case "c":
		m.shared.path.Clear()
	case "+", "=":
		m.mapRange = radar.ClampRange(m.mapRange / 1.5)
	case "-", "_":
		m.mapRange = radar.ClampRange(m.mapRange * 1.5)
	case "b":
		m.selected = nextBall(m.balls, m.selected)
	case "up", "k":
		m.cursorDY--
	case "down", "j":
		m.cursorDY++
	case "left", "h":
		m.cursorDX--
	case "right", "l":
		m.cursorDX++
	case " ", "enter":
		if m.measuring {
			proj := m.projection()
			col, row := m.cursorCell(proj)
			m.shared.path.Add(proj.Point(col, row))
		}
	case "backspace":
		pts := m.shared.path.Points()
		if len(pts) > 0 {
			m.shared.path.Clear()
			for _, p := range pts[:len(pts)-1] {
				m.shared.path.Add(p)
			}
		}
	}
	return m, nil
}

func nextBall(balls []tracking.TrackedBall, current string) string {
	if len(balls) == 0 {
		return ""
	}
	for i, b := range balls {
		if b.ID == current {
			if i+1 < len(balls) {
				return balls[i+1].ID
			}
			return ""
		}
	}
	return balls[0].ID
}

func (m AppModel) scorecardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.shared.session
	hole := s.CurrentHole()

	var err error
	switch msg.String() {
	case "n":
		c := m.shared.course
		if c.ID == "" {
			c = course.Default()
		}
		s.StartRound(c.ID, c.Name)
		m.shared.path.Clear()
		return m.setStatus("New round on "+c.Name, false)
	case "+", "=", "up", "k":
		err = s.IncrementStroke(hole)
	case "-", "_", "down", "j":
		err = s.DecrementStroke(hole)
	case "right", "l":
		s.NextHole()
	case "left", "h":
		s.PrevHole()
	case "p":
		if h, ok := s.HoleScore(hole); ok {
			err = s.SetPutts(hole, h.Putts+1)
		}
	case "P":
		if h, ok := s.HoleScore(hole); ok && h.Putts > 0 {
			err = s.SetPutts(hole, h.Putts-1)
		}
	case "f":
		if h, ok := s.HoleScore(hole); ok {
			err = s.SetFairwayHit(hole, h.FairwayHit == nil || !*h.FairwayHit)
		}
	case "g":
		if h, ok := s.HoleScore(hole); ok {
			err = s.SetGreenInRegulation(hole, h.GreenInRegulation == nil || !*h.GreenInRegulation)
		}
	case "c":
		if err = s.MarkComplete(); err == nil {
			return m, m.saveCmd()
		}
	case "w":
		return m, m.saveCmd()
	}
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	return m, nil
}

func (m AppModel) trackingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(m.balls) + len(m.discovered)

	switch msg.String() {
	case "esc":
		if m.detail {
			m.detail = false
			return m, nil
		}
		m.shared.tracker.CancelScan()
	case "s":
		scan, err := m.shared.tracker.StartScan(m.shared.ctx)
		if err != nil {
			return m.setStatus(scanErrorText(err), true)
		}
		m.scanning = true
		return m, waitScanCmd(m.shared, scan)
	case "up", "k":
		if m.trackCursor > 0 {
			m.trackCursor--
		}
	case "down", "j":
		if m.trackCursor < rows-1 {
			m.trackCursor++
		}
	case "enter":
		if m.trackCursor < len(m.balls) {
			m.selected = m.balls[m.trackCursor].ID
			m.detail = true
			return m, nil
		}
		i := m.trackCursor - len(m.balls)
		if i < 0 || i >= len(m.discovered) {
			return m, nil
		}
		b, err := m.shared.tracker.Connect(m.discovered[i].ID, m.player)
		if err != nil {
			return m.setStatus("Connect failed: "+err.Error(), true)
		}
		m.refresh()
		return m.setStatus("Connected "+b.DisplayName(), false)
	case "x":
		if m.trackCursor >= len(m.balls) {
			return m, nil
		}
		b := m.balls[m.trackCursor]
		if err := m.shared.tracker.Disconnect(b.ID); err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.detail = false
		if m.selected == b.ID {
			m.selected = ""
		}
		m.refresh()
		m.trackCursor = min(m.trackCursor, max(0, len(m.balls)+len(m.discovered)-1))
		return m.setStatus("Disconnected "+b.DisplayName(), false)
	}
	return m, nil
}

func scanErrorText(err error) string {
	switch {
	case errors.Is(err, tracking.ErrBluetoothDisabled):
		return "Bluetooth is off. Enable it in Settings."
	case errors.Is(err, tracking.ErrScanInProgress):
		return "Already scanning"
	default:
		return "Scan failed: " + err.Error()
	}
}

func (m AppModel) historyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
	case "down", "j":
		if m.historyCursor < len(m.summaries)-1 {
			m.historyCursor++
		}
	case "r":
		return m, m.historyCmd()
	case "enter":
		if m.historyCursor < len(m.summaries) {
			return m, m.loadCmd(m.summaries[m.historyCursor].ID)
		}
	case "d":
		if m.historyCursor >= len(m.summaries) {
			return m, nil
		}
		id := m.summaries[m.historyCursor].ID
		if r := m.shared.session.Round(); r != nil && r.ID == id {
			return m.setStatus("Cannot delete the round in play", true)
		}
		return m, m.deleteCmd(id)
	}
	return m, nil
}

func (m AppModel) settingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down", "j":
		if m.settingsCursor < len(settings.Keys)-1 {
			m.settingsCursor++
		}
	case " ", "enter":
		return m, m.toggleCmd(settings.Keys[m.settingsCursor])
	}
	return m, nil
}

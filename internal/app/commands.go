package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"jacktrack.app/internal/settings"
	"jacktrack.app/internal/tracking"
)

// Persistence and discovery run off the UI loop as commands.

func (m AppModel) saveCmd() tea.Cmd {
	s := m.shared
	return func() tea.Msg {
		return SavedMsg{Err: s.session.Save(s.ctx)}
	}
}

func (m AppModel) loadCmd(id string) tea.Cmd {
	s := m.shared
	return func() tea.Msg {
		return LoadedMsg{ID: id, Err: s.session.Load(s.ctx, id)}
	}
}

func (m AppModel) deleteCmd(id string) tea.Cmd {
	s := m.shared
	return func() tea.Msg {
		return DeletedMsg{ID: id, Err: s.history.DeleteRound(s.ctx, id)}
	}
}

func (m AppModel) historyCmd() tea.Cmd {
	s := m.shared
	if s.history == nil {
		return nil
	}
	return func() tea.Msg {
		list, err := s.history.List(s.ctx)
		return HistoryMsg{Summaries: list, Err: err}
	}
}

func (m AppModel) locateCmd() tea.Cmd {
	s := m.shared
	if s.locator == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := s.locator.CurrentPosition(s.ctx)
		return PositionMsg{Pos: p, Err: err}
	}
}

func (m AppModel) toggleCmd(k settings.Key) tea.Cmd {
	s := m.shared
	return func() tea.Msg {
		next, err := s.settings.Toggle(s.ctx, k)
		return SettingsMsg{Key: k, Settings: next, Err: err}
	}
}

func waitScanCmd(s *shared, scan *tracking.Scan) tea.Cmd {
	return func() tea.Msg {
		found, err := scan.Wait(s.ctx)
		return ScanDoneMsg{ScanID: scan.ID(), Found: found, Err: err}
	}
}

func foundText(n int) string {
	switch n {
	case 0:
		return "No golf balls found"
	case 1:
		return "Found 1 golf ball"
	default:
		return fmt.Sprintf("Found %d golf balls", n)
	}
}

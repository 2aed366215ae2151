package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuListsCampaignOnly(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	if len(m.items) != 1 || m.items[0].GameID != gems.IDCampaign {
		t.Fatalf("items = %+v, expected only the campaign entry", m.items)
	}

	next, _ := m.Update(keyEnter)
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != gems.IDCampaign {
		t.Errorf("selected = %+v", m.Selected())
	}

	next, _ = NewMenuModel(core.DefaultConfig()).Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestGemsModeSelector(t *testing.T) {
	press := func(m GemsModeModel, keys ...tea.KeyMsg) GemsModeModel {
		for _, k := range keys {
			next, _ := m.Update(k)
			m = next.(GemsModeModel)
		}
		return m
	}

	m := press(NewGemsModeModel(80, 24), keyDown, keyEnter)
	if sel := m.Selected(); sel == nil || sel.Mode != gems.ModeEndless || sel.GameID() != gems.IDEndless {
		t.Errorf("endless selection = %+v", sel)
	}

	m = press(NewGemsModeModel(80, 24), keyDown, keyDown, keyEnter)
	if m.Selected() != nil || !m.inLevelSelect {
		t.Fatal("third option should open the level list")
	}
	m = press(m, keyDown, keyEnter)
	if sel := m.Selected(); sel == nil || sel.Mode != gems.ModeCampaign || sel.Level != 2 {
		t.Errorf("level selection = %+v", sel)
	}

	m = press(NewGemsModeModel(80, 24), keyEsc)
	if !m.WantsBack() || m.Selected() != nil {
		t.Error("esc should back out without a selection")
	}
}

func TestSessionFlow(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	var m tea.Model = NewSessionModel(nil, cfg, defaultPalette, log.New(io.Discard))

	send := func(msgs ...tea.Msg) {
		for _, msg := range msgs {
			m, _ = m.Update(msg)
		}
	}

	send(keyEnter)
	if s := m.(SessionModel); s.stage != stageMode {
		t.Fatalf("stage = %d after picking gems, expected mode selector", s.stage)
	}

	send(keyEsc)
	if s := m.(SessionModel); s.stage != stageMenu {
		t.Fatalf("stage = %d after backing out, expected menu", s.stage)
	}

	send(keyEnter, keyEnter)
	s := m.(SessionModel)
	if s.stage != stageGame || s.game.game.ID() != gems.IDCampaign {
		t.Fatalf("stage = %d, expected a running campaign", s.stage)
	}
	if s.View() == "" {
		t.Error("game view is empty")
	}

	send(runeKey('q'))
	if !m.(SessionModel).quitting {
		t.Error("q should end the session")
	}
}

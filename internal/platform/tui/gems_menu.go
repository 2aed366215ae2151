package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
)

// GemsSelection holds the user's choice from the mode selector.
type GemsSelection struct {
	Mode  gems.Mode
	Level int // 0 = start from the beginning, 1..N = specific level
}

// GameID returns the registry ID the selection plays.
func (s GemsSelection) GameID() string {
	return s.Mode.ID()
}

const (
	modeCampaign = iota
	modeEndless
	modeSelectLevel
	modeOptionCount
)

// GemsModeModel lets users choose a mode and a starting level.
type GemsModeModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     GemsSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewGemsModeModel creates a new mode selection model.
func NewGemsModeModel(width, height int) GemsModeModel {
	return GemsModeModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m GemsModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GemsModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleModeSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m GemsModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < modeOptionCount-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case modeCampaign:
			return m.choose(GemsSelection{Mode: gems.ModeCampaign})
		case modeEndless:
			return m.choose(GemsSelection{Mode: gems.ModeEndless})
		case modeSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m GemsModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < gems.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.choose(GemsSelection{Mode: gems.ModeCampaign, Level: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m GemsModeModel) choose(sel GemsSelection) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = sel
	return m, tea.Quit
}

// View renders the mode/level selection.
func (m GemsModeModel) View() string {
	if m.quitting || m.back {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m GemsModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("G E M S", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	modes := [modeOptionCount]string{
		fmt.Sprintf("Campaign (%d levels)", gems.LevelCount()),
		"Endless Mode",
		"Select Level...",
	}

	for i, mode := range modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m GemsModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	targets := gems.LevelTargets()
	for i, name := range gems.LevelNames() {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %s (Target: %d)", cursor, i+1, name, targets[i])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m GemsModeModel) Selected() *GemsSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m GemsModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m GemsModeModel) WantsBack() bool {
	return m.back
}

// RunGemsModeSelector runs the mode selection. A nil selection means the
// user backed out or quit.
func RunGemsModeSelector(cfg core.RuntimeConfig) (*GemsSelection, error) {
	p := tea.NewProgram(
		NewGemsModeModel(cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(GemsModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/levels"
	"github.com/vovakirdan/tui-comet/internal/storage"
)

// MenuModel is the level picker shown before a game.
type MenuModel struct {
	levels         []levels.Level
	highScores     map[string]int
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	theme          Theme
	keyMapper      *KeyMapper
	quitting       bool
	selected       int  // Chosen level index, -1 while choosing
	openScoreboard bool // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new level picker. High scores are read once from
// store when it is set.
func NewMenuModel(lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig, theme Theme) MenuModel {
	highScores := make(map[string]int, len(lvls))
	if store != nil {
		if stats, err := store.GetAllLevelStats(); err == nil {
			for id, st := range stats {
				highScores[id] = st.HighScore
			}
		}
	}

	return MenuModel{
		levels:     lvls,
		highScores: highScores,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		theme:      theme,
		keyMapper:  NewKeyMapper(),
		selected:   -1,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = m.cursor
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("  C O M E T  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Bring down the castle. Choose a level:"), m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor, style := "  ", m.theme.MenuItemNormal
		if i == m.cursor {
			cursor, style = "> ", m.theme.MenuItemActive
		}

		best := ""
		if hs := m.highScores[lvl.ID]; hs > 0 {
			best = fmt.Sprintf("  best %d", hs)
		}

		line := fmt.Sprintf("%s%2d. %-16s%s", cursor, i+1, lvl.Name, best)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(m.theme.MenuControls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen level index and whether one was chosen.
func (m MenuModel) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelIndex      int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig, theme Theme) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(lvls, store, cfg, theme),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch idx, chosen := m.Selected(); {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case chosen:
		result.LevelIndex = idx
	default:
		result.Quit = true
	}
	return result, nil
}

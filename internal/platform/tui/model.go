package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/game"
	"github.com/vovakirdan/tui-comet/internal/storage"
)

// GameModel is the Bubble Tea model for one comet game. Each frame it feeds
// the collected input to the game, advances it by the elapsed wall time and
// redraws the latest snapshot.
type GameModel struct {
	game       *game.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	mouse      *MouseTracker
	inputFrame core.InputFrame
	lastFrame  time.Time
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the finished run has been stored
}

// NewGameModel creates a game model. A nil store disables score saving.
func NewGameModel(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultFPS
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		mouse:      &MouseTracker{},
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.game.MoveMoon(m.mouse.Delta(msg))
		return m, nil
	case tea.WindowSizeMsg:
		// The field is resolution independent, so a resize only reprojects.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.mouse.Reset()
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game once it is over or paused.
	state := m.game.State()
	if m.inputFrame.Has(core.ActionBack) && (state.GameOver || state.Paused) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}
	return m, nil
}

// handleTick applies input, advances the simulation and stores finished runs.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var elapsed time.Duration
	if !m.lastFrame.IsZero() {
		elapsed = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	m.game.HandleInput(m.inputFrame)
	m.inputFrame.Clear()

	// A refused tick would be refused again every frame; end the run instead.
	if _, err := m.game.Advance(elapsed); err != nil {
		m.logger.Error("run aborted", "level", m.game.ID(), "tick", m.game.Snapshot().Tick, "err", err)
		m.game.Abort()
	}

	if !m.game.Over() {
		m.runSaved = false
	} else if !m.runSaved {
		if m.store != nil {
			if _, err := SaveRun(m.store, m.game); err != nil {
				m.logger.Warn("could not save run", "level", m.game.ID(), "err", err)
			}
		}
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".comet", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the local terminal until the user quits.
func Run(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(g, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/topple-run/internal/access"
	"github.com/vovakirdan/topple-run/internal/config"
	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/hud"
	"github.com/vovakirdan/topple-run/internal/perf"
	"github.com/vovakirdan/topple-run/internal/quality"
	"github.com/vovakirdan/topple-run/internal/registry"
	"github.com/vovakirdan/topple-run/internal/storage"
)

// qualityReporter is implemented by games that expose their active
// quality level for the debug overlay.
type qualityReporter interface {
	QualityLevel() quality.Level
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	monitor  *perf.Monitor
	metrics  perf.Metrics
	issues   int // issues reported on the last sample
	lastTick time.Time
	overlay  hud.Overlay

	highContrast *access.HighContrastManager

	keys       *KeyMapper
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	perfCfg, _ := config.LoadPerf("")
	monitor := perf.NewMonitor(perf.DefaultThresholds().Merge(perfCfg.Thresholds), perfCfg.WindowSize)
	if perfCfg.HeapBudget > 0 {
		monitor.SetHeapBudget(uint64(perfCfg.HeapBudget))
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		monitor:    monitor,
		keys:       NewKeyMapper(),
	}
	if store != nil {
		m.highContrast = access.NewHighContrastManager(store, nil)
	} else {
		m.highContrast = access.NewHighContrastManager(nil, nil)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keys handled by the shell rather than the game.
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "f3", "tab":
		m.overlay.Visible = !m.overlay.Visible
		return m, nil
	case "h":
		m.highContrast.Toggle()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionRestart) && !m.gameState.GameOver {
		// Restart only applies on the game-over screen.
		m.inputFrame.Clear()
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions if needed
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.monitor.Reset()
		m.lastTick = time.Time{}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.monitor.Reset()
		m.lastTick = time.Time{}
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Feed the monitor with the wall-clock frame delta.
	if !m.lastTick.IsZero() {
		metrics, issues := m.monitor.Sample(now, now.Sub(m.lastTick))
		m.metrics = metrics
		m.issues = len(issues)
	}
	m.lastTick = now

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".topplerun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	if m.overlay.Visible {
		if qr, ok := m.game.(qualityReporter); ok {
			m.overlay.Quality = qr.QualityLevel().Name
		}
		m.overlay.Draw(m.screen, m.gameState.Score, m.metrics, m.issues)
	}

	if m.highContrast.Enabled() {
		return RenderScreenHighContrast(m.screen)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// maxTickGap caps dt after a stall (suspended terminal, slow frame) so the
// game does not jump ahead by seconds at once.
const maxTickGap = 250 * time.Millisecond

// cueMessages are the debug log lines for game cues.
var cueMessages = map[core.Cue]string{
	core.CueHardDrop:   "hard drop",
	core.CueHold:       "piece held",
	core.CueLock:       "piece locked",
	core.CueLineClear:  "lines cleared",
	core.CueLevelUp:    "level up",
	core.CueGameOver:   "game over",
	core.CueGameActive: "play started",
}

// Options configures a play session.
type Options struct {
	Config  config.TetrisConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables replay recording
	Logger  *log.Logger    // nil discards logs
}

// orDiscard returns l, or a logger that drops everything if l is nil.
func orDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}

// Model is the Bubble Tea model for playing a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *Renderer
	keys       KeyMap
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	rec        *replay.Recorder
	log        *log.Logger
	bell       io.Writer

	lastTick      time.Time
	softDropHold  time.Duration
	softDropUntil time.Time

	sound    bool
	showHelp bool
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:         game,
		screen:       core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		renderer:     NewRenderer(opts.Config.Display.Palette),
		keys:         NewKeyMap(opts.Config.Controls),
		help:         help.New(),
		config:       cfg,
		inputFrame:   core.NewInputFrame(),
		rec:          replay.NewRecorder(opts.Store),
		log:          orDiscard(opts.Logger),
		bell:         os.Stdout,
		softDropHold: time.Duration(opts.Config.Input.SoftDropHoldMS) * time.Millisecond,
		sound:        opts.Config.Input.Bell,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.startRecording()
	m.log.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		// Opening help mid-game pauses it; closing leaves resuming to the player.
		if m.showHelp && !m.gameState.Paused && !m.gameState.GameOver {
			m.inputFrame.Set(core.ActionPause)
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		m.flushRecording()
		return m, tea.Quit
	case core.ActionToggleSound:
		m.sound = !m.sound
		m.log.Info("sound toggled", "on", m.sound)
		return m, nil
	case core.ActionSoftDrop:
		// Key auto-repeat keeps extending the window while the key is down.
		m.softDropUntil = now.Add(m.softDropHold)
	case core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize processes window resize events. The board has a fixed size,
// so the game keeps running; only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick), maxTickGap)
	}
	m.lastTick = now

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.softDropUntil = time.Time{}
		m.inputFrame.Clear()
		m.log.Info("game restarted", "seed", m.config.Seed)
		m.startRecording()
		return m, tickCmd(m.config.TickRate)
	}

	if now.Before(m.softDropUntil) {
		m.inputFrame.Set(core.ActionSoftDrop)
	}

	result := m.game.Step(dt, m.inputFrame)

	// Frames after game over carry nothing a replay needs.
	if !m.gameState.GameOver {
		if err := m.rec.Record(dt, m.inputFrame); err != nil {
			m.log.Warn("replay recording stopped", "error", err)
		}
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	for _, cue := range result.Cues {
		if msg, ok := cueMessages[cue]; ok {
			m.log.Debug(msg, "score", result.State.Score)
		}
		if cue == core.CueLineClear && m.sound {
			cmds = append(cmds, bellCmd(m.bell))
		}
	}

	switch {
	case result.State.GameOver && !m.gameState.GameOver:
		m.log.Info("game over", "score", result.State.Score, "replay", m.rec.Replay().ShortID())
		m.flushRecording()
	case result.State.Paused && !m.gameState.Paused:
		m.log.Info("game paused")
		m.flushRecording()
	case !result.State.Paused && m.gameState.Paused:
		m.log.Info("game resumed")
	}

	m.gameState = result.State
	m.inputFrame.Clear()

	return m, tea.Batch(cmds...)
}

func (m Model) startRecording() {
	if !m.rec.Enabled() {
		return
	}
	if err := m.rec.Start(m.game.ID(), m.config.Seed, m.config.TickRate); err != nil {
		m.log.Warn("replay recording disabled", "error", err)
		return
	}
	m.log.Debug("recording replay", "id", m.rec.Replay().ID)
}

func (m Model) flushRecording() {
	if err := m.rec.Flush(); err != nil {
		m.log.Warn("replay recording stopped", "error", err)
	}
}

// bellCmd rings the terminal bell.
func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		fmt.Fprint(w, "\a")
		return nil
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	width, height := m.screen.Width(), m.screen.Height()+1

	if m.showHelp {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
		body := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("CONTROLS"),
			m.help.View(m.keys),
			"",
			helpStyle.Render(fmt.Sprintf("sound: %s", onOff(m.sound))),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}

	m.game.Render(m.screen)
	view := m.renderer.RenderScreen(m.screen)

	helpView := m.help.View(m.keys)
	if !m.sound {
		helpView += "  (sound off)"
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, helpStyle.Render(centerText(helpView, width)))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, opts Options) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

const maxReplaySpeed = 16

// ReplayKeyMap defines the key bindings for replay playback.
type ReplayKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-", "slower"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayModel plays a recorded session back at its recorded pace.
type ReplayModel struct {
	player   *replay.Player
	screen   *core.Screen
	renderer *Renderer
	keys     ReplayKeyMap
	help     help.Model
	speed    int
	gen      int
	paused   bool
	quitting bool
}

// NewReplayModel creates a playback model. The player's game has already
// been reset to the replay's seed.
func NewReplayModel(p *replay.Player, cfg config.TetrisConfig, width, height int) ReplayModel {
	return ReplayModel{
		player:   p,
		screen:   core.NewScreen(width, max(height-1, 0)),
		renderer: NewRenderer(cfg.Display.Palette),
		keys:     DefaultReplayKeyMap(),
		help:     help.New(),
		speed:    1,
	}
}

// Init starts playback.
func (m ReplayModel) Init() tea.Cmd {
	return m.next()
}

// next schedules the following frame at the recorded delay scaled by speed.
func (m ReplayModel) next() tea.Cmd {
	if m.paused || m.player.Done() {
		return nil
	}
	return replayTickCmd(m.player.NextDelay()/time.Duration(m.speed), m.gen)
}

// Update handles messages for playback.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.gen++
			return m, m.next()
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxReplaySpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case replayTickMsg:
		if m.paused || msg.gen != m.gen {
			return m, nil
		}
		m.player.Step()
		return m, m.next()
	}

	return m, nil
}

// View renders the game and a status line.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	m.player.Game().Render(m.screen)
	view := m.renderer.RenderScreen(m.screen)

	pos, total := m.player.Progress()
	status := fmt.Sprintf("REPLAY %s  %d/%d  x%d", m.player.Replay().ShortID(), pos, total, m.speed)
	switch {
	case m.player.Done():
		status += "  END"
	case m.paused:
		status += "  PAUSED"
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	line := status + "  " + m.help.View(m.keys)
	return lipgloss.JoinVertical(lipgloss.Left, view, statusStyle.Render(centerText(line, m.screen.Width())))
}

// RunReplay plays a replay in the terminal.
func RunReplay(p *replay.Player, cfg config.TetrisConfig, width, height int) error {
	model := NewReplayModel(p, cfg, width, height)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := prog.Run()
	return err
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// maxReplays is how many replays the browser loads.
const maxReplays = 200

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Delete, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel lists recorded replays in a table.
type BrowserModel struct {
	store    *storage.Store
	log      *log.Logger
	replays  []storage.Replay
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	width    int
	height   int
	status   string
	selected *storage.Replay
	quitting bool
}

// NewBrowserModel creates a browser over the store's replays.
func NewBrowserModel(store *storage.Store, logger *log.Logger, width, height int) BrowserModel {
	m := BrowserModel{
		store:  store,
		log:    orDiscard(logger),
		help:   help.New(),
		keys:   DefaultBrowserKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized to the window.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Recorded", Width: 14},
		{Title: "Length", Width: 9},
		{Title: "Seed", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reloads the replay list from the store.
func (m *BrowserModel) loadReplays() {
	if m.store == nil {
		m.replays = nil
		m.updateTableRows()
		return
	}

	replays, err := m.store.ListReplays(maxReplays)
	if err != nil {
		m.log.Warn("cannot list replays", "error", err)
		m.status = "Could not load replays."
		replays = nil
	}
	m.replays = replays
	m.updateTableRows()
}

// updateTableRows updates the table with the current replays.
func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			r.ShortID(),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			ReplayLength(r).String(),
			fmt.Sprintf("%d", r.Seed),
		}
	}
	m.table.SetRows(rows)
}

// ReplayLength estimates play time from the frame count and tick rate.
func ReplayLength(r storage.Replay) time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return (time.Duration(r.Frames) * time.Second / time.Duration(r.TickRate)).Truncate(time.Second)
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if r, ok := m.current(); ok {
				m.selected = &r
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok {
				if err := m.store.DeleteReplay(r.ID); err != nil {
					m.log.Warn("cannot delete replay", "id", r.ID, "error", err)
					m.status = "Delete failed."
				} else {
					m.status = fmt.Sprintf("Deleted %s.", r.ShortID())
				}
				m.loadReplays()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// current returns the replay under the cursor.
func (m BrowserModel) current() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m BrowserModel) renderTableContent() string {
	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No replays recorded yet.\nEvery game you play is saved here.")
	}

	return m.table.View()
}

// Selected returns the replay the user picked, if any.
func (m BrowserModel) Selected() (storage.Replay, bool) {
	if m.selected == nil {
		return storage.Replay{}, false
	}
	return *m.selected, true
}

// RunBrowser runs the replay browser and returns the chosen replay.
// ok is false if the user quit without choosing.
func RunBrowser(store *storage.Store, logger *log.Logger, width, height int) (r storage.Replay, ok bool, err error) {
	model := NewBrowserModel(store, logger, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return storage.Replay{}, false, err
	}

	m, isBrowser := finalModel.(BrowserModel)
	if !isBrowser {
		return storage.Replay{}, false, nil
	}
	r, ok = m.Selected()
	return r, ok, nil
}

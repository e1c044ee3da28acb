package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/battleship/internal/storage"
)

const maxHistoryRows = 100

// historyTab selects which view the history screen shows.
type historyTab int

const (
	tabRecent historyTab = iota
	tabLeaderboard
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Switch, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing finished matches.
type HistoryModel struct {
	store    *storage.Store
	tab      historyTab
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	loadErr  error
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history model backed by the given store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	keys := DefaultHistoryKeyMap()
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := HistoryModel{
		store:  store,
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRows()

	return m
}

// createTable creates the table for the active tab.
func (m *HistoryModel) createTable() table.Model {
	var columns []table.Column
	switch m.tab {
	case tabRecent:
		columns = []table.Column{
			{Title: "Winner", Width: 16},
			{Title: "Loser", Width: 16},
			{Title: "Shots", Width: 9},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 14},
		}
	case tabLeaderboard:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 20},
			{Title: "Wins", Width: 6},
			{Title: "Losses", Width: 8},
			{Title: "Last played", Width: 14},
		}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadRows fills the table for the active tab.
func (m *HistoryModel) loadRows() {
	if m.store == nil {
		m.table.SetRows(nil)
		return
	}

	switch m.tab {
	case tabRecent:
		recs, err := m.store.RecentMatches(maxHistoryRows)
		if err != nil {
			m.loadErr = err
			m.table.SetRows(nil)
			return
		}
		rows := make([]table.Row, len(recs))
		for i, r := range recs {
			rows[i] = table.Row{
				r.Winner,
				r.Loser,
				fmt.Sprintf("%d/%d", r.WinnerShots, r.LoserShots),
				fmt.Sprintf("%ds", r.Duration),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		m.table.SetRows(rows)
	case tabLeaderboard:
		stats, err := m.store.Leaderboard(maxHistoryRows)
		if err != nil {
			m.loadErr = err
			m.table.SetRows(nil)
			return
		}
		rows := make([]table.Row, len(stats))
		for i, st := range stats {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				st.Player,
				fmt.Sprintf("%d", st.Wins),
				fmt.Sprintf("%d", st.Losses),
				st.LastPlayed.Format("Jan 02 15:04"),
			}
		}
		m.table.SetRows(rows)
	}

	m.loadErr = nil
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			if m.tab == tabRecent {
				m.tab = tabLeaderboard
			} else {
				m.tab = tabRecent
			}
			m.table = m.createTable()
			m.loadRows()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.loadRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	title := "RECENT MATCHES"
	if m.tab == tabLeaderboard {
		title = "LEADERBOARD"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(centerText(fmt.Sprintf("Error: %v", m.loadErr), m.width))
	} else if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No matches recorded yet.\nFinish a game to fill the history!"))
	} else {
		borderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(borderStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunHistory runs the match history screen in the local terminal.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

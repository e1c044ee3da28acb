// Package tui implements the terminal interface: fleet placement, the
// battle screen, match history, and the SSH server that hosts them.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/battleship/internal/bot"
	"github.com/vovakirdan/battleship/internal/dispatch"
	"github.com/vovakirdan/battleship/internal/game"
	"github.com/vovakirdan/battleship/internal/match"
)

type sessionState int

const (
	stateName sessionState = iota
	statePlacing
	stateWaiting
	stateBattle
	stateDone
)

// eventMsg wraps a match notification for the Bubble Tea loop.
type eventMsg struct {
	evt match.Event
}

// SessionModel drives one player's full session: pick a name, place the
// fleet, wait for an opponent, fight, see the result.
type SessionModel struct {
	dispatcher *dispatch.Dispatcher
	rules      game.Rules
	vsBot      bool

	state     sessionState
	nameInput textinput.Model
	placement PlacementModel
	keys      BattleKeyMap
	help      help.Model

	playerID match.PlayerID
	handle   *match.ChannelHandle
	m        *match.Match

	fleet    map[game.Cell]bool
	incoming map[game.Cell]match.Outcome
	outgoing map[game.Cell]match.Outcome
	cursor   game.Cell
	myTurn   bool
	status   string
	result   match.GameResult

	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a session. defaultName prefills the name prompt;
// vsBot pairs the player against a computer opponent instead of waiting in
// the public queue.
func NewSessionModel(d *dispatch.Dispatcher, rules game.Rules, defaultName string, vsBot bool, width, height int) SessionModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 24
	ti.SetValue(defaultName)
	ti.Focus()

	h := help.New()
	h.ShowAll = false
	h.Width = width

	return SessionModel{
		dispatcher: d,
		rules:      rules,
		vsBot:      vsBot,
		state:      stateName,
		nameInput:  ti,
		keys:       DefaultBattleKeyMap(),
		help:       h,
		fleet:      make(map[game.Cell]bool),
		incoming:   make(map[game.Cell]match.Outcome),
		outgoing:   make(map[game.Cell]match.Outcome),
		cursor:     game.Cell{X: 1, Y: 1},
		width:      width,
		height:     height,
	}
}

// Init starts the name prompt cursor blink.
func (m SessionModel) Init() tea.Cmd {
	return textinput.Blink
}

// waitForEvent returns a command that blocks on the next match notification.
func (m SessionModel) waitForEvent() tea.Cmd {
	h := m.handle
	return func() tea.Msg {
		select {
		case evt := <-h.Events():
			return eventMsg{evt: evt}
		case <-h.Done():
			return nil
		}
	}
}

// Update handles messages.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case eventMsg:
		return m.handleEvent(msg.evt)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.state {
	case stateName:
		return m.handleNameKey(msg)
	case statePlacing:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		var cmd tea.Cmd
		m.placement, cmd = m.placement.Update(msg)
		if m.placement.Done() {
			return m.joinMatch()
		}
		return m, cmd
	case stateWaiting:
		if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Back) {
			return m.quit()
		}
	case stateBattle:
		return m.handleBattleKey(msg)
	case stateDone:
		if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Fire) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m SessionModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.status = "a name is required"
			return m, nil
		}
		if m.vsBot && name == "computer" {
			m.status = "that name is reserved"
			return m, nil
		}
		m.playerID = match.PlayerID(name)
		m.placement = NewPlacementModel(m.rules, m.width)
		m.state = statePlacing
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// joinMatch submits the finished layout to the dispatcher.
func (m SessionModel) joinMatch() (tea.Model, tea.Cmd) {
	layout := m.placement.Layout()
	for _, ship := range layout {
		for _, c := range ship {
			m.fleet[c] = true
		}
	}

	m.handle = match.NewChannelHandle(m.playerID, 64)
	mt, err := m.dispatcher.PlacePlayer(layout, dispatch.Options{
		PlayerID: m.playerID,
		Handle:   m.handle,
		Rules:    m.rules,
	})
	if err != nil {
		// Most likely the name is already queued. Start over with the
		// prompt so the player can pick another.
		m.status = err.Error()
		m.state = stateName
		m.fleet = make(map[game.Cell]bool)
		m.nameInput.Focus()
		return m, textinput.Blink
	}

	m.m = mt
	m.state = stateWaiting
	m.status = ""

	cmds := []tea.Cmd{m.waitForEvent()}
	if m.vsBot {
		if _, botErr := bot.Join(m.dispatcher, m.rules, "computer", nil); botErr != nil {
			m.status = botErr.Error()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m SessionModel) handleBattleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Fire):
		if m.myTurn {
			m.m.Fire(m.cursor, m.playerID)
		} else {
			m.status = "not your turn"
		}
	}
	return m, nil
}

func (m *SessionModel) moveCursor(dx, dy int) {
	c := game.Cell{X: m.cursor.X + dx, Y: m.cursor.Y + dy}
	if m.rules.Contains(c) {
		m.cursor = c
	}
}

func (m SessionModel) handleEvent(evt match.Event) (tea.Model, tea.Cmd) {
	switch evt := evt.(type) {
	case match.WaitOtherPlayerEvent:
		if m.state == stateBattle {
			m.myTurn = false
			m.status = "waiting for opponent's move"
		}
	case match.JoinedGameEvent:
		m.status = "opponent found"
	case match.YourTurnEvent:
		m.state = stateBattle
		m.myTurn = true
		m.status = "your turn"
	case match.FireResultEvent:
		m.outgoing[evt.Cell] = evt.Outcome
	case match.ReceivedFireEvent:
		m.state = stateBattle
		m.incoming[evt.Cell] = evt.Outcome
	case match.ErrorEvent:
		m.status = strings.ReplaceAll(evt.Reason, "_", " ")
	case match.GameTerminatedEvent:
		m.state = stateDone
		m.result = evt.Result
		m.m.Stop()
		return m, nil
	}

	return m, m.waitForEvent()
}

// quit tears the session down, force-terminating the match if one is live.
func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	if m.m != nil && m.state != stateDone {
		m.dispatcher.Terminate(m.m.ID())
	}
	if m.handle != nil {
		m.handle.Close()
	}
	m.quitting = true
	return m, tea.Quit
}

// IsQuitting reports whether the session has ended.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// View renders the current state.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateName:
		return m.viewName()
	case statePlacing:
		return m.placement.View()
	case stateWaiting:
		return m.viewWaiting()
	case stateBattle:
		return m.viewBattle()
	case stateDone:
		return m.viewDone()
	}
	return ""
}

func (m SessionModel) viewName() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("BATTLESHIP"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Who goes to battle?", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.nameInput.View(), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText("Enter: Continue  |  Esc: Quit", m.width))

	return b.String()
}

func (m SessionModel) viewWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SEARCHING FOR OPPONENT"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Your fleet is ready.", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("Waiting for another player to join...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Esc: Cancel  |  Q: Quit", m.width))

	return b.String()
}

func (m SessionModel) viewBattle() string {
	var cursor *game.Cell
	if m.myTurn {
		c := m.cursor
		cursor = &c
	}

	target := boardView{
		rules:  m.rules,
		title:  "TARGET GRID",
		shots:  m.outgoing,
		cursor: cursor,
	}
	own := boardView{
		rules: m.rules,
		title: fmt.Sprintf("YOUR FLEET (%s)", m.playerID),
		fleet: m.fleet,
		shots: m.incoming,
	}

	boards := lipgloss.JoinHorizontal(lipgloss.Top, target.render(), "    ", own.render())

	var b strings.Builder
	b.WriteString(boards)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// RunLocalGame runs a match against the computer in the current terminal.
// A fresh dispatcher is created for the single local match.
func RunLocalGame(rules game.Rules, saver dispatch.ResultSaver, defaultName string, width, height int) error {
	d := dispatch.New(nil)
	if saver != nil {
		d.SetResultSaver(saver)
	}

	p := tea.NewProgram(
		NewSessionModel(d, rules, defaultName, true, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func (m SessionModel) viewDone() string {
	headline := "DEFEAT"
	detail := "Your fleet rests on the seabed."
	if m.result == match.ResultWin {
		headline = "VICTORY"
		detail = "The enemy fleet has been destroyed."
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(headline), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(detail, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter/Q: Leave", m.width))

	return b.String()
}

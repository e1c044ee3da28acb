package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/battleship/internal/bot"
	"github.com/vovakirdan/battleship/internal/game"
)

// PlacementModel lets a player lay out their fleet ship by ship. The engine
// validates the final layout again when the player joins a match; the checks
// here only keep the cursor honest while editing.
type PlacementModel struct {
	rules      game.Rules
	sizes      []int // remaining ships, current first
	placed     [][]game.Cell
	occupied   map[game.Cell]bool
	cursor     game.Cell
	horizontal bool
	keys       BattleKeyMap
	help       help.Model
	status     string
	done       bool
}

// NewPlacementModel creates a placement model for the given rules.
func NewPlacementModel(rules game.Rules, width int) PlacementModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	return PlacementModel{
		rules:      rules,
		sizes:      append([]int(nil), rules.ShipSizes...),
		occupied:   make(map[game.Cell]bool),
		cursor:     game.Cell{X: 1, Y: 1},
		horizontal: true,
		keys:       DefaultBattleKeyMap(),
		help:       h,
	}
}

// Done reports whether the whole fleet has been placed.
func (m PlacementModel) Done() bool {
	return m.done
}

// Layout returns the placed fleet.
func (m PlacementModel) Layout() [][]game.Cell {
	return m.placed
}

// Update handles key input. The caller owns quit and back handling.
func (m PlacementModel) Update(msg tea.Msg) (PlacementModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(keyMsg, m.keys.Rotate):
		m.horizontal = !m.horizontal
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Random):
		if fleet := bot.RandomFleet(m.rules, rand.New(rand.NewSource(time.Now().UnixNano()))); fleet != nil {
			m.placed = fleet
			m.sizes = nil
			m.done = true
			m.status = ""
		} else {
			m.status = "could not find a random layout"
		}
	case key.Matches(keyMsg, m.keys.Fire):
		m.placeCurrent()
	}

	return m, nil
}

func (m *PlacementModel) moveCursor(dx, dy int) {
	m.cursor.X += dx
	m.cursor.Y += dy
	m.clampCursor()
}

// clampCursor keeps the whole candidate ship on the board.
func (m *PlacementModel) clampCursor() {
	size := 1
	if len(m.sizes) > 0 {
		size = m.sizes[0]
	}

	maxX, maxY := m.rules.Width, m.rules.Height
	if m.horizontal {
		maxX = m.rules.Width - size + 1
		if maxX < 1 {
			maxX = 1
		}
	} else {
		maxY = m.rules.Height - size + 1
		if maxY < 1 {
			maxY = 1
		}
	}

	if m.cursor.X < 1 {
		m.cursor.X = 1
	}
	if m.cursor.Y < 1 {
		m.cursor.Y = 1
	}
	if m.cursor.X > maxX {
		m.cursor.X = maxX
	}
	if m.cursor.Y > maxY {
		m.cursor.Y = maxY
	}
}

// candidate returns the cells the current ship would occupy.
func (m PlacementModel) candidate() []game.Cell {
	if len(m.sizes) == 0 {
		return nil
	}
	size := m.sizes[0]
	cells := make([]game.Cell, size)
	for i := 0; i < size; i++ {
		c := m.cursor
		if m.horizontal {
			c.X += i
		} else {
			c.Y += i
		}
		cells[i] = c
	}
	return cells
}

func (m PlacementModel) candidateBlocked() bool {
	for _, c := range m.candidate() {
		if !m.rules.Contains(c) || m.occupied[c] {
			return true
		}
	}
	return false
}

func (m *PlacementModel) placeCurrent() {
	if len(m.sizes) == 0 {
		return
	}
	if m.candidateBlocked() {
		m.status = "that spot is taken"
		return
	}

	ship := m.candidate()
	for _, c := range ship {
		m.occupied[c] = true
	}
	m.placed = append(m.placed, ship)
	m.sizes = m.sizes[1:]
	m.status = ""

	if len(m.sizes) == 0 {
		m.done = true
		return
	}
	m.clampCursor()
}

// View renders the placement screen.
func (m PlacementModel) View() string {
	var b strings.Builder

	fleet := make(map[game.Cell]bool, len(m.occupied))
	for c := range m.occupied {
		fleet[c] = true
	}

	view := boardView{
		rules:    m.rules,
		title:    "PLACE YOUR FLEET",
		fleet:    fleet,
		ghost:    m.candidate(),
		ghostBad: m.candidateBlocked(),
	}
	b.WriteString(view.render())
	b.WriteString("\n")

	if len(m.sizes) > 0 {
		dir := "horizontal"
		if !m.horizontal {
			dir = "vertical"
		}
		b.WriteString(fmt.Sprintf("Placing ship of length %d (%s), %d left\n",
			m.sizes[0], dir, len(m.sizes)))
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/battleship/internal/game"
	"github.com/vovakirdan/battleship/internal/match"
)

// Cell glyphs. Each cell is rendered two characters wide so the grid looks
// roughly square in a terminal.
const (
	glyphWater  = " ·"
	glyphShip   = " █"
	glyphHit    = " ╳"
	glyphMiss   = " ○"
	glyphSunk   = " ▒"
	glyphTarget = " +"
)

var (
	waterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	shipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	sunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	ghostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Reverse(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// boardView collects everything needed to render one grid.
type boardView struct {
	rules    game.Rules
	title    string
	fleet    map[game.Cell]bool          // own ship cells
	shots    map[game.Cell]match.Outcome // resolved shots on this grid
	cursor   *game.Cell                  // highlighted cell, nil to hide
	ghost    []game.Cell                 // candidate ship during placement
	ghostBad bool
}

// render draws the grid with row numbers and column letters.
func (v boardView) render() string {
	var b strings.Builder

	if v.title != "" {
		b.WriteString(titleStyle.Render(v.title))
		b.WriteString("\n")
	}

	// Column header: A B C ...
	b.WriteString(labelStyle.Render("   "))
	for x := 1; x <= v.rules.Width; x++ {
		b.WriteString(labelStyle.Render(" " + string(rune('A'+x-1))))
	}
	b.WriteString("\n")

	ghost := make(map[game.Cell]bool, len(v.ghost))
	for _, c := range v.ghost {
		ghost[c] = true
	}

	for y := 1; y <= v.rules.Height; y++ {
		b.WriteString(labelStyle.Render(padRow(y)))
		for x := 1; x <= v.rules.Width; x++ {
			c := game.Cell{X: x, Y: y}
			b.WriteString(v.renderCell(c, ghost))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v boardView) renderCell(c game.Cell, ghost map[game.Cell]bool) string {
	glyph := glyphWater
	style := waterStyle

	if v.fleet[c] {
		glyph, style = glyphShip, shipStyle
	}
	if outcome, ok := v.shots[c]; ok {
		switch outcome {
		case match.OutcomeWater:
			glyph, style = glyphMiss, missStyle
		case match.OutcomeHit:
			glyph, style = glyphHit, hitStyle
		case match.OutcomeShipDown:
			glyph, style = glyphSunk, sunkStyle
		}
	}
	if ghost[c] {
		glyph = glyphShip
		if v.ghostBad {
			style = badStyle
		} else {
			style = ghostStyle
		}
	}
	if v.cursor != nil && *v.cursor == c {
		if glyph == glyphWater {
			glyph = glyphTarget
		}
		style = cursorStyle
	}

	return style.Render(glyph)
}

func padRow(y int) string {
	if y < 10 {
		return "  " + string(rune('0'+y))
	}
	return " " + string(rune('0'+y/10)) + string(rune('0'+y%10))
}

// centerText centers a line of text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

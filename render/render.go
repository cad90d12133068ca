// Package render draws game views for terminals with lipgloss.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-sweeper/game"
	"github.com/beka-birhanu/vinom-sweeper/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 3

// colorCodes translates the display color names into terminal colors.
var colorCodes = map[string]lipgloss.Color{
	"blue":      lipgloss.Color("#0000FF"),
	"green":     lipgloss.Color("#008000"),
	"red":       lipgloss.Color("#FF0000"),
	"purple":    lipgloss.Color("#800080"),
	"maroon":    lipgloss.Color("#800000"),
	"turquoise": lipgloss.Color("#40E0D0"),
	"black":     lipgloss.Color("#000000"),
	"gray":      lipgloss.Color("#808080"),
}

var (
	base     = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	hidden   = base.Background(lipgloss.Color("252")).Foreground(lipgloss.Color("240"))
	opened   = base.Background(lipgloss.Color("255"))
	flagged  = base.Background(lipgloss.Color("252")).Foreground(lipgloss.Color("196")).Bold(true)
	bomb     = base.Background(lipgloss.Color("218")).Foreground(lipgloss.Color("0"))
	exploded = base.Background(lipgloss.Color("196")).Foreground(lipgloss.Color("0")).Bold(true)
	label    = base.Foreground(lipgloss.Color("244"))
	status   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	won      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lost     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Board renders the grid with row and column labels.
func Board(view viewmodel.GameView) string {
	rows := make([]string, 0, view.Size+1)

	header := make([]string, 0, view.Size+1)
	header = append(header, label.Render(""))
	for col := 0; col < view.Size; col++ {
		header = append(header, label.Render(strconv.Itoa(col)))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for r, row := range view.Cells {
		line := make([]string, 0, len(row)+1)
		line = append(line, label.Render(strconv.Itoa(r)))
		for _, cell := range row {
			line = append(line, Cell(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Cell renders a single cell.
func Cell(cell viewmodel.CellView) string {
	switch cell.State {
	case viewmodel.StateFlagged:
		return flagged.Render("F")
	case viewmodel.StateBomb:
		return bomb.Render("*")
	case viewmodel.StateExploded:
		return exploded.Render("*")
	case viewmodel.StateOpened:
		if cell.Count == 0 {
			return opened.Render("")
		}
		return opened.Foreground(colorCodes[cell.Color]).Render(strconv.Itoa(cell.Count))
	default:
		return hidden.Render("·")
	}
}

// Status renders the counter line and, once the game is over, the outcome.
func Status(view viewmodel.GameView) string {
	var b strings.Builder
	b.WriteString(status.Render(fmt.Sprintf("Bombs remaining: %d", view.BombsRemaining)))

	switch view.State {
	case game.Won.String():
		b.WriteString("\n")
		b.WriteString(won.Render("You win! All safe cells revealed."))
	case game.Lost.String():
		b.WriteString("\n")
		b.WriteString(lost.Render("Game over. You hit a bomb."))
	}
	return b.String()
}

// Package viewmodel turns a game into the read-only shape consumed by front ends.
package viewmodel

import (
	"github.com/beka-birhanu/vinom-sweeper/board"
	"github.com/beka-birhanu/vinom-sweeper/game"
)

// Cell display states.
const (
	StateHidden   = "hidden"
	StateFlagged  = "flagged"
	StateOpened   = "opened"
	StateBomb     = "bomb"
	StateExploded = "exploded"
)

// NumberColors maps a neighbor bomb count to its display color. Zero renders blank.
var NumberColors = map[int]string{
	1: "blue",
	2: "green",
	3: "red",
	4: "purple",
	5: "maroon",
	6: "turquoise",
	7: "black",
	8: "gray",
}

// CellView is the rendering of one cell.
type CellView struct {
	State string `json:"state"`
	Count int    `json:"count,omitempty"`
	Color string `json:"color,omitempty"`
}

// GameView is the rendering of a whole game.
type GameView struct {
	Size           int          `json:"size"`
	Cells          [][]CellView `json:"cells"`
	BombsRemaining int          `json:"bombs_remaining"`
	FlagsUsed      int          `json:"flags_used"`
	State          string       `json:"state"`
}

// NewGameView builds the view of g. Bomb positions stay hidden while the game is active.
func NewGameView(g *game.Game) GameView {
	b := g.Board()
	size := b.Size()
	trigger, lost := g.Trigger()

	cells := make([][]CellView, size)
	for row := 0; row < size; row++ {
		cells[row] = make([]CellView, size)
		for col := 0; col < size; col++ {
			cell, _ := b.CellAt(row, col)
			cells[row][col] = newCellView(cell, lost && trigger == board.Position{Row: row, Col: col})
		}
	}

	return GameView{
		Size:           size,
		Cells:          cells,
		BombsRemaining: g.BombsRemaining(),
		FlagsUsed:      g.FlagsUsed(),
		State:          g.State().String(),
	}
}

func newCellView(cell board.Cell, exploded bool) CellView {
	switch {
	case exploded:
		return CellView{State: StateExploded}
	case cell.IsRevealed && cell.IsBomb:
		return CellView{State: StateBomb}
	case cell.IsFlagged:
		return CellView{State: StateFlagged}
	case !cell.IsRevealed:
		return CellView{State: StateHidden}
	default:
		return CellView{
			State: StateOpened,
			Count: cell.NeighborBombs,
			Color: NumberColors[cell.NeighborBombs],
		}
	}
}

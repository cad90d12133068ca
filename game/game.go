package game

import (
	"errors"

	"github.com/beka-birhanu/vinom-sweeper/board"
	"github.com/gammazero/deque"
)

// Game-related errors.
var (
	ErrNilBoard = errors.New("game requires a board")
)

// State is the phase of a game.
type State int

// Game states. Won and Lost are terminal.
const (
	Active State = iota
	Won
	Lost
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Observer receives the outcome of game actions.
// Methods are called synchronously, after the state has been updated.
type Observer interface {
	CellsRevealed(positions []board.Position)
	FlagToggled(pos board.Position, flagged bool)
	Won()
	Lost(trigger board.Position)
}

// Game represents a single minesweeper session.
// It owns its board and is the only component that changes reveal and flag marks.
type Game struct {
	board     *board.Board   // The board being played.
	state     State          // Current phase of the game.
	flagsUsed int            // Number of currently flagged cells.
	trigger   board.Position // Bomb that ended the game, valid when state is Lost.
	observer  Observer       // Optional listener for action outcomes.
}

// New creates a new Game played on b.
func New(b *board.Board) (*Game, error) {
	if b == nil {
		return nil, ErrNilBoard
	}

	return &Game{
		board: b,
		state: Active,
	}, nil
}

// SetObserver registers o to receive action outcomes. A nil o removes the observer.
func (g *Game) SetObserver(o Observer) {
	g.observer = o
}

// Board returns the board of the game. Callers must treat it as read-only.
func (g *Game) Board() *board.Board {
	return g.board
}

// State returns the current phase of the game.
func (g *Game) State() State {
	return g.state
}

// FlagsUsed returns the number of flagged cells.
func (g *Game) FlagsUsed() int {
	return g.flagsUsed
}

// BombsRemaining returns the bomb count minus the flags used.
// It goes negative when the player places more flags than there are bombs.
func (g *Game) BombsRemaining() int {
	return g.board.BombCount() - g.flagsUsed
}

// Trigger returns the bomb that ended the game. The second value is false
// unless the game was lost.
func (g *Game) Trigger() (board.Position, bool) {
	return g.trigger, g.state == Lost
}

// Reveal opens the cell at (row, col).
//
// Nothing happens when the game is over, the coordinates are out of range, or
// the cell is already revealed or flagged. Revealing a bomb loses the game.
// Revealing a cell without adjacent bombs also opens its neighborhood, and the
// game is won once every safe cell is open.
func (g *Game) Reveal(row, col int) {
	if g.state != Active {
		return
	}

	cell, ok := g.board.CellAt(row, col)
	if !ok || cell.IsRevealed || cell.IsFlagged {
		return
	}

	pos := board.Position{Row: row, Col: col}
	if cell.IsBomb {
		g.lose(pos)
		return
	}

	revealed := g.floodReveal(pos)
	if g.observer != nil {
		g.observer.CellsRevealed(revealed)
	}

	if g.board.AllSafeRevealed() {
		g.state = Won
		if g.observer != nil {
			g.observer.Won()
		}
	}
}

// ToggleFlag flips the flag on the cell at (row, col).
// Nothing happens when the game is over, the coordinates are out of range, or
// the cell is already revealed.
func (g *Game) ToggleFlag(row, col int) {
	if g.state != Active {
		return
	}

	cell, ok := g.board.CellAt(row, col)
	if !ok || cell.IsRevealed {
		return
	}

	pos := board.Position{Row: row, Col: col}
	flagged := !cell.IsFlagged
	g.board.SetFlagged(pos, flagged)
	if flagged {
		g.flagsUsed++
	} else {
		g.flagsUsed--
	}

	if g.observer != nil {
		g.observer.FlagToggled(pos, flagged)
	}
}

// floodReveal opens start and spreads breadth-first through cells without
// adjacent bombs. Bombs and flagged cells are never opened, so flags stop the
// spread. Cells are marked when queued, so each one is processed once.
func (g *Game) floodReveal(start board.Position) []board.Position {
	var (
		queue    deque.Deque[board.Position]
		revealed []board.Position
	)

	g.board.MarkRevealed(start)
	queue.PushBack(start)

	for queue.Len() != 0 {
		pos := queue.PopFront()
		revealed = append(revealed, pos)

		cell, _ := g.board.CellAt(pos.Row, pos.Col)
		if cell.NeighborBombs != 0 {
			continue
		}

		for _, nbr := range g.board.Neighbors(pos) {
			next, _ := g.board.CellAt(nbr.Row, nbr.Col)
			if next.IsRevealed || next.IsFlagged || next.IsBomb {
				continue
			}
			g.board.MarkRevealed(nbr)
			queue.PushBack(nbr)
		}
	}

	return revealed
}

// lose ends the game and exposes every bomb.
func (g *Game) lose(trigger board.Position) {
	g.state = Lost
	g.trigger = trigger
	for _, pos := range g.board.Bombs() {
		g.board.MarkRevealed(pos)
	}

	if g.observer != nil {
		g.observer.Lost(trigger)
	}
}

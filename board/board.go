/*
Package board provides the square minesweeper grid.

It defines the `Board` structure, a flat buffer of `Cell` values that record
whether a position hides a bomb, whether it has been revealed or flagged, and
how many bombs surround it.

Bombs are placed once at construction, uniformly at random without
replacement, and the neighbor counts are computed right after. The bomb
layout never changes afterwards; only the revealed and flagged marks do.
*/
package board

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

var (
	// Directions lists the offsets of the up to eight cells surrounding a position.
	Directions = [8]Position{
		{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1},
		{Row: 0, Col: -1}, {Row: 0, Col: 1},
		{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}

	ErrInvalidSize       = errors.New("board size must be positive")
	ErrInvalidBombCount  = errors.New("bomb count cannot be negative")
	ErrBombCountTooHigh  = errors.New("bomb count must be less than total cells")
	ErrSizeTooLarge      = errors.New("board size is too large")
	ErrInvalidBombLayout = errors.New("invalid bomb layout")
)

// Board represents a size x size minesweeper grid.
type Board struct {
	size      int    // Number of rows and columns
	bombCount int    // Number of cells hiding a bomb
	cells     []Cell // Cells indexed by row*size+col
}

type options struct {
	rng   *rand.Rand
	bombs []Position
}

// Option configures board construction.
type Option func(*options)

// WithRand sets the random source used to place bombs.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithBombsAt places bombs at exactly the given positions instead of at random.
// The number of positions must match the bomb count passed to New.
func WithBombsAt(positions ...Position) Option {
	return func(o *options) {
		o.bombs = positions
	}
}

// New initializes a board of the given size with bombCount bombs.
func New(size, bombCount int, opts ...Option) (*Board, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if bombCount < 0 {
		return nil, ErrInvalidBombCount
	}
	if size > math.MaxInt/size {
		return nil, ErrSizeTooLarge
	}
	if bombCount >= size*size {
		return nil, ErrBombCountTooHigh
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Board{
		size:      size,
		bombCount: bombCount,
		cells:     make([]Cell, size*size),
	}

	if o.bombs != nil {
		if err := b.placeBombsAt(o.bombs); err != nil {
			return nil, err
		}
	} else {
		rng := o.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		b.placeBombs(rng)
	}

	b.calculateNeighbors()
	return b, nil
}

// placeBombs picks bombCount distinct cells with a partial Fisher-Yates shuffle.
func (b *Board) placeBombs(rng *rand.Rand) {
	indices := make([]int, len(b.cells))
	for i := range indices {
		indices[i] = i
	}

	for i := 0; i < b.bombCount; i++ {
		j := i + rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
		b.cells[indices[i]].IsBomb = true
	}
}

// placeBombsAt marks the given positions as bombs.
func (b *Board) placeBombsAt(positions []Position) error {
	if len(positions) != b.bombCount {
		return ErrInvalidBombLayout
	}

	for _, pos := range positions {
		if !b.InBound(pos.Row, pos.Col) {
			return ErrInvalidBombLayout
		}
		cell := &b.cells[b.index(pos)]
		if cell.IsBomb {
			return ErrInvalidBombLayout
		}
		cell.IsBomb = true
	}

	return nil
}

// calculateNeighbors stores the adjacent bomb count on every safe cell.
func (b *Board) calculateNeighbors() {
	for i := range b.cells {
		if b.cells[i].IsBomb {
			continue
		}

		count := 0
		for _, nbr := range b.Neighbors(b.position(i)) {
			if b.cells[b.index(nbr)].IsBomb {
				count++
			}
		}
		b.cells[i].NeighborBombs = count
	}
}

func (b *Board) index(pos Position) int {
	return pos.Row*b.size + pos.Col
}

func (b *Board) position(index int) Position {
	return Position{Row: index / b.size, Col: index % b.size}
}

// Size returns the number of rows (and columns) of the board.
func (b *Board) Size() int {
	return b.size
}

// BombCount returns the number of bombs on the board.
func (b *Board) BombCount() int {
	return b.bombCount
}

// InBound reports whether the coordinates lie on the board.
func (b *Board) InBound(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// CellAt returns a copy of the cell at the given coordinates.
// The second value is false when the coordinates are out of range.
func (b *Board) CellAt(row, col int) (Cell, bool) {
	if !b.InBound(row, col) {
		return Cell{}, false
	}
	return b.cells[b.index(Position{Row: row, Col: col})], true
}

// Neighbors returns the in-bound positions surrounding pos.
func (b *Board) Neighbors(pos Position) []Position {
	result := make([]Position, 0, len(Directions))
	for _, delta := range Directions {
		nbr := Position{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
		if b.InBound(nbr.Row, nbr.Col) {
			result = append(result, nbr)
		}
	}
	return result
}

// Bombs returns the positions of every bomb in row-major order.
func (b *Board) Bombs() []Position {
	result := make([]Position, 0, b.bombCount)
	for i, cell := range b.cells {
		if cell.IsBomb {
			result = append(result, b.position(i))
		}
	}
	return result
}

// MarkRevealed sets the revealed mark of the cell at pos.
// Out of range positions are ignored.
func (b *Board) MarkRevealed(pos Position) {
	if !b.InBound(pos.Row, pos.Col) {
		return
	}
	b.cells[b.index(pos)].IsRevealed = true
}

// SetFlagged sets the flag mark of the cell at pos.
// Out of range positions are ignored.
func (b *Board) SetFlagged(pos Position, flagged bool) {
	if !b.InBound(pos.Row, pos.Col) {
		return
	}
	b.cells[b.index(pos)].IsFlagged = flagged
}

// AllSafeRevealed reports whether every cell without a bomb has been revealed.
func (b *Board) AllSafeRevealed() bool {
	for _, cell := range b.cells {
		if !cell.IsBomb && !cell.IsRevealed {
			return false
		}
	}
	return true
}

// String provides a textual representation of the board.
//
//	-  concealed
//	F  flagged
//	*  revealed bomb
//	.  revealed, no adjacent bomb
//	n  revealed, n adjacent bombs
func (b *Board) String() string {
	var output strings.Builder

	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if col > 0 {
				output.WriteByte(' ')
			}

			cell := b.cells[b.index(Position{Row: row, Col: col})]
			switch {
			case cell.IsFlagged:
				output.WriteByte('F')
			case !cell.IsRevealed:
				output.WriteByte('-')
			case cell.IsBomb:
				output.WriteByte('*')
			case cell.NeighborBombs == 0:
				output.WriteByte('.')
			default:
				output.WriteString(strconv.Itoa(cell.NeighborBombs))
			}
		}
		output.WriteByte('\n')
	}

	return output.String()
}

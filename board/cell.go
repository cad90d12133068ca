package board

// Cell represents a single position on a minesweeper board.
type Cell struct {
	IsBomb        bool // IsBomb indicates whether the cell hides a bomb.
	IsRevealed    bool // IsRevealed indicates whether the cell has been opened.
	IsFlagged     bool // IsFlagged indicates whether the player marked the cell.
	NeighborBombs int  // NeighborBombs is the number of bombs around the cell. Never read on a bomb.
}

// Position represents the coordinates of a cell on the board.
type Position struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

package i

import (
	"context"

	"github.com/beka-birhanu/vinom-sweeper/viewmodel"
	"github.com/google/uuid"
)

// GameSessionManager owns running games and applies player actions to them.
type GameSessionManager interface {
	// NewSession starts a game on a fresh board and returns its ID and initial view.
	NewSession(size, bombCount int) (uuid.UUID, viewmodel.GameView, error)

	// View returns the current view of a session.
	View(ctx context.Context, id uuid.UUID) (viewmodel.GameView, error)

	// Reveal opens a cell and returns the resulting view.
	Reveal(ctx context.Context, id uuid.UUID, row, col int) (viewmodel.GameView, error)

	// ToggleFlag flips the flag on a cell and returns the resulting view.
	ToggleFlag(ctx context.Context, id uuid.UUID, row, col int) (viewmodel.GameView, error)

	// Close ends a session and forgets it.
	Close(id uuid.UUID) error
}

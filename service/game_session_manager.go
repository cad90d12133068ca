package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/board"
	"github.com/beka-birhanu/vinom-sweeper/game"
	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/beka-birhanu/vinom-sweeper/viewmodel"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxBoardSize = 50
	defaultSessionTTL   = 30 * time.Minute
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBoardTooLarge   = errors.New("board size exceeds the allowed maximum")
	ErrSessionBusy     = errors.New("session is busy")
)

// session is a running game and the last time a player touched it.
type session struct {
	game     *game.Game
	lastSeen time.Time
}

// GameSessionManager keeps running games keyed by session ID.
// Actions on one session are serialized through the configured Locker.
type GameSessionManager struct {
	sessions     map[uuid.UUID]*session
	locker       i.Locker
	logger       *logrus.Entry
	maxBoardSize int
	ttl          time.Duration
	now          func() time.Time
	newRand      func() *rand.Rand
	sync.RWMutex
}

// Config holds the dependencies of a GameSessionManager.
type Config struct {
	Locker       i.Locker
	Logger       *logrus.Entry
	MaxBoardSize int           // Largest accepted board size, defaults to 50
	TTL          time.Duration // Idle time before a session is evicted, defaults to 30 minutes
	Clock        func() time.Time
	RandFactory  func() *rand.Rand // Random source for each new board, defaults to a time-seeded one
}

// NewGameSessionManager creates a GameSessionManager from c.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.Locker == nil {
		return nil, errors.New("session manager requires a locker")
	}
	if c.Logger == nil {
		return nil, errors.New("session manager requires a logger")
	}

	gsm := &GameSessionManager{
		sessions:     make(map[uuid.UUID]*session),
		locker:       c.Locker,
		logger:       c.Logger,
		maxBoardSize: c.MaxBoardSize,
		ttl:          c.TTL,
		now:          c.Clock,
		newRand:      c.RandFactory,
	}

	if gsm.maxBoardSize <= 0 {
		gsm.maxBoardSize = defaultMaxBoardSize
	}
	if gsm.ttl <= 0 {
		gsm.ttl = defaultSessionTTL
	}
	if gsm.now == nil {
		gsm.now = time.Now
	}
	if gsm.newRand == nil {
		gsm.newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}

	return gsm, nil
}

// NewSession starts a game on a fresh size x size board with bombCount bombs.
func (g *GameSessionManager) NewSession(size, bombCount int) (uuid.UUID, viewmodel.GameView, error) {
	if size > g.maxBoardSize {
		return uuid.Nil, viewmodel.GameView{}, fmt.Errorf("%w: %d > %d", ErrBoardTooLarge, size, g.maxBoardSize)
	}

	b, err := board.New(size, bombCount, board.WithRand(g.newRand()))
	if err != nil {
		return uuid.Nil, viewmodel.GameView{}, fmt.Errorf("creating board: %w", err)
	}

	gm, err := game.New(b)
	if err != nil {
		return uuid.Nil, viewmodel.GameView{}, fmt.Errorf("creating game: %w", err)
	}

	sessionID := g.saveSession(gm)
	g.logger.WithFields(logrus.Fields{
		"session": sessionID,
		"size":    size,
		"bombs":   bombCount,
	}).Info("started new game")

	return sessionID, viewmodel.NewGameView(gm), nil
}

// View returns the current view of a session.
func (g *GameSessionManager) View(ctx context.Context, id uuid.UUID) (viewmodel.GameView, error) {
	return g.apply(ctx, id, func(*game.Game) {})
}

// Reveal opens the cell at (row, col) in a session.
func (g *GameSessionManager) Reveal(ctx context.Context, id uuid.UUID, row, col int) (viewmodel.GameView, error) {
	return g.apply(ctx, id, func(gm *game.Game) {
		gm.Reveal(row, col)
	})
}

// ToggleFlag flips the flag on the cell at (row, col) in a session.
func (g *GameSessionManager) ToggleFlag(ctx context.Context, id uuid.UUID, row, col int) (viewmodel.GameView, error) {
	return g.apply(ctx, id, func(gm *game.Game) {
		gm.ToggleFlag(row, col)
	})
}

// Close ends a session and forgets it.
func (g *GameSessionManager) Close(id uuid.UUID) error {
	g.Lock()
	defer g.Unlock()

	if _, ok := g.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(g.sessions, id)
	g.logger.WithField("session", id).Info("closed session")
	return nil
}

// Count returns the number of live sessions.
func (g *GameSessionManager) Count() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.sessions)
}

// Evict drops sessions idle for longer than the TTL and returns how many were dropped.
func (g *GameSessionManager) Evict() int {
	g.Lock()
	defer g.Unlock()

	cutoff := g.now().Add(-g.ttl)
	evicted := 0
	for id, s := range g.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(g.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		g.logger.WithField("count", evicted).Info("evicted idle sessions")
	}
	return evicted
}

// StartJanitor runs Evict every interval until ctx is done.
func (g *GameSessionManager) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				g.Evict()
			}
		}
	}()
}

// apply runs action on a session while holding its lock and returns the resulting view.
func (g *GameSessionManager) apply(ctx context.Context, id uuid.UUID, action func(*game.Game)) (viewmodel.GameView, error) {
	unlock, err := g.locker.Lock(ctx, id.String())
	if err != nil {
		g.logger.WithField("session", id).Errorf("acquiring session lock: %v", err)
		return viewmodel.GameView{}, fmt.Errorf("%w: acquiring session lock: %w", ErrSessionBusy, err)
	}
	defer unlock()

	s, ok := g.session(id)
	if !ok {
		return viewmodel.GameView{}, ErrSessionNotFound
	}

	before := s.game.State()
	action(s.game)
	after := s.game.State()

	g.Lock()
	s.lastSeen = g.now()
	g.Unlock()

	if before != after {
		g.logger.WithFields(logrus.Fields{
			"session": id,
			"state":   after,
		}).Info("game ended")
	}

	return viewmodel.NewGameView(s.game), nil
}

func (g *GameSessionManager) session(id uuid.UUID) (*session, bool) {
	g.RLock()
	defer g.RUnlock()
	s, ok := g.sessions[id]
	return s, ok
}

func (g *GameSessionManager) saveSession(gm *game.Game) uuid.UUID {
	g.Lock()
	defer g.Unlock()

	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	g.sessions[sessionID] = &session{game: gm, lastSeen: g.now()}
	return sessionID
}

package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/api"
	api_i "github.com/beka-birhanu/vinom-sweeper/api/i"
	"github.com/beka-birhanu/vinom-sweeper/api/identity"
	"github.com/beka-birhanu/vinom-sweeper/config"
	"github.com/beka-birhanu/vinom-sweeper/infrastruture/lock"
	"github.com/beka-birhanu/vinom-sweeper/infrastruture/token"
	"github.com/beka-birhanu/vinom-sweeper/logger"
	"github.com/beka-birhanu/vinom-sweeper/service"
	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/beka-birhanu/vinom-sweeper/viewmodel"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (http.Handler, i.Locker) {
	t.Helper()
	l, err := logger.New("SESSION", config.ColorCyan, io.Discard)
	require.NoError(t, err)

	locker := lock.NewMemoryLocker()
	gsm, err := service.NewGameSessionManager(&service.Config{
		Locker:       locker,
		Logger:       l,
		MaxBoardSize: 20,
		RandFactory: func() *rand.Rand {
			return rand.New(rand.NewSource(11))
		},
	})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("secret", "test")
	controller, err := NewGameController(gsm, tokenizer, time.Hour)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Mode:                    gin.TestMode,
		Controllers:             []api_i.Controller{controller},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	})
	return router.Handler(), locker
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doContext(t, context.Background(), h, method, path, token, body)
}

func doContext(t *testing.T, ctx context.Context, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func create(t *testing.T, h http.Handler, size, bombs int) NewGameResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/games", "", gin.H{"size": size, "bombs": bombs})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp NewGameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreate(t *testing.T) {
	h, _ := newServer(t)

	t.Run("Valid request", func(t *testing.T) {
		resp := create(t, h, 4, 3)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, 4, resp.Game.Size)
		assert.Equal(t, 3, resp.Game.BombsRemaining)
		for _, row := range resp.Game.Cells {
			for _, cell := range row {
				assert.Equal(t, viewmodel.StateHidden, cell.State)
			}
		}
	})

	t.Run("Zero bombs is allowed", func(t *testing.T) {
		resp := create(t, h, 2, 0)
		assert.Equal(t, "active", resp.Game.State)
	})

	t.Run("Construction errors", func(t *testing.T) {
		tests := []struct {
			size, bombs int
			kind        string
		}{
			{size: 0, bombs: 0, kind: "InvalidSize"},
			{size: 3, bombs: -2, kind: "InvalidBombCount"},
			{size: 3, bombs: 9, kind: "BombCountTooHigh"},
			{size: 21, bombs: 1, kind: "BoardTooLarge"},
		}

		for _, tt := range tests {
			rec := do(t, h, http.MethodPost, "/api/v1/games", "", gin.H{"size": tt.size, "bombs": tt.bombs})
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
		}
	})

	t.Run("Missing fields", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/games", "", gin.H{"size": 3})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPlay(t *testing.T) {
	h, _ := newServer(t)
	game := create(t, h, 3, 0)
	base := "/api/v1/games/" + game.ID.String()

	t.Run("Requires token", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, base, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Token of another game is rejected", func(t *testing.T) {
		other := create(t, h, 3, 1)
		rec := do(t, h, http.MethodGet, base, other.Token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Flag", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, base+"/flag", game.Token, gin.H{"row": 2, "col": 2})
		require.Equal(t, http.StatusOK, rec.Code)

		var view viewmodel.GameView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, 1, view.FlagsUsed)
		assert.Equal(t, viewmodel.StateFlagged, view.Cells[2][2].State)
	})

	t.Run("Missing coordinates", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, base+"/reveal", game.Token, gin.H{"row": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Reveal and win", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, base+"/reveal", game.Token, gin.H{"row": 0, "col": 0})
		require.Equal(t, http.StatusOK, rec.Code)

		var view viewmodel.GameView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "active", view.State, "flagged cell blocks the win")

		do(t, h, http.MethodPost, base+"/flag", game.Token, gin.H{"row": 2, "col": 2})
		rec = do(t, h, http.MethodPost, base+"/reveal", game.Token, gin.H{"row": 2, "col": 2})
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "won", view.State)
	})

	t.Run("View", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, base, game.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var view viewmodel.GameView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "won", view.State)
	})

	t.Run("Close", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, base, game.Token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, h, http.MethodGet, base, game.Token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBusySession(t *testing.T) {
	h, locker := newServer(t)
	game := create(t, h, 3, 0)
	base := "/api/v1/games/" + game.ID.String()

	unlock, err := locker.Lock(context.Background(), game.ID.String())
	require.NoError(t, err)
	defer unlock()

	requests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "View", method: http.MethodGet, path: base},
		{name: "Reveal", method: http.MethodPost, path: base + "/reveal", body: gin.H{"row": 0, "col": 0}},
		{name: "Flag", method: http.MethodPost, path: base + "/flag", body: gin.H{"row": 0, "col": 0}},
	}

	for _, tt := range requests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan *httptest.ResponseRecorder, 1)
			go func() {
				done <- doContext(t, ctx, h, tt.method, tt.path, game.Token, tt.body)
			}()

			select {
			case rec := <-done:
				assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			case <-time.After(2 * time.Second):
				t.Fatal("request kept waiting after its context expired")
			}
		})
	}
}

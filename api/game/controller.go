// Package gameapi handles game creation and player actions.
package gameapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/board"
	"github.com/beka-birhanu/vinom-sweeper/service"
	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/beka-birhanu/vinom-sweeper/viewmodel"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultTokenTTL = 24 * time.Hour

// GameController exposes game sessions over HTTP.
type GameController struct {
	sessions  i.GameSessionManager
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
}

// NewGameController initializes a GameController. A non-positive tokenTTL uses 24 hours.
func NewGameController(gsm i.GameSessionManager, t i.Tokenizer, tokenTTL time.Duration) (*GameController, error) {
	if gsm == nil || t == nil {
		return nil, errors.New("game controller requires a session manager and a tokenizer")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return &GameController{
		sessions:  gsm,
		tokenizer: t,
		tokenTTL:  tokenTTL,
	}, nil
}

// RegisterPublic registers public routes.
func (gc *GameController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/games", gc.create)
}

// RegisterProtected registers routes that need the session token.
func (gc *GameController) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.GET("/:ID", gc.view)
		games.POST("/:ID/reveal", gc.reveal)
		games.POST("/:ID/flag", gc.flag)
		games.DELETE("/:ID", gc.close)
	}
}

// create starts a new game and hands out its token.
func (gc *GameController) create(ctx *gin.Context) {
	var request NewGameRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id, view, err := gc.sessions.NewSession(*request.Size, *request.Bombs)
	if err != nil {
		writeError(ctx, err)
		return
	}

	token, err := gc.tokenizer.Generate(id, gc.tokenTTL)
	if err != nil {
		_ = gc.sessions.Close(id)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error while issuing session token"})
		return
	}

	ctx.JSON(http.StatusCreated, NewGameResponse{ID: id, Token: token, Game: view})
}

// view returns the current board.
func (gc *GameController) view(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	view, err := gc.sessions.View(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// reveal opens a cell.
func (gc *GameController) reveal(ctx *gin.Context) {
	gc.cellAction(ctx, gc.sessions.Reveal)
}

// flag toggles the flag on a cell.
func (gc *GameController) flag(ctx *gin.Context) {
	gc.cellAction(ctx, gc.sessions.ToggleFlag)
}

// close forgets a session.
func (gc *GameController) close(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	if err := gc.sessions.Close(id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// cellAction binds the target cell and applies action to the session.
func (gc *GameController) cellAction(ctx *gin.Context, action func(context.Context, uuid.UUID, int, int) (viewmodel.GameView, error)) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request CellRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := action(ctx.Request.Context(), id, *request.Row, *request.Col)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// sessionID reads the route's session, writing a 400 when it is malformed.
func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service and board errors to HTTP responses.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrInvalidSize):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "InvalidSize"})
	case errors.Is(err, board.ErrInvalidBombCount):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "InvalidBombCount"})
	case errors.Is(err, board.ErrSizeTooLarge):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "BoardTooLarge"})
	case errors.Is(err, board.ErrBombCountTooHigh):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "BombCountTooHigh"})
	case errors.Is(err, service.ErrBoardTooLarge):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "BoardTooLarge"})
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "No Session"})
	case errors.Is(err, service.ErrSessionBusy):
		ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "session busy"})
	default:
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "unexpected error"})
	}
}

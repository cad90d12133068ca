// Package gameapi provides structures and utilities for playing minesweeper over HTTP.
package gameapi

import (
	"github.com/beka-birhanu/vinom-sweeper/viewmodel"
	"github.com/google/uuid"
)

// NewGameRequest represents a request to start a new game.
type NewGameRequest struct {
	Size  *int `json:"size" binding:"required"`
	Bombs *int `json:"bombs" binding:"required"`
}

// CellRequest targets a single cell.
type CellRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// NewGameResponse carries the new session, its token and the initial board.
type NewGameResponse struct {
	ID    uuid.UUID          `json:"id"`
	Token string             `json:"token"`
	Game  viewmodel.GameView `json:"game"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

package domain

import "errors"

var (
	// ErrNoSelection is returned when an operation needs a tracked player
	// and none has been selected.
	ErrNoSelection = errors.New("no player selected")
	// ErrPlayerNotFound indicates the requested identity is not on the board.
	ErrPlayerNotFound = errors.New("player not found on the board")
)

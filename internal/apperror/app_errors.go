package apperror

import "errors"

var (
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrGameFinished     = errors.New("game is already finished")
	ErrCorruptSnapshot  = errors.New("corrupt game snapshot")
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownStorage   = errors.New("unknown storage backend")
	ErrEmptySessionID   = errors.New("session id is empty")
	ErrUnknownGameState = errors.New("unknown game state")
)

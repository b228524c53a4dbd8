package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrGameFinished    = errors.New("game is already finished")
	ErrRollPending     = errors.New("dice already rolled, move or pass first")
	ErrNoRollPending   = errors.New("roll the dice first")
	ErrInvalidMove     = errors.New("invalid move")
	ErrRecordNotFound  = errors.New("game record not found")
	ErrRecordExists    = errors.New("game record already exists")
)

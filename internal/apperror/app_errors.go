package apperror

import "errors"

var (
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrCellOutOfBounds = errors.New("cell is out of bounds")
	ErrGameAlreadyOver = errors.New("game is already over")
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidConfig   = errors.New("invalid game configuration")
)

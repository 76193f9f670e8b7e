package gomoku

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Board - stone occupancy of a square grid. The per-player sets never intersect
// and only ever hold in-bounds cells.
type Board struct {
	size   int
	stones map[entity.Player]entity.CellSet
}

func NewBoard(size int) *Board {
	return &Board{
		size: size,
		stones: map[entity.Player]entity.CellSet{
			entity.White: make(entity.CellSet),
			entity.Black: make(entity.CellSet),
		},
	}
}

func (that *Board) Size() int {
	return that.size
}

// IsOccupied - true if either player has a stone on the cell. Out-of-range cells are never occupied.
func (that *Board) IsOccupied(cell entity.Cell) bool {
	return that.OccupiedBy(cell) != entity.None
}

// OccupiedBy - owner of the stone on the cell, or entity.None.
func (that *Board) OccupiedBy(cell entity.Cell) entity.Player {
	for player, stones := range that.stones {
		if stones.Has(cell) {
			return player
		}
	}

	return entity.None
}

// Place - puts a stone of the player on an empty cell. On error the board is left as it was.
func (that *Board) Place(player entity.Player, cell entity.Cell) error {
	stones, ok := that.stones[player]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}

	if !cell.InBounds(that.size) {
		return fmt.Errorf("%w: %s on %dx%d grid", apperror.ErrCellOutOfBounds, cell, that.size, that.size)
	}

	if that.IsOccupied(cell) {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, cell)
	}

	stones.Add(cell)

	return nil
}

// StonesOf - copy of the player's stones; changing it does not affect the board.
func (that *Board) StonesOf(player entity.Player) entity.CellSet {
	stones, ok := that.stones[player]
	if !ok {
		return make(entity.CellSet)
	}

	return stones.Clone()
}

// Count - number of stones on the board.
func (that *Board) Count() int {
	return that.stones[entity.White].Len() + that.stones[entity.Black].Len()
}

func (that *Board) IsFull() bool {
	return that.Count() == that.size*that.size
}

// stonesOf - live set of the player, for read-only use inside the package.
func (that *Board) stonesOf(player entity.Player) entity.CellSet {
	return that.stones[player]
}

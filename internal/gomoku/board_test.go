package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Places a stone on an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(10)

		// When: white places a stone
		err := board.Place(entity.White, entity.NewCell(3, 4))

		// Then: the cell is occupied by white only
		require.NoError(t, err)
		assert.True(t, board.IsOccupied(entity.NewCell(3, 4)))
		assert.Equal(t, entity.White, board.OccupiedBy(entity.NewCell(3, 4)))
		assert.Equal(t, 1, board.StonesOf(entity.White).Len())
		assert.Equal(t, 0, board.StonesOf(entity.Black).Len())
	})

	t.Run("Error on cell already occupied by either player", func(t *testing.T) {
		// Given: a board with a white stone
		board := NewBoard(10)
		cell := entity.NewCell(5, 5)
		require.NoError(t, board.Place(entity.White, cell))

		// When: both players try the same cell again
		errBlack := board.Place(entity.Black, cell)
		errWhite := board.Place(entity.White, cell)

		// Then: both are rejected and nothing changes
		require.ErrorIs(t, errBlack, apperror.ErrCellOccupied)
		require.ErrorIs(t, errWhite, apperror.ErrCellOccupied)
		assert.Equal(t, 1, board.Count())
		assert.False(t, board.StonesOf(entity.Black).Has(cell))
	})

	t.Run("Error on cell out of bounds", func(t *testing.T) {
		board := NewBoard(10)

		for _, cell := range []entity.Cell{{Col: -1, Row: 0}, {Col: 0, Row: 10}, {Col: 10, Row: 10}} {
			err := board.Place(entity.Black, cell)
			require.ErrorIs(t, err, apperror.ErrCellOutOfBounds)
		}

		assert.Equal(t, 0, board.Count())
	})

	t.Run("Error on unknown player", func(t *testing.T) {
		board := NewBoard(10)

		err := board.Place(entity.None, entity.NewCell(0, 0))

		require.ErrorIs(t, err, ErrUnknownPlayer)
		assert.False(t, board.IsOccupied(entity.NewCell(0, 0)))
	})
}

func TestBoard_IsOccupied(t *testing.T) {
	// Given: an empty board
	board := NewBoard(10)

	// Then: out-of-range queries return false instead of failing
	assert.False(t, board.IsOccupied(entity.NewCell(-5, 100)))
	assert.False(t, board.IsOccupied(entity.NewCell(0, 0)))
}

func TestBoard_StonesOf(t *testing.T) {
	// Given: a board with one black stone
	board := NewBoard(10)
	require.NoError(t, board.Place(entity.Black, entity.NewCell(1, 1)))

	// When: the returned set is modified
	stones := board.StonesOf(entity.Black)
	stones.Add(entity.NewCell(2, 2))

	// Then: the board is unaffected
	assert.False(t, board.IsOccupied(entity.NewCell(2, 2)))
	assert.Equal(t, 1, board.Count())
}

func TestBoard_IsFull(t *testing.T) {
	// Given: a 2x2 board
	board := NewBoard(2)

	// When: all four cells are filled
	require.NoError(t, board.Place(entity.White, entity.NewCell(0, 0)))
	require.NoError(t, board.Place(entity.Black, entity.NewCell(1, 0)))
	require.NoError(t, board.Place(entity.White, entity.NewCell(0, 1)))
	assert.False(t, board.IsFull())
	require.NoError(t, board.Place(entity.Black, entity.NewCell(1, 1)))

	// Then: the board is full
	assert.True(t, board.IsFull())
}

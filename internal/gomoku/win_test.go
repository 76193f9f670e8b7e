package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func cellSet(cells ...entity.Cell) entity.CellSet {
	set := make(entity.CellSet, len(cells))
	for _, cell := range cells {
		set.Add(cell)
	}

	return set
}

// line - n cells starting at (col,row) stepping by (dCol,dRow).
func line(col, row, dCol, dRow, n int) []entity.Cell {
	cells := make([]entity.Cell, 0, n)
	for i := range n {
		cells = append(cells, entity.NewCell(col+dCol*i, row+dRow*i))
	}

	return cells
}

func TestWinsAt(t *testing.T) {
	tests := []struct {
		name  string
		cells []entity.Cell
	}{
		{name: "horizontal", cells: line(0, 0, 1, 0, 5)},
		{name: "vertical", cells: line(7, 2, 0, 1, 5)},
		{name: "backslash diagonal", cells: line(1, 1, 1, 1, 5)},
		{name: "slash diagonal", cells: line(0, 9, 1, -1, 5)},
	}

	for _, tt := range tests {
		t.Run("Run of five wins: "+tt.name, func(t *testing.T) {
			// Given: five stones in a line
			stones := cellSet(tt.cells...)

			// Then: every stone of the run reports a win
			for _, cell := range tt.cells {
				assert.True(t, WinsAt(stones, cell, 5), "from %s", cell)
			}
		})

		t.Run("Run of four does not win: "+tt.name, func(t *testing.T) {
			// Given: only the first four stones
			stones := cellSet(tt.cells[:4]...)

			// Then: no stone reports a win
			for _, cell := range tt.cells[:4] {
				assert.False(t, WinsAt(stones, cell, 5), "from %s", cell)
			}
		})
	}

	t.Run("Gap breaks the run", func(t *testing.T) {
		// Given: X X X _ X X
		stones := cellSet(line(0, 0, 1, 0, 3)...)
		stones.Add(entity.NewCell(4, 0))
		stones.Add(entity.NewCell(5, 0))

		// Then: no stone sees five
		assert.False(t, HasWinningRun(stones, 5))
	})
}

func TestWinsAt_Overline(t *testing.T) {
	// Given: six stones in a row
	cells := line(0, 0, 1, 0, 6)
	stones := cellSet(cells...)

	// Then: interior stones count six and do not win
	assert.False(t, WinsAt(stones, entity.NewCell(2, 0), 5))
	assert.False(t, WinsAt(stones, entity.NewCell(3, 0), 5))

	// And: the walk from an end stops after four steps, so the ends count exactly five
	assert.True(t, WinsAt(stones, entity.NewCell(0, 0), 5))
	assert.True(t, WinsAt(stones, entity.NewCell(5, 0), 5))
}

func TestHasWinningRun(t *testing.T) {
	t.Run("Agrees with the last stone for runs built one stone at a time", func(t *testing.T) {
		for _, dir := range lines {
			stones := make(entity.CellSet)

			for i, cell := range line(2, 4, dir.dCol, dir.dRow, 5) {
				stones.Add(cell)

				assert.Equal(t, HasWinningRun(stones, 5), WinsAt(stones, cell, 5), "stone %d of %v", i, dir)
			}
		}
	})

	t.Run("Only the end stones count five when the gap of an overline is filled", func(t *testing.T) {
		// Given: X X X _ X X completed at the gap
		stones := cellSet(line(0, 0, 1, 0, 6)...)
		last := entity.NewCell(3, 0)

		// Then: the last stone counts six, while the end stone counts five
		assert.False(t, WinsAt(stones, last, 5))
		assert.True(t, HasWinningRun(stones, 5))
	})

	t.Run("Empty set never wins", func(t *testing.T) {
		assert.False(t, HasWinningRun(make(entity.CellSet), 5))
	})
}

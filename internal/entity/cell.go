package entity

import (
	"fmt"
	"sort"
)

// Cell - intersection of the grid addressed by column and row.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func NewCell(col, row int) Cell {
	return Cell{Col: col, Row: row}
}

// InBounds - reports whether the cell lies on a grid of size x size lines.
func (that Cell) InBounds(size int) bool {
	return that.Col >= 0 && that.Row >= 0 && that.Col < size && that.Row < size
}

// Add - shifts the cell by (dCol, dRow).
func (that Cell) Add(dCol, dRow int) Cell {
	return Cell{Col: that.Col + dCol, Row: that.Row + dRow}
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d,%d)", that.Col, that.Row)
}

// CellSet - unordered set of cells.
type CellSet map[Cell]struct{}

func (that CellSet) Has(cell Cell) bool {
	_, ok := that[cell]
	return ok
}

func (that CellSet) Add(cell Cell) {
	that[cell] = struct{}{}
}

func (that CellSet) Len() int {
	return len(that)
}

// Clone - returns a copy that shares nothing with the receiver.
func (that CellSet) Clone() CellSet {
	clone := make(CellSet, len(that))
	for cell := range that {
		clone[cell] = struct{}{}
	}

	return clone
}

// Sorted - returns the cells ordered by row, then column.
func (that CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(that))
	for cell := range that {
		cells = append(cells, cell)
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})

	return cells
}

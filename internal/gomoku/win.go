package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// direction - unit step along a line through a cell.
type direction struct {
	dCol, dRow int
}

// lines - horizontal, vertical, "\" and "/" (rows grow downwards).
var lines = [4]direction{
	{dCol: 1, dRow: 0},
	{dCol: 0, dRow: 1},
	{dCol: 1, dRow: 1},
	{dCol: 1, dRow: -1},
}

// WinsAt - reports whether the stone on cell completes a run of exactly winLength
// along any line. stones must contain cell.
func WinsAt(stones entity.CellSet, cell entity.Cell, winLength int) bool {
	for _, line := range lines {
		if runLength(stones, cell, line, winLength) == winLength {
			return true
		}
	}

	return false
}

// HasWinningRun - runs WinsAt from every stone of the set. This is the rule the engine
// applies after each move.
func HasWinningRun(stones entity.CellSet, winLength int) bool {
	for cell := range stones {
		if WinsAt(stones, cell, winLength) {
			return true
		}
	}

	return false
}

// runLength - counts the stone on cell plus up to winLength-1 contiguous stones
// on each side of it. Walking stops at the first gap.
func runLength(stones entity.CellSet, cell entity.Cell, line direction, winLength int) int {
	count := 1

	for i := 1; i < winLength; i++ {
		if !stones.Has(cell.Add(line.dCol*i, line.dRow*i)) {
			break
		}
		count++
	}

	for i := 1; i < winLength; i++ {
		if !stones.Has(cell.Add(-line.dCol*i, -line.dRow*i)) {
			break
		}
		count++
	}

	return count
}

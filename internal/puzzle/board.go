package puzzle

const (
	BoardWidth  = 9  // columns
	BoardHeight = 16 // rows
)

// Board holds locked cells indexed [row][col]. 0 is empty; any other value
// is the brightness the cell was locked with. Board is a value type, so a
// plain assignment is a full copy.
type Board [BoardHeight][BoardWidth]uint8

// CanPlace reports whether every occupied cell of shape, offset by (col, row),
// lands inside the board on an empty cell.
func (b *Board) CanPlace(shape Shape, col, row int) bool {
	for ry := range shape {
		for rx, filled := range shape[ry] {
			if !filled {
				continue
			}
			x, y := col+rx, row+ry
			if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
				return false
			}
			if b[y][x] != 0 {
				return false
			}
		}
	}
	return true
}

// Place writes value into every occupied cell of shape at (col, row).
// It does not check occupancy; callers validate with CanPlace first.
// Cells outside the board are dropped.
func (b *Board) Place(shape Shape, col, row int, value uint8) {
	for ry := range shape {
		for rx, filled := range shape[ry] {
			if !filled {
				continue
			}
			x, y := col+rx, row+ry
			if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
				continue
			}
			b[y][x] = value
		}
	}
}

// FullLines returns the indices of rows with no empty cell, top to bottom.
func (b *Board) FullLines() []int {
	var lines []int
	for y := 0; y < BoardHeight; y++ {
		if b.rowFull(y) {
			lines = append(lines, y)
		}
	}
	return lines
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < BoardWidth; x++ {
		if b[y][x] == 0 {
			return false
		}
	}
	return true
}

// ClearLines returns a copy of the board with the given rows removed. The
// remaining rows keep their order and settle to the bottom; the freed rows
// at the top are empty. Out-of-range and duplicate indices are ignored.
func (b *Board) ClearLines(rows []int) Board {
	var drop [BoardHeight]bool
	for _, y := range rows {
		if y >= 0 && y < BoardHeight {
			drop[y] = true
		}
	}

	var out Board
	dst := BoardHeight - 1
	for y := BoardHeight - 1; y >= 0; y-- {
		if drop[y] {
			continue
		}
		out[dst] = b[y]
		dst--
	}
	return out
}

// ColumnHeights returns, per column, BoardHeight minus the index of the
// topmost filled cell, or 0 for an empty column.
func (b *Board) ColumnHeights() [BoardWidth]int {
	var heights [BoardWidth]int
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardHeight; y++ {
			if b[y][x] != 0 {
				heights[x] = BoardHeight - y
				break
			}
		}
	}
	return heights
}

// AggregateHeight is the sum of ColumnHeights.
func (b *Board) AggregateHeight() int {
	sum := 0
	for _, h := range b.ColumnHeights() {
		sum += h
	}
	return sum
}

// CountHoles counts empty cells that have a filled cell somewhere above
// them in the same column.
func (b *Board) CountHoles() int {
	holes := 0
	for x := 0; x < BoardWidth; x++ {
		covered := false
		for y := 0; y < BoardHeight; y++ {
			if b[y][x] != 0 {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// TopRowOccupied reports whether the stack has reached row 0.
func (b *Board) TopRowOccupied() bool {
	for x := 0; x < BoardWidth; x++ {
		if b[0][x] != 0 {
			return true
		}
	}
	return false
}

// Reset empties the board.
func (b *Board) Reset() {
	*b = Board{}
}

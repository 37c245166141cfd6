package puzzle

// Placement is one candidate final resting position for a piece.
type Placement struct {
	Rotation int // index into Rotations(piece)
	Column   int
	Row      int // landing row after a hard drop
	Score    int
	Lines    int // rows the placement would clear
}

// Plan searches every rotation and column for piece and returns the
// best-scoring hard-drop placement. Columns start at 1-width so shapes may
// begin partly off the left edge; the right bound is the last board column.
// Ties keep the first candidate in (rotation, column) order. ok is false when
// nothing fits at the top of the board.
func Plan(b *Board, piece Piece, w Weights) (best Placement, ok bool) {
	for ri, shape := range Rotations(piece) {
		for col := 1 - shape.Width(); col < BoardWidth; col++ {
			if !b.CanPlace(shape, col, 0) {
				continue
			}
			row := dropRow(b, shape, col, 0)

			scratch := *b
			scratch.Place(shape, col, row, 1)
			lines := scratch.FullLines()
			cleared := scratch.ClearLines(lines)
			score := w.Score(&cleared, len(lines))

			if !ok || score > best.Score {
				best = Placement{Rotation: ri, Column: col, Row: row, Score: score, Lines: len(lines)}
				ok = true
			}
		}
	}
	return best, ok
}

// dropRow descends from row while the shape still fits and returns the
// lowest valid row.
func dropRow(b *Board, shape Shape, col, row int) int {
	for b.CanPlace(shape, col, row+1) {
		row++
	}
	return row
}

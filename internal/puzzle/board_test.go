package puzzle

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow sets every cell of row y except the listed columns.
func fillRow(b *Board, y int, gaps ...int) {
	for x := 0; x < BoardWidth; x++ {
		b[y][x] = 1
	}
	for _, x := range gaps {
		b[y][x] = 0
	}
}

func randomBoard(rng *rand.Rand) Board {
	var b Board
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			if rng.IntN(3) > 0 {
				b[y][x] = uint8(1 + rng.IntN(255))
			}
		}
	}
	// Force a few complete rows so ClearLines has work to do.
	fillRow(&b, BoardHeight-1)
	fillRow(&b, BoardHeight/2)
	return b
}

func TestCanPlace(t *testing.T) {
	var b Board
	b[15][0] = 1
	square := shapeFromRows("11", "11")

	tests := []struct {
		name     string
		col, row int
		expected bool
	}{
		{"top left", 0, 0, true},
		{"bottom right", 7, 14, true},
		{"off left", -1, 0, false},
		{"off right", 8, 0, false},
		{"off top", 0, -1, false},
		{"off bottom", 3, 15, false},
		{"overlaps filled cell", 0, 14, false},
		{"adjacent to filled cell", 1, 14, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.CanPlace(square, tt.col, tt.row))
		})
	}
}

func TestCanPlaceAtEdges(t *testing.T) {
	var b Board
	s := shapeFromRows("011", "110")
	assert.False(t, b.CanPlace(s, -1, 0))
	vertical := Rotations(PieceS)[1] // "10","11","01"
	assert.True(t, b.CanPlace(vertical, 7, 0))
}

func TestPlaceWritesValueAndClips(t *testing.T) {
	var b Board
	b.Place(shapeFromRows("010", "111"), 3, 14, 150)
	assert.Equal(t, uint8(150), b[14][4])
	assert.Equal(t, uint8(150), b[15][3])
	assert.Equal(t, uint8(150), b[15][4])
	assert.Equal(t, uint8(150), b[15][5])
	assert.Equal(t, uint8(0), b[14][3])

	var edge Board
	edge.Place(shapeFromRows("1111"), 7, 0, 9)
	assert.Equal(t, uint8(9), edge[0][7])
	assert.Equal(t, uint8(9), edge[0][8])
}

func TestFullLinesTopToBottom(t *testing.T) {
	var b Board
	fillRow(&b, 15)
	fillRow(&b, 9)
	fillRow(&b, 12, 3)
	assert.Equal(t, []int{9, 15}, b.FullLines())

	var empty Board
	assert.Empty(t, empty.FullLines())
}

func TestClearLinesPreservesOrderAndInsertsEmptyRows(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 50; i++ {
		b := randomBoard(rng)
		lines := b.FullLines()
		require.NotEmpty(t, lines)

		out := b.ClearLines(lines)
		require.Len(t, out, BoardHeight)

		for y := 0; y < len(lines); y++ {
			assert.Equal(t, [BoardWidth]uint8{}, out[y], "row %d should be empty", y)
		}

		var survivors [][BoardWidth]uint8
		full := map[int]bool{}
		for _, y := range lines {
			full[y] = true
		}
		for y := 0; y < BoardHeight; y++ {
			if !full[y] {
				survivors = append(survivors, b[y])
			}
		}
		assert.Equal(t, survivors, toRows(out[len(lines):]))
	}
}

func toRows(rows [][BoardWidth]uint8) [][BoardWidth]uint8 {
	return append([][BoardWidth]uint8(nil), rows...)
}

func TestClearLinesLeavesSourceUntouched(t *testing.T) {
	var b Board
	fillRow(&b, 15)
	b[14][2] = 5
	out := b.ClearLines([]int{15, 15, 99, -1})
	assert.Equal(t, uint8(1), b[15][0], "source board must not change")
	assert.Equal(t, uint8(5), out[15][2])
	assert.Equal(t, [BoardWidth]uint8{}, out[14])
}

func TestColumnHeights(t *testing.T) {
	var b Board
	b[15][0] = 1
	b[10][1] = 1
	b[0][8] = 1
	heights := b.ColumnHeights()
	assert.Equal(t, [BoardWidth]int{1, 6, 0, 0, 0, 0, 0, 0, 16}, heights)
	assert.Equal(t, 23, b.AggregateHeight())
}

func TestCountHoles(t *testing.T) {
	var empty Board
	assert.Equal(t, 0, empty.CountHoles())

	var stacked Board
	for y := 12; y < BoardHeight; y++ {
		fillRow(&stacked, y)
	}
	stacked[11][3] = 1
	assert.Equal(t, 0, stacked.CountHoles())

	var holey Board
	holey[10][0] = 1 // covers rows 11..14 in column 0
	holey[15][0] = 1
	holey[13][4] = 1 // covers rows 14 and 15 in column 4
	assert.Equal(t, 4+2, holey.CountHoles())
}

func TestTopRowOccupiedAndReset(t *testing.T) {
	var b Board
	assert.False(t, b.TopRowOccupied())
	b[0][6] = 3
	assert.True(t, b.TopRowOccupied())
	b.Reset()
	assert.Equal(t, Board{}, b)
}

package puzzle

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFormula(t *testing.T) {
	// Column 0: height 5 with three covered gaps. Column 1: solid height 5.
	var b Board
	b[11][0] = 1
	b[15][0] = 1
	for y := 11; y < BoardHeight; y++ {
		b[y][1] = 1
	}
	require.Equal(t, 3, b.CountHoles())
	require.Equal(t, 10, b.AggregateHeight())

	assert.Equal(t, -450, Score(&b, 1))
	assert.Equal(t, 500-900-50, DefaultWeights.Score(&b, 1))

	custom := Weights{Lines: 100, Holes: 10, Height: 1}
	assert.Equal(t, 200-30-10, custom.Score(&b, 2))

	var empty Board
	assert.Equal(t, 0, Score(&empty, 0))
}

func TestPlanFillsGapAndClearsLine(t *testing.T) {
	var b Board
	fillRow(&b, BoardHeight-1, 4)

	plan, ok := Plan(&b, PieceI, DefaultWeights)
	require.True(t, ok)
	assert.Equal(t, 1, plan.Rotation, "vertical I")
	assert.Equal(t, 4, plan.Column)
	assert.Equal(t, BoardHeight-4, plan.Row)
	assert.Equal(t, 1, plan.Lines)

	shape := Rotations(PieceI)[plan.Rotation]
	sim := b
	sim.Place(shape, plan.Column, plan.Row, 1)
	lines := sim.FullLines()
	require.Equal(t, []int{BoardHeight - 1}, lines)

	cleared := sim.ClearLines(lines)
	assert.Equal(t, [BoardWidth]uint8{}, cleared[0])
	heights := cleared.ColumnHeights()
	for x := 0; x < BoardWidth; x++ {
		if x == 4 {
			assert.Equal(t, 3, heights[x], "remaining I cells")
			continue
		}
		assert.Equal(t, 0, heights[x], "column %d should be empty after the clear", x)
	}
}

func TestPlanTieKeepsFirstCandidate(t *testing.T) {
	var b Board
	// Every column scores the same for a square on an empty board.
	plan, ok := Plan(&b, PieceO, DefaultWeights)
	require.True(t, ok)
	assert.Equal(t, Placement{Rotation: 0, Column: 0, Row: BoardHeight - 2, Score: -20}, plan)
}

func TestPlanFailsWhenTopRowBlocked(t *testing.T) {
	var b Board
	fillRow(&b, 0)
	for _, p := range AllPieces() {
		_, ok := Plan(&b, p, DefaultWeights)
		assert.False(t, ok, "piece %s", p)
	}
}

func TestPlanIsHardDrop(t *testing.T) {
	boards := []Board{{}}
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 20; i++ {
		var b Board
		// Ragged stack in the lower half.
		for x := 0; x < BoardWidth; x++ {
			h := rng.IntN(BoardHeight / 2)
			for y := BoardHeight - h; y < BoardHeight; y++ {
				if rng.IntN(5) > 0 {
					b[y][x] = 1
				}
			}
		}
		boards = append(boards, b)
	}

	for bi, b := range boards {
		for _, p := range AllPieces() {
			plan, ok := Plan(&b, p, DefaultWeights)
			require.True(t, ok, "board %d piece %s", bi, p)

			shape := Rotations(p)[plan.Rotation]
			assert.True(t, b.CanPlace(shape, plan.Column, plan.Row),
				"board %d piece %s: must fit at landing row", bi, p)
			assert.False(t, b.CanPlace(shape, plan.Column, plan.Row+1),
				"board %d piece %s: must not fit one row lower", bi, p)
			assert.GreaterOrEqual(t, plan.Column, 1-shape.Width())
			assert.Less(t, plan.Column, BoardWidth)
		}
	}
}

func TestPlanScoreMatchesSimulation(t *testing.T) {
	var b Board
	fillRow(&b, 15, 0, 1)
	fillRow(&b, 14, 0, 1, 2)

	w := Weights{Lines: 1000, Holes: 50, Height: 2}
	plan, ok := Plan(&b, PieceJ, w)
	require.True(t, ok)

	sim := b
	sim.Place(Rotations(PieceJ)[plan.Rotation], plan.Column, plan.Row, 1)
	lines := sim.FullLines()
	cleared := sim.ClearLines(lines)
	assert.Equal(t, w.Score(&cleared, len(lines)), plan.Score)
	assert.Equal(t, len(lines), plan.Lines)
}

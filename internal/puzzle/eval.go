package puzzle

// Weights tunes the placement heuristic.
type Weights struct {
	Lines  int // reward per cleared row
	Holes  int // penalty per covered empty cell
	Height int // penalty per unit of aggregate column height
}

// DefaultWeights favours clearing rows, punishes holes hard and leans
// gently against tall stacks.
var DefaultWeights = Weights{
	Lines:  500,
	Holes:  300,
	Height: 5,
}

// Score rates a board that resulted from clearing linesCleared rows.
// Scores are only comparable within one planning pass.
func (w Weights) Score(b *Board, linesCleared int) int {
	return linesCleared*w.Lines - b.CountHoles()*w.Holes - b.AggregateHeight()*w.Height
}

// Score evaluates b with DefaultWeights.
func Score(b *Board, linesCleared int) int {
	return DefaultWeights.Score(b, linesCleared)
}

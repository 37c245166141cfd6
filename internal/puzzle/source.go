package puzzle

import "math/rand/v2"

// PieceSource picks the next piece to spawn.
type PieceSource interface {
	NextPiece() Piece
}

// RandomSource draws pieces uniformly from the catalog.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a uniform source seeded with seed.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandomSource) NextPiece() Piece {
	return Piece(s.rng.IntN(NumPieces))
}

// SequenceSource replays a fixed list of pieces, wrapping around.
type SequenceSource struct {
	pieces []Piece
	next   int
}

// NewSequenceSource cycles through pieces. An empty list yields PieceO forever.
func NewSequenceSource(pieces ...Piece) *SequenceSource {
	if len(pieces) == 0 {
		pieces = []Piece{PieceO}
	}
	return &SequenceSource{pieces: pieces}
}

func (s *SequenceSource) NextPiece() Piece {
	p := s.pieces[s.next]
	s.next = (s.next + 1) % len(s.pieces)
	return p
}

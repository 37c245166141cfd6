package puzzle

// Piece identifies one of the seven falling-block shapes.
type Piece int

const (
	PieceI Piece = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// NumPieces is the size of the catalog.
const NumPieces = 7

var pieceNames = [NumPieces]string{"I", "O", "T", "S", "Z", "J", "L"}

func (p Piece) String() string {
	if p < 0 || int(p) >= NumPieces {
		return "?"
	}
	return pieceNames[p]
}

// ParsePiece maps a letter ("I", "O", ...) back to its Piece.
func ParsePiece(name string) (Piece, bool) {
	for i, n := range pieceNames {
		if n == name {
			return Piece(i), true
		}
	}
	return 0, false
}

// AllPieces lists the catalog in declaration order.
func AllPieces() []Piece {
	out := make([]Piece, NumPieces)
	for i := range out {
		out[i] = Piece(i)
	}
	return out
}

// Shape is an occupancy matrix indexed [row][col]. Shapes handed out by the
// catalog are shared and must not be mutated.
type Shape [][]bool

// Height returns the number of rows.
func (s Shape) Height() int { return len(s) }

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells returns the occupied (col, row) offsets in row-major order.
func (s Shape) Cells() [][2]int {
	var cells [][2]int
	for y := range s {
		for x, v := range s[y] {
			if v {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return cells
}

// shapeFromRows builds a Shape from strings of '1' and '0'.
func shapeFromRows(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, r := range rows {
		s[y] = make([]bool, len(r))
		for x, ch := range r {
			s[y][x] = ch == '1'
		}
	}
	return s
}

var baseShapes = [NumPieces]Shape{
	PieceI: shapeFromRows("1111"),
	PieceO: shapeFromRows("11", "11"),
	PieceT: shapeFromRows("010", "111"),
	PieceS: shapeFromRows("011", "110"),
	PieceZ: shapeFromRows("110", "011"),
	PieceJ: shapeFromRows("100", "111"),
	PieceL: shapeFromRows("001", "111"),
}

// DefaultPalette is the brightness each piece locks with.
var DefaultPalette = [NumPieces]uint8{
	PieceI: 220,
	PieceO: 170,
	PieceT: 150,
	PieceS: 100,
	PieceZ: 80,
	PieceJ: 40,
	PieceL: 20,
}

// rotationTable is filled once at init; rotation sets never change.
var rotationTable [NumPieces][]Shape

func init() {
	for i, base := range baseShapes {
		rotationTable[i] = buildRotations(base)
	}
}

// Rotations returns the distinct rotation variants of p, starting with the
// unrotated shape. Unknown pieces yield nil.
func Rotations(p Piece) []Shape {
	if p < 0 || int(p) >= NumPieces {
		return nil
	}
	out := make([]Shape, len(rotationTable[p]))
	copy(out, rotationTable[p])
	return out
}

func buildRotations(base Shape) []Shape {
	cur := normalize(base)
	rots := []Shape{cur}
	for i := 0; i < 3; i++ {
		cur = normalize(rotate90(cur))
		if !containsShape(rots, cur) {
			rots = append(rots, cur)
		}
	}
	return rots
}

func containsShape(list []Shape, s Shape) bool {
	for _, o := range list {
		if o.Equal(s) {
			return true
		}
	}
	return false
}

// rotate90 turns s a quarter turn clockwise.
func rotate90(s Shape) Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for x := range out {
		out[x] = make([]bool, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[x][h-1-y] = s[y][x]
		}
	}
	return out
}

// normalize trims empty border rows and columns. A shape with no occupied
// cells collapses to a single empty cell.
func normalize(s Shape) Shape {
	h, w := s.Height(), s.Width()
	top, bottom, left, right := 0, h-1, 0, w-1

	rowEmpty := func(y int) bool {
		for x := 0; x < w; x++ {
			if s[y][x] {
				return false
			}
		}
		return true
	}
	colEmpty := func(x int) bool {
		for y := 0; y < h; y++ {
			if s[y][x] {
				return false
			}
		}
		return true
	}

	for top <= bottom && rowEmpty(top) {
		top++
	}
	for bottom >= top && rowEmpty(bottom) {
		bottom--
	}
	for left <= right && colEmpty(left) {
		left++
	}
	for right >= left && colEmpty(right) {
		right--
	}
	if top > bottom || left > right {
		return Shape{{false}}
	}

	out := make(Shape, 0, bottom-top+1)
	for y := top; y <= bottom; y++ {
		row := make([]bool, right-left+1)
		copy(row, s[y][left:right+1])
		out = append(out, row)
	}
	return out
}

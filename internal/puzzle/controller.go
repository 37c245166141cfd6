package puzzle

import (
	"time"
)

// State is the controller's current phase.
type State int

const (
	StateSpawned    State = iota // a new piece spawns on the next frame
	StateDescending              // active piece walks toward its planned target
	StateLocked                  // piece merged; rows not yet checked
	StateClearing                // full rows flashing before removal
	StateGameOver                // blank pause before a new episode
)

var stateNames = [...]string{"spawned", "descending", "locked", "clearing", "game_over"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// DefaultHighlight is the brightness full rows flash with.
const DefaultHighlight = 170

// wallKicks are the column offsets tried, in order, when rotating.
var wallKicks = [...]int{0, -1, 1}

// ActivePiece is the piece currently falling.
type ActivePiece struct {
	Piece          Piece
	Rotations      []Shape
	Rotation       int
	TargetRotation int
	Col, Row       int
	TargetCol      int
	Value          uint8
}

// Shape returns the shape for the current rotation.
func (a *ActivePiece) Shape() Shape {
	return a.Rotations[a.Rotation]
}

// ControllerOptions configures a Controller. Zero fields take defaults.
type ControllerOptions struct {
	Source    PieceSource
	Weights   Weights
	Timing    Timing
	Palette   [NumPieces]uint8
	Highlight uint8
	Observer  Observer
}

func (o ControllerOptions) withDefaults() ControllerOptions {
	if o.Source == nil {
		o.Source = NewRandomSource(uint64(time.Now().UnixNano()))
	}
	if o.Weights == (Weights{}) {
		o.Weights = DefaultWeights
	}
	if o.Timing == (Timing{}) {
		o.Timing = DefaultTiming
	}
	if o.Palette == ([NumPieces]uint8{}) {
		o.Palette = DefaultPalette
	}
	for i, v := range o.Palette {
		if v == 0 {
			o.Palette[i] = DefaultPalette[i]
		}
	}
	if o.Highlight == 0 {
		o.Highlight = DefaultHighlight
	}
	if o.Observer == nil {
		o.Observer = noopObserver{}
	}
	return o
}

// Controller owns one episode: the board, the active piece and the
// per-frame state machine that steers the piece to its planned placement.
type Controller struct {
	opts ControllerOptions

	board  Board
	active *ActivePiece
	state  State

	flashLines []int
	holdFrame  int // frames spent in Clearing or GameOver

	pieces int // pieces spawned this episode
	lines  int // rows cleared this episode
}

// NewController starts an episode on an empty board.
func NewController(opts ControllerOptions) *Controller {
	return &Controller{
		opts:  opts.withDefaults(),
		state: StateSpawned,
	}
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Board returns a copy of the locked cells.
func (c *Controller) Board() Board { return c.board }

// Active returns a copy of the falling piece, if any.
func (c *Controller) Active() (ActivePiece, bool) {
	if c.active == nil {
		return ActivePiece{}, false
	}
	return *c.active, true
}

// FlashLines returns the rows being cleared while in StateClearing.
func (c *Controller) FlashLines() []int {
	return append([]int(nil), c.flashLines...)
}

// Step advances the state machine by one frame.
func (c *Controller) Step() {
	switch c.state {
	case StateSpawned:
		c.spawn()
	case StateDescending:
		c.descend()
	case StateLocked:
		c.resolveLock()
	case StateClearing:
		c.flash()
	case StateGameOver:
		c.waitGameOver()
	}
}

func (c *Controller) spawn() {
	if c.board.TopRowOccupied() {
		c.enterGameOver()
		return
	}

	p := c.opts.Source.NextPiece()
	rots := Rotations(p)
	if len(rots) == 0 {
		c.enterGameOver()
		return
	}
	col := (BoardWidth - rots[0].Width()) / 2
	if !c.board.CanPlace(rots[0], col, 0) {
		c.enterGameOver()
		return
	}

	start := time.Now()
	plan, ok := Plan(&c.board, p, c.opts.Weights)
	c.opts.Observer.Planned(time.Since(start), ok)
	if !ok {
		c.enterGameOver()
		return
	}

	c.active = &ActivePiece{
		Piece:          p,
		Rotations:      rots,
		TargetRotation: plan.Rotation,
		Col:            col,
		TargetCol:      plan.Column,
		Value:          c.opts.Palette[p],
	}
	c.pieces++
	c.opts.Observer.Spawned(p)

	c.state = StateDescending
	c.descend()
}

func (c *Controller) descend() {
	a := c.active

	// Rotation waits until the piece has visibly started falling.
	if a.Row > 0 && a.Rotation != a.TargetRotation {
		c.rotateTowardTarget()
	}

	shape := a.Shape()
	if a.Col < a.TargetCol && c.board.CanPlace(shape, a.Col+1, a.Row) {
		a.Col++
	} else if a.Col > a.TargetCol && c.board.CanPlace(shape, a.Col-1, a.Row) {
		a.Col--
	}

	if c.board.CanPlace(shape, a.Col, a.Row+1) {
		a.Row++
		return
	}

	c.board.Place(shape, a.Col, a.Row, a.Value)
	c.opts.Observer.Locked(a.Piece)
	c.state = StateLocked
}

// rotateTowardTarget takes one rotation step the short way round, trying
// each wall kick in turn. If none fits the piece keeps its rotation.
func (c *Controller) rotateTowardTarget() {
	a := c.active
	n := len(a.Rotations)
	forward := mod(a.TargetRotation-a.Rotation, n)
	backward := mod(a.Rotation-a.TargetRotation, n)

	next := (a.Rotation + 1) % n
	if forward > backward {
		next = mod(a.Rotation-1, n)
	}

	shape := a.Rotations[next]
	for _, kick := range wallKicks {
		if c.board.CanPlace(shape, a.Col+kick, a.Row) {
			a.Col += kick
			a.Rotation = next
			return
		}
	}
}

func (c *Controller) resolveLock() {
	c.active = nil
	lines := c.board.FullLines()
	if len(lines) == 0 {
		c.state = StateSpawned
		return
	}
	c.flashLines = lines
	c.holdFrame = 0
	c.state = StateClearing
}

func (c *Controller) flash() {
	c.holdFrame++
	if c.holdFrame < c.flashFrames() {
		return
	}
	c.board = c.board.ClearLines(c.flashLines)
	c.lines += len(c.flashLines)
	c.opts.Observer.LinesCleared(len(c.flashLines))
	c.flashLines = nil
	c.holdFrame = 0
	c.state = StateSpawned
}

// flashFrames is the total length of the blink sequence.
func (c *Controller) flashFrames() int {
	return c.opts.Timing.FlashCycles * 2 * c.opts.Timing.flashHoldFrames()
}

// flashHighlighted reports whether the current clearing frame shows the
// full rows lit (true) or blanked (false).
func (c *Controller) flashHighlighted() bool {
	return (c.holdFrame/c.opts.Timing.flashHoldFrames())%2 == 1
}

func (c *Controller) enterGameOver() {
	c.opts.Observer.GameOver(c.pieces, c.lines)
	c.active = nil
	c.flashLines = nil
	c.holdFrame = 0
	c.state = StateGameOver
}

func (c *Controller) waitGameOver() {
	c.holdFrame++
	if c.holdFrame < c.opts.Timing.gameOverHoldFrames() {
		return
	}
	c.board.Reset()
	c.pieces = 0
	c.lines = 0
	c.holdFrame = 0
	c.state = StateSpawned
}

// Pixels composes what the matrix should show this frame: locked cells,
// the active piece, and the flash overlay while clearing.
func (c *Controller) Pixels() Board {
	if c.state == StateGameOver {
		return Board{}
	}

	px := c.board
	if c.state == StateClearing {
		v := uint8(0)
		if c.flashHighlighted() {
			v = c.opts.Highlight
		}
		for _, y := range c.flashLines {
			for x := 0; x < BoardWidth; x++ {
				px[y][x] = v
			}
		}
	}
	if c.active != nil {
		px.Place(c.active.Shape(), c.active.Col, c.active.Row, c.active.Value)
	}
	return px
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

package matrix

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"matrix-arcade/internal/puzzle"
)

const (
	// PixelWidth is how many screen columns each matrix pixel occupies.
	// 2 makes pixels appear roughly square since terminal chars are ~2:1.
	PixelWidth = 2

	// Cols and Rows are the terminal footprint of the matrix. Two matrix
	// rows share one terminal row via the upper half block.
	Cols = puzzle.BoardWidth * PixelWidth
	Rows = (puzzle.BoardHeight + 1) / 2

	halfBlock = '▀'
)

// Terminal is a double-buffer diff renderer that draws the matrix with ANSI
// half blocks. SetPixel stages a pixel; Present writes only the terminal
// cells that changed since the previous frame.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer

	tint       Tint
	px         puzzle.Board
	current    [Rows][Cols]Cell
	next       [Rows][Cols]Cell
	originRow  int // 1-based screen row of the top-left cell
	originCol  int
	firstFrame bool
}

// NewTerminal creates a renderer writing to w, drawn at the top-left of the
// screen until Center is called.
func NewTerminal(w io.Writer, tint Tint) *Terminal {
	return &Terminal{
		w:          w,
		tint:       tint,
		originRow:  1,
		originCol:  1,
		firstFrame: true,
	}
}

// Center places the matrix in the middle of a termW x termH screen and
// forces a full redraw on the next Present.
func (t *Terminal) Center(termW, termH int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.originCol = max((termW-Cols)/2, 0) + 1
	t.originRow = max((termH-Rows)/2, 0) + 1
	t.firstFrame = true
}

// Invalidate forces a full redraw on the next Present, for when something
// else has drawn over the screen.
func (t *Terminal) Invalidate() {
	t.mu.Lock()
	t.firstFrame = true
	t.mu.Unlock()
}

// SetPixel stages one pixel. Out-of-range coordinates are ignored.
func (t *Terminal) SetPixel(row, col int, brightness uint8) {
	if row < 0 || row >= puzzle.BoardHeight || col < 0 || col >= puzzle.BoardWidth {
		return
	}
	t.mu.Lock()
	t.px[row][col] = brightness
	t.mu.Unlock()
}

// Present writes the staged frame.
func (t *Terminal) Present() error {
	t.mu.Lock()
	out := t.diff()
	t.mu.Unlock()

	if out == "" {
		return nil
	}
	if _, err := io.WriteString(t.w, out); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (t *Terminal) compose() {
	for row := 0; row < Rows; row++ {
		top := 2 * row
		bottom := top + 1
		for col := 0; col < puzzle.BoardWidth; col++ {
			fr, fg, fb := t.tint.RGB(t.px[top][col])
			br, bg, bb := Background[0], Background[1], Background[2]
			if bottom < puzzle.BoardHeight {
				br, bg, bb = t.tint.RGB(t.px[bottom][col])
			}
			c := Cell{Ch: halfBlock, FgR: fr, FgG: fg, FgB: fb, BgR: br, BgG: bg, BgB: bb}
			for i := 0; i < PixelWidth; i++ {
				t.next[row][col*PixelWidth+i] = c
			}
		}
	}
}

// diff composes the next buffer, emits the changed cells and swaps buffers.
func (t *Terminal) diff() string {
	t.compose()

	var sb strings.Builder
	sb.Grow(4096)
	if t.firstFrame {
		sb.WriteString(ClearScreen())
	}

	lastRow, lastCol := -1, -1
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			nc := t.next[y][x]
			if t.firstFrame || nc != t.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(t.originRow+y, t.originCol+x))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if lastRow >= 0 {
		sb.WriteString(Reset)
	}

	t.current, t.next = t.next, t.current
	t.firstFrame = false
	return sb.String()
}

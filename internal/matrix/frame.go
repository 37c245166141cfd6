package matrix

import (
	"sync"

	"matrix-arcade/internal/puzzle"
)

// Frame is a brightness buffer the size of the matrix. It implements
// puzzle.Renderer and is safe to read from another goroutine while the
// engine writes.
type Frame struct {
	mu sync.RWMutex
	px puzzle.Board
}

// SetPixel stores one pixel. Out-of-range coordinates are ignored.
func (f *Frame) SetPixel(row, col int, brightness uint8) {
	if row < 0 || row >= puzzle.BoardHeight || col < 0 || col >= puzzle.BoardWidth {
		return
	}
	f.mu.Lock()
	f.px[row][col] = brightness
	f.mu.Unlock()
}

// Snapshot returns a copy of the buffer.
func (f *Frame) Snapshot() puzzle.Board {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.px
}

// Clear blanks every pixel.
func (f *Frame) Clear() {
	f.mu.Lock()
	f.px = puzzle.Board{}
	f.mu.Unlock()
}

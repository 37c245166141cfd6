package puzzle

import (
	"log"
	"time"
)

// Observer receives controller lifecycle events. Implementations must be
// cheap; they run inside the frame.
type Observer interface {
	Spawned(p Piece)
	Planned(d time.Duration, ok bool)
	Locked(p Piece)
	LinesCleared(n int)
	GameOver(pieces, lines int)
}

type noopObserver struct{}

func (noopObserver) Spawned(Piece)               {}
func (noopObserver) Planned(time.Duration, bool) {}
func (noopObserver) Locked(Piece)                {}
func (noopObserver) LinesCleared(int)            {}
func (noopObserver) GameOver(int, int)           {}

// logObserver reports episode ends and forwards everything to next.
type logObserver struct {
	logger *log.Logger
	next   Observer
}

func (o logObserver) Spawned(p Piece) { o.next.Spawned(p) }

func (o logObserver) Planned(d time.Duration, ok bool) {
	if !ok {
		o.logger.Printf("puzzle: no placement fits, ending episode")
	}
	o.next.Planned(d, ok)
}

func (o logObserver) Locked(p Piece)     { o.next.Locked(p) }
func (o logObserver) LinesCleared(n int) { o.next.LinesCleared(n) }

func (o logObserver) GameOver(pieces, lines int) {
	o.logger.Printf("puzzle: episode over after %d pieces, %d lines", pieces, lines)
	o.next.GameOver(pieces, lines)
}

// Package input turns button activity into the single release edge the
// puzzle engine polls for.
package input

import "sync/atomic"

// Latch records a release event from another goroutine and hands it to the
// engine exactly once.
type Latch struct {
	pending atomic.Bool
}

// Release records one press-and-release. Events arriving before the engine
// polls collapse into one.
func (l *Latch) Release() {
	l.pending.Store(true)
}

// PollReleaseEdge reports and clears a pending release.
func (l *Latch) PollReleaseEdge() bool {
	return l.pending.CompareAndSwap(true, false)
}

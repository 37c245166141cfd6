package puzzle

import "time"

// Timing holds the frame period and the durations the controller holds
// still frames for. Holds are converted to frame counts so the frame wait
// stays the only suspension point.
type Timing struct {
	FrameDelay   time.Duration // pause between frames
	FlashCycles  int           // blank/highlight pairs before rows are removed
	FlashHold    time.Duration // how long each flash phase stays on screen
	GameOverHold time.Duration // blank screen before a new episode
}

// DefaultTiming matches the appliance: 50 frames per second, two 120 ms
// flash cycles and a 300 ms pause on game over.
var DefaultTiming = Timing{
	FrameDelay:   20 * time.Millisecond,
	FlashCycles:  2,
	FlashHold:    120 * time.Millisecond,
	GameOverHold: 300 * time.Millisecond,
}

// Frames converts a duration to whole frames, never less than one.
func (t Timing) Frames(d time.Duration) int {
	if t.FrameDelay <= 0 {
		return 1
	}
	n := int(d / t.FrameDelay)
	if n < 1 {
		n = 1
	}
	return n
}

func (t Timing) flashHoldFrames() int    { return t.Frames(t.FlashHold) }
func (t Timing) gameOverHoldFrames() int { return t.Frames(t.GameOverHold) }

package input

import "time"

// DefaultDebounce is how long a raw level has to hold before it counts.
const DefaultDebounce = 50 * time.Millisecond

// Debouncer samples a level source (true while the button is held) once per
// poll and reports the release edge of a stable press.
type Debouncer struct {
	pressed func() bool
	window  time.Duration
	now     func() time.Time

	raw        bool
	stable     bool
	lastChange time.Time
}

// NewDebouncer takes the level at construction as the stable state, so a
// button already held counts as pressed.
func NewDebouncer(pressed func() bool, window time.Duration) *Debouncer {
	return newDebouncer(pressed, window, time.Now)
}

func newDebouncer(pressed func() bool, window time.Duration, now func() time.Time) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	raw := pressed()
	return &Debouncer{
		pressed:    pressed,
		window:     window,
		now:        now,
		raw:        raw,
		stable:     raw,
		lastChange: now(),
	}
}

// PollReleaseEdge samples the level. It returns true once the button has
// been stably pressed and then stably released.
func (d *Debouncer) PollReleaseEdge() bool {
	now := d.now()
	raw := d.pressed()

	if raw != d.raw {
		d.raw = raw
		d.lastChange = now
		return false
	}

	if now.Sub(d.lastChange) < d.window || raw == d.stable {
		return false
	}
	wasPressed := d.stable
	d.stable = raw
	return wasPressed && !raw
}

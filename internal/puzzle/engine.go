package puzzle

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Renderer sets one matrix pixel. Coordinate validation is the
// renderer's business.
type Renderer interface {
	SetPixel(row, col int, brightness uint8)
}

// Presenter is implemented by renderers that buffer a frame and need a
// flush once every pixel has been set.
type Presenter interface {
	Present() error
}

// Input reports the exit button. PollReleaseEdge returns true at most once
// per physical press-and-release.
type Input interface {
	PollReleaseEdge() bool
}

// Engine runs the puzzle against a renderer and an input source.
type Engine struct {
	renderer Renderer
	input    Input
	opts     ControllerOptions
	logger   *log.Logger

	ctrl *Controller
}

// NewEngine wires a renderer and input to a controller configuration.
func NewEngine(r Renderer, in Input, opts ControllerOptions) *Engine {
	return &Engine{
		renderer: r,
		input:    in,
		opts:     opts.withDefaults(),
		logger:   log.Default(),
	}
}

// SetLogger replaces the logger used for episode events.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Reset discards the current episode. The next frame spawns a piece on an
// empty board.
func (e *Engine) Reset() {
	opts := e.opts
	opts.Observer = logObserver{logger: e.logger, next: e.opts.Observer}
	e.ctrl = NewController(opts)
}

// State returns the controller phase, or StateSpawned when no episode is
// running.
func (e *Engine) State() State {
	if e.ctrl == nil {
		return StateSpawned
	}
	return e.ctrl.State()
}

// Tick runs a single frame without waiting: poll the exit edge, step the
// controller, render. It returns false, having neither stepped nor
// rendered, when the exit edge was seen; the episode is discarded.
func (e *Engine) Tick() (bool, error) {
	if e.ctrl == nil {
		e.Reset()
	}
	if e.input.PollReleaseEdge() {
		e.ctrl = nil
		return false, nil
	}
	e.ctrl.Step()
	return true, e.render()
}

// Run blocks, playing episodes back to back, until the input reports the
// exit edge (nil) or ctx is cancelled (ctx.Err()). Every call starts a fresh
// episode.
func (e *Engine) Run(ctx context.Context) error {
	e.Reset()
	return e.loop(ctx)
}

func (e *Engine) loop(ctx context.Context) error {
	ticker := time.NewTicker(e.opts.Timing.FrameDelay)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := e.Tick()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (e *Engine) render() error {
	px := e.ctrl.Pixels()
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			e.renderer.SetPixel(y, x, px[y][x])
		}
	}
	if p, ok := e.renderer.(Presenter); ok {
		if err := p.Present(); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}
	}
	return nil
}

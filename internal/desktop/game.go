// Package desktop hosts the puzzle engine in an ebiten window.
package desktop

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"matrix-arcade/internal/config"
	"matrix-arcade/internal/matrix"
	"matrix-arcade/internal/puzzle"
)

// Game is an ebiten.Game that steps the engine once per tick.
type Game struct {
	eng   *puzzle.Engine
	frame *matrix.Frame
	tint  matrix.Tint
	scale int
}

// NewGame builds a game from cfg. in supplies the exit button.
func NewGame(cfg *config.Config, in puzzle.Input) *Game {
	frame := &matrix.Frame{}
	opts := cfg.ControllerOptions()
	opts.Source = cfg.Source()
	return &Game{
		eng:   puzzle.NewEngine(frame, in, opts),
		frame: frame,
		tint:  cfg.Tint(),
		scale: cfg.Display.Scale,
	}
}

// TPS is the tick rate matching a frame delay.
func TPS(frameDelay time.Duration) int {
	if frameDelay <= 0 {
		return ebiten.DefaultTPS
	}
	return max(int(time.Second/frameDelay), 1)
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	more, err := g.eng.Tick()
	if err != nil {
		return err
	}
	if !more {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	br, bg, bb := g.tint.RGB(0)
	screen.Fill(color.RGBA{br, bg, bb, 255})

	px := g.frame.Snapshot()
	s := float32(g.scale)
	var gap float32
	if g.scale >= 4 {
		gap = 1
	}
	for y := 0; y < puzzle.BoardHeight; y++ {
		for x := 0; x < puzzle.BoardWidth; x++ {
			if px[y][x] == 0 {
				continue
			}
			r, gr, b := g.tint.RGB(px[y][x])
			vector.DrawFilledRect(screen, float32(x)*s+gap, float32(y)*s+gap, s-2*gap, s-2*gap,
				color.RGBA{r, gr, b, 255}, false)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return puzzle.BoardWidth * g.scale, puzzle.BoardHeight * g.scale
}

// desktop runs the self-playing puzzle in a window. Space exits, like the
// appliance's button; Q or Escape also close the window.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"matrix-arcade/internal/config"
	"matrix-arcade/internal/desktop"
	"matrix-arcade/internal/input"
	"matrix-arcade/internal/puzzle"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfgPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	button := input.NewDebouncer(func() bool {
		return ebiten.IsKeyPressed(ebiten.KeySpace)
	}, input.DefaultDebounce)
	game := desktop.NewGame(cfg, button)

	scale := cfg.Display.Scale
	ebiten.SetWindowSize(puzzle.BoardWidth*scale, puzzle.BoardHeight*scale)
	ebiten.SetWindowTitle("matrix arcade")
	ebiten.SetTPS(desktop.TPS(cfg.Engine.FrameDelay))

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

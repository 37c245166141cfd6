// matrix runs the self-playing puzzle in the local terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"matrix-arcade/internal/config"
	"matrix-arcade/internal/input"
	"matrix-arcade/internal/puzzle"
	"matrix-arcade/internal/ui"
)

const (
	hintPlaying = "[white]space[-] exit   [white]q[-] quit"
	hintStopped = "[white]space[-] play   [white]q[-] quit"
)

var (
	flagConfig = flag.String("config", "", "path to config.yaml")
	flagSeed   = flag.Uint64("seed", 0, "piece sequence seed (0 uses the config or the clock)")
	flagLog    = flag.String("log", "", "write log output to this file")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lshortfile)

	// tview owns the terminal, so logs go to a file or nowhere.
	if *flagLog != "" {
		f, err := os.OpenFile(*flagLog, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Log file error: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Config error: %v", err)
	}
	if *flagSeed != 0 {
		cfg.Engine.Seed = *flagSeed
	}

	app := tview.NewApplication()
	view := ui.NewMatrixView(app, cfg.Tint())
	hint := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	hint.SetText(hintPlaying)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(view.Box, 0, 1, false).
		AddItem(hint, 1, 0, false)

	var latch input.Latch
	presses := make(chan struct{}, 1)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlC, event.Rune() == 'q', event.Rune() == 'Q':
			app.Stop()
			return nil
		case event.Rune() == ' ', event.Key() == tcell.KeyEnter:
			latch.Release()
			select {
			case presses <- struct{}{}:
			default:
			}
			return nil
		}
		return event
	})

	opts := cfg.ControllerOptions()
	opts.Source = cfg.Source()
	eng := puzzle.NewEngine(view, &latch, opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			latch.PollReleaseEdge()
			if err := eng.Run(ctx); err != nil {
				return
			}
			select {
			case <-presses:
			default:
			}
			app.QueueUpdateDraw(func() { hint.SetText(hintStopped) })

			select {
			case <-ctx.Done():
				return
			case <-presses:
			}
			app.QueueUpdateDraw(func() { hint.SetText(hintPlaying) })
		}
	}()

	if err := app.SetRoot(layout, true).Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("UI error: %v", err)
	}
}

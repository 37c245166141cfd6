// Package ui hosts the puzzle engine in a tview application.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"matrix-arcade/internal/matrix"
	"matrix-arcade/internal/puzzle"
)

// MatrixView is a tview box that shows the matrix with half blocks. It is
// the engine's renderer: SetPixel fills a frame buffer and Present queues a
// redraw.
type MatrixView struct {
	Box   *tview.Box
	app   *tview.Application
	frame matrix.Frame
	tint  matrix.Tint
}

func NewMatrixView(app *tview.Application, tint matrix.Tint) *MatrixView {
	v := &MatrixView{
		Box:  tview.NewBox(),
		app:  app,
		tint: tint,
	}
	v.Box.SetDrawFunc(v.draw)
	return v
}

func (v *MatrixView) SetPixel(row, col int, brightness uint8) {
	v.frame.SetPixel(row, col, brightness)
}

// Present asks the application to redraw. The call is made off the engine
// goroutine so a busy event loop never stalls a frame.
func (v *MatrixView) Present() error {
	go v.app.QueueUpdateDraw(func() {})
	return nil
}

func (v *MatrixView) color(brightness uint8) tcell.Color {
	r, g, b := v.tint.RGB(brightness)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (v *MatrixView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	px := v.frame.Snapshot()

	// Center inside the box's inner area.
	ox := x + max((width-matrix.Cols)/2, 0)
	oy := y + max((height-matrix.Rows)/2, 0)

	for row := 0; row < matrix.Rows; row++ {
		top := 2 * row
		bottom := top + 1
		for col := 0; col < puzzle.BoardWidth; col++ {
			bg := v.color(0)
			if bottom < puzzle.BoardHeight {
				bg = v.color(px[bottom][col])
			}
			style := tcell.StyleDefault.Foreground(v.color(px[top][col])).Background(bg)
			for i := 0; i < matrix.PixelWidth; i++ {
				screen.SetContent(ox+col*matrix.PixelWidth+i, oy+row, '▀', nil, style)
			}
		}
	}
	return x, y, width, height
}

package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrix-arcade/internal/matrix"
)

func TestMatrixViewDrawsHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	tint := matrix.Tint{R: 255}
	v := NewMatrixView(tview.NewApplication(), tint)
	v.SetPixel(0, 0, 255)
	v.SetPixel(1, 8, 255)
	v.SetPixel(99, 0, 255) // ignored

	v.draw(screen, 0, 0, 40, 20)

	ox := (40 - matrix.Cols) / 2
	oy := (20 - matrix.Rows) / 2

	mainc, _, style, _ := screen.GetContent(ox, oy)
	assert.Equal(t, '▀', mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(10, 10, 15), bg)

	// Pixel (1, 8) is the lower half of the last column pair.
	for i := 0; i < matrix.PixelWidth; i++ {
		_, _, style, _ = screen.GetContent(ox+8*matrix.PixelWidth+i, oy)
		_, bg, _ = style.Decompose()
		assert.Equal(t, tcell.NewRGBColor(255, 0, 0), bg)
	}

	// Nothing outside the matrix footprint.
	mainc, _, _, _ = screen.GetContent(ox-1, oy)
	assert.NotEqual(t, '▀', mainc)
}

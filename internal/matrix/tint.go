package matrix

// Tint maps brightness codes to a colour. The matrix is monochrome; a tint
// picks the hue a front-end draws it in.
type Tint struct {
	R, G, B uint8
}

// DefaultTint is a warm amber, close to the appliance's LEDs.
var DefaultTint = Tint{R: 255, G: 150, B: 40}

// Background is the colour of unlit pixels.
var Background = [3]uint8{10, 10, 15}

// RGB scales the tint by brightness. Zero returns Background.
func (t Tint) RGB(brightness uint8) (r, g, b uint8) {
	if brightness == 0 {
		return Background[0], Background[1], Background[2]
	}
	scale := func(c uint8) uint8 {
		return uint8(uint16(c) * uint16(brightness) / 255)
	}
	return scale(t.R), scale(t.G), scale(t.B)
}

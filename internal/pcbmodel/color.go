package pcbmodel

import "image/color"

// Color is a net's identifying RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ToRGBA converts the color to a standard library color.RGBA at the given
// alpha (0-1, clamped), the representation the render observers consume.
func (c Color) ToRGBA(alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
}

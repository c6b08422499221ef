// Package colorutil provides shared color utilities for the PCB router.
package colorutil

import "image/color"

// Common overlay colors used by the optional render observers.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255} // border overlay color
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// NetColor is a net's identifying color, independent of any rendering toolkit.
type NetColor struct {
	R, G, B uint8
}

// ToRGBA converts a NetColor to a color.RGBA with the given alpha (0-1, clamped).
func (c NetColor) ToRGBA(alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
}

// Lerp returns the opaque frontier-rank color ramp from red to green:
// 0 -> red (worst), 1 -> green (best); rank is clamped to [0, 1] and the
// alpha is always 255.
func Lerp(rank float64) color.RGBA {
	if rank < 0 {
		rank = 0
	}
	if rank > 1 {
		rank = 1
	}
	return color.RGBA{
		R: uint8((1 - rank) * 255),
		G: uint8(rank * 255),
		B: 0,
		A: 255,
	}
}

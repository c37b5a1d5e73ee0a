package remat

import "fmt"

// Color represents an RGB color.
type Color struct {
	R float64 `json:"r" yaml:"r"` // Red channel component
	G float64 `json:"g" yaml:"g"` // Green channel component
	B float64 `json:"b" yaml:"b"` // Blue channel component
}

// Black is the zero color.
var Black = Color{}

// White is full intensity on every channel.
var White = Color{R: 1, G: 1, B: 1}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SetColorRGB creates a Color from RGB values.
func SetColorRGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray creates a Color with v on every channel.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Scale multiplies every channel by k.
func (c Color) Scale(k float64) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// IsBlack reports whether every channel is zero.
func (c Color) IsBlack() bool { return c == Black }

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.R, c.G, c.B)
}

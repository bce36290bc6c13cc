package game

import "math"

// fitFactor leaves a margin around the surface when fitting it to the viewport.
const fitFactor = 0.9

// Point is a position in surface units (the base resolution).
type Point struct {
	X, Y float64
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle is the direction from a to b measured as atan2(dx, dy), so stepping
// along it uses sin for x and cos for y. A zero vector yields 0.
func Angle(a, b Point) float64 {
	return math.Atan2(b.X-a.X, b.Y-a.Y)
}

// Viewport maps the base-resolution surface onto the window.
type Viewport struct {
	Scale            float64 // canvas pixels per surface unit
	Width, Height    int     // canvas size in window pixels
	OffsetX, OffsetY float64 // canvas origin inside the window
}

// Fit computes the device-fit viewport for a window of viewW x viewH showing
// a baseW x baseH surface, centred.
func Fit(viewW, viewH, baseW, baseH int) Viewport {
	if viewW <= 0 || viewH <= 0 || baseW <= 0 || baseH <= 0 {
		return Identity(baseW, baseH)
	}
	scale := math.Min(float64(viewW)/float64(baseW), float64(viewH)/float64(baseH)) * fitFactor
	w := int(math.Ceil(float64(baseW) * scale))
	h := int(math.Ceil(float64(baseH) * scale))
	return Viewport{
		Scale:   scale,
		Width:   w,
		Height:  h,
		OffsetX: float64(viewW-w) / 2,
		OffsetY: float64(viewH-h) / 2,
	}
}

// Identity is the 1:1 viewport used before the host reports a window size.
func Identity(baseW, baseH int) Viewport {
	return Viewport{Scale: 1, Width: baseW, Height: baseH}
}

// ToSurface converts window coordinates to surface units.
func (v Viewport) ToSurface(x, y float64) Point {
	if v.Scale == 0 {
		return Point{X: x, Y: y}
	}
	return Point{X: (x - v.OffsetX) / v.Scale, Y: (y - v.OffsetY) / v.Scale}
}

// ToCanvas converts surface units to canvas pixels (without the window offset).
func (v Viewport) ToCanvas(p Point) Point {
	return Point{X: p.X * v.Scale, Y: p.Y * v.Scale}
}

package cloud

import "fmt"

// Spec describes one body: its label and visual size (diameter) in CSS pixels.
type Spec struct {
	Name string  `yaml:"name"`
	Size float64 `yaml:"size"`
}

// Body is a disc in container-local CSS pixels.
type Body struct {
	Name   string
	X, Y   float64
	VX, VY float64
	R      float64
	Mass   float64

	// ScaleX and ScaleY carry the squash/stretch of the last impact and relax
	// toward 1 every frame.
	ScaleX, ScaleY float64
}

// Transform is the CSS-style transform that places the body's element with
// its centre at (X, Y).
func (b *Body) Transform() string {
	return fmt.Sprintf("translate(%.1fpx, %.1fpx) scale(%.3f, %.3f)", b.X-b.R, b.Y-b.R, b.ScaleX, b.ScaleY)
}

func (b *Body) Speed2() float64 { return b.VX*b.VX + b.VY*b.VY }

func (b *Body) contains(x, y float64) bool {
	dx, dy := x-b.X, y-b.Y
	return dx*dx+dy*dy <= b.R*b.R
}

// Stage receives the per-frame placement of every body.
type Stage interface {
	Place(i int, b *Body)
}

// StageFunc adapts a function to Stage.
type StageFunc func(i int, b *Body)

func (f StageFunc) Place(i int, b *Body) { f(i, b) }

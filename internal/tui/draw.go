package tui

import (
	"image/color"
	"math"

	"github.com/san-kum/heroviz/internal/cloud"
)

// minLinkAlpha hides the faintest links, which only add noise at braille
// resolution.
const minLinkAlpha = 16

// projection maps CSS pixels inside a section to canvas dots.
type projection struct {
	ox, oy float64 // section origin in dots
	k      float64 // dots per unit of the drawing space
}

func (p projection) dot(x, y float64) (int, int) {
	return int(math.Round(p.ox + x*p.k)), int(math.Round(p.oy + y*p.k))
}

// canvasSurface renders the particle field as dots and strong links as lines.
type canvasSurface struct {
	c *Canvas
	p projection
}

// Clear is a no-op: the canvas holds both sections and is cleared once per
// view.
func (s canvasSurface) Clear() {}

func (s canvasSurface) FillGlow(cx, cy, radius float64, c color.Color) {}

func (s canvasSurface) FillCircle(x, y, r float64, c color.Color) {
	s.c.Set(s.p.dot(x, y))
}

func (s canvasSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	if color.NRGBAModel.Convert(c).(color.NRGBA).A < minLinkAlpha {
		return
	}
	ax, ay := s.p.dot(x1, y1)
	bx, by := s.p.dot(x2, y2)
	s.c.DrawLine(ax, ay, bx, by)
}

// canvasStage outlines each body with its squash applied and writes the
// start of its name in the middle.
type canvasStage struct {
	c       *Canvas
	p       projection
	letters int
}

func (s canvasStage) Place(i int, b *cloud.Body) {
	cx, cy := s.p.ox+b.X*s.p.k, s.p.oy+b.Y*s.p.k
	s.c.DrawEllipse(cx, cy, b.R*b.ScaleX*s.p.k, b.R*b.ScaleY*s.p.k)

	label := []rune(b.Name)
	if len(label) > s.letters {
		label = label[:s.letters]
	}
	col := int(cx/2) - len(label)/2
	row := int(cy / 4)
	s.c.Label(col, row, string(label))
}

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// glowSteps is how many concentric discs approximate the radial glow.
const glowSteps = 24

// imageSurface draws the particle field onto an offscreen image in the
// field's device-pixel space.
type imageSurface struct {
	img *ebiten.Image
}

func newImageSurface(w, h int) *imageSurface {
	return &imageSurface{img: ebiten.NewImage(max(w, 1), max(h, 1))}
}

func (s *imageSurface) Clear() { s.img.Clear() }

// FillGlow fades c from full strength at the centre to transparent at
// radius by stacking translucent discs.
func (s *imageSurface) FillGlow(cx, cy, radius float64, c color.Color) {
	base := color.NRGBAModel.Convert(c).(color.NRGBA)
	step := base
	step.A = uint8(max(int(base.A)/glowSteps, 1))
	for i := glowSteps; i > 0; i-- {
		r := radius * float64(i) / glowSteps
		vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), step, true)
	}
}

func (s *imageSurface) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

func (s *imageSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

// fits reports whether the backing image already matches w×h.
func (s *imageSurface) fits(w, h int) bool {
	b := s.img.Bounds()
	return b.Dx() == max(w, 1) && b.Dy() == max(h, 1)
}

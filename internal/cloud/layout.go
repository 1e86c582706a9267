package cloud

import (
	"math"

	"github.com/san-kum/heroviz/internal/geom"
)

func (c *Cloud) layoutRandom() {
	for i := range c.bodies {
		b := &c.bodies[i]
		b.X = c.randAxis(b.R, c.w)
		b.Y = c.randAxis(b.R, c.h)
	}
}

func (c *Cloud) randAxis(r, size float64) float64 {
	if size <= 2*r {
		return size / 2
	}
	return c.rand(r, size-r)
}

// layoutRings spreads bodies over concentric rings, outermost first, each
// ring starting at a random angle with a little per-body jitter. Portrait
// containers get their rings squeezed vertically.
func (c *Cloud) layoutRings() {
	total := len(c.bodies)
	if total == 0 {
		return
	}
	cx, cy := c.w/2, c.h/2
	rings := 4
	if c.w < 520 {
		rings = 3
	}
	radiusBase := math.Min(c.w, c.h) * 0.38
	gap := geom.Clamp(radiusBase/float64(rings), 60, 110)
	squeeze := 1.0
	if c.h > c.w {
		squeeze = 0.86
	}

	idx := 0
	for r := 0; r < rings && idx < total; r++ {
		radius := math.Max(radiusBase-float64(r)*gap, 0)
		count := int(math.Ceil(float64(total-idx) / float64(rings-r)))
		jitter := c.rand(0, 360)

		for i := 0; i < count && idx < total; i, idx = i+1, idx+1 {
			deg := float64(i)/float64(count)*360 + jitter + c.rand(-7, 7)
			angle := deg * math.Pi / 180
			b := &c.bodies[idx]
			b.X = clampAxis(cx+math.Cos(angle)*radius, b.R, c.w)
			b.Y = clampAxis(cy+math.Sin(angle)*radius*squeeze, b.R, c.h)
		}
	}
}

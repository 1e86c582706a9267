// Package field implements the animated constellation background: drifting
// particles that bounce off the canvas edges, shy away from the pointer and
// are joined by faint links when close to each other.
package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/heroviz/internal/geom"
)

// Particle lives in device-pixel space.
type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
	Alpha  float64
	Hue    float64
}

// Link joins particles A and B (indices) with the given stroke alpha.
type Link struct {
	A, B  int
	Dist  float64
	Alpha float64
}

type Field struct {
	opts      Options
	rng       *rand.Rand
	rect      geom.Rect
	dpr       float64
	w, h      float64
	particles []Particle
	links     []Link
	pointer   geom.Pointer
}

func New(opts Options, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Field{opts: opts.normalized(), rng: rng, dpr: 1}
}

func (f *Field) Options() Options        { return f.opts }
func (f *Field) Particles() []Particle   { return f.particles }
func (f *Field) Pointer() geom.Pointer   { return f.pointer }
func (f *Field) Size() (w, h float64)    { return f.w, f.h }
func (f *Field) DPR() float64            { return f.dpr }
func (f *Field) Bounds() geom.Rect       { return f.rect }
func (f *Field) SetOptions(opts Options) { f.opts = opts.normalized() }

// Resize re-measures the canvas from its on-screen rect and rebuilds the
// particle set.
func (f *Field) Resize(rect geom.Rect, dpr float64) {
	f.rect = rect
	f.dpr = geom.CapDPR(dpr, f.opts.MaxDPR)
	cw, ch := rect.SafeSize(geom.MinDimension)
	f.w = math.Max(math.Floor(cw*f.dpr), geom.MinDimension)
	f.h = math.Max(math.Floor(ch*f.dpr), geom.MinDimension)
	f.Reseed()
}

// Reposition updates the on-screen rect used to map pointer events, without
// rebuilding the particles. Use it when the canvas moves but keeps its size.
func (f *Field) Reposition(rect geom.Rect) {
	f.rect = rect
}

// Count is the particle count for a CSS-pixel area.
func (o Options) Count(cssArea float64) int {
	n := 0
	if cssArea > 0 && o.Density > 0 {
		n = int(o.Density * cssArea / ReferenceArea)
	}
	return geom.ClampInt(n, o.MinCount, o.MaxCount)
}

func (f *Field) Reseed() {
	cssArea := (f.w / f.dpr) * (f.h / f.dpr)
	n := f.opts.Count(cssArea)

	f.particles = f.particles[:0]
	if cap(f.particles) < n {
		f.particles = make([]Particle, 0, n)
	}
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, Particle{
			X:     f.rand(0, f.w),
			Y:     f.rand(0, f.h),
			VX:    f.rand(-f.opts.Speed, f.opts.Speed) * f.dpr,
			VY:    f.rand(-f.opts.Speed, f.opts.Speed) * f.dpr,
			R:     f.rand(f.opts.RadiusMin, f.opts.RadiusMax) * f.dpr,
			Alpha: f.rand(f.opts.AlphaMin, f.opts.AlphaMax),
			Hue:   f.rand(f.opts.HueB, f.opts.HueA),
		})
	}
	f.links = f.links[:0]
}

func (f *Field) rand(a, b float64) float64 {
	return a + f.rng.Float64()*(b-a)
}

// PointerMove takes client coordinates; they are mapped into the canvas.
func (f *Field) PointerMove(clientX, clientY float64) {
	f.pointer.Move(clientX, clientY, f.rect, f.dpr)
}

func (f *Field) PointerLeave() {
	f.pointer.Leave()
}

// Tick advances every particle by one frame.
func (f *Field) Tick() {
	repel := f.opts.RepelRadius * f.dpr
	maxSpeed := f.opts.MaxSpeed * f.dpr
	p := f.pointer

	for i := range f.particles {
		pt := &f.particles[i]
		pt.X += pt.VX
		pt.Y += pt.VY

		if p.Active && repel > 0 {
			dx, dy := pt.X-p.X, pt.Y-p.Y
			d2 := dx*dx + dy*dy
			if d2 < repel*repel {
				d := math.Sqrt(d2)
				if d == 0 {
					d = 1
				}
				force := (1 - d/repel) * f.opts.RepelStrength
				pt.VX += dx / d * force
				pt.VY += dy / d * force
			}
		}

		if s := math.Hypot(pt.VX, pt.VY); s > maxSpeed {
			pt.VX *= maxSpeed / s
			pt.VY *= maxSpeed / s
		}

		pt.X, pt.VX = reflect(pt.X, pt.VX, f.w)
		pt.Y, pt.VY = reflect(pt.Y, pt.VY, f.h)
	}
}

// reflect folds a coordinate back into [0, max], pointing the velocity
// inward without changing its magnitude.
func reflect(x, v, limit float64) (float64, float64) {
	switch {
	case x < 0:
		return 0, math.Abs(v)
	case x > limit:
		return limit, -math.Abs(v)
	}
	return x, v
}

// LinkAlpha is the stroke alpha of a link of length dist when links are
// drawn up to maxDist. It is zero at and beyond maxDist.
func LinkAlpha(dist, maxDist, base float64) float64 {
	if maxDist <= 0 || dist >= maxDist {
		return 0
	}
	a := base * (1 - dist/maxDist)
	if a <= 0 {
		return 0
	}
	return a
}

// linkDistance widens the link threshold near the pointer.
func (f *Field) linkDistance(mx, my float64) float64 {
	base := f.opts.LinkDistance * f.dpr
	if !f.pointer.Active || f.opts.LinkBoost <= 0 {
		return base
	}
	radius := f.opts.BoostRadius * f.dpr
	if radius <= 0 {
		return base
	}
	d := geom.Dist(mx, my, f.pointer.X, f.pointer.Y)
	if d >= radius {
		return base
	}
	return base + f.opts.LinkBoost*f.dpr*(1-d/radius)
}

// Links returns the proximity graph for the current positions. The slice is
// reused between calls.
func (f *Field) Links() []Link {
	f.links = f.links[:0]
	pts := f.particles
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			a, b := &pts[i], &pts[j]
			dist := geom.Dist(a.X, a.Y, b.X, b.Y)
			limit := f.linkDistance((a.X+b.X)/2, (a.Y+b.Y)/2)
			alpha := LinkAlpha(dist, limit, f.opts.LinkAlpha)
			if alpha <= 0 {
				continue
			}
			f.links = append(f.links, Link{A: i, B: j, Dist: dist, Alpha: alpha})
		}
	}
	return f.links
}

var (
	glowColor = color.NRGBA{R: 110, G: 250, B: 204, A: 18}
	linkColor = colorful.Color{R: 142.0 / 255, G: 193.0 / 255, B: 1}
)

// Draw renders the current frame onto s.
func (f *Field) Draw(s Surface) {
	s.Clear()
	if f.opts.Glow {
		s.FillGlow(f.w*0.5, f.h*0.7, math.Max(f.w, f.h), glowColor)
	}

	for i := range f.particles {
		p := &f.particles[i]
		s.FillCircle(p.X, p.Y, p.R, withAlpha(colorful.Hsl(p.Hue, 0.85, 0.70), p.Alpha))
	}

	for _, l := range f.Links() {
		a, b := &f.particles[l.A], &f.particles[l.B]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.dpr, withAlpha(linkColor, l.Alpha))
	}
}

// Step is one scheduled frame: advance then render.
func (f *Field) Step(s Surface) {
	f.Tick()
	f.Draw(s)
}

func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(geom.Clamp(alpha, 0, 1)*255 + 0.5)}
}

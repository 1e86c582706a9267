// Package cloud implements the skill cloud: draggable discs that drift inside
// a container, bounce off its walls and collide elastically with each other,
// squashing on impact and relaxing back to round.
package cloud

import (
	"math"
	"math/rand"

	"github.com/san-kum/heroviz/internal/geom"
)

type Cloud struct {
	opts   Options
	specs  []Spec
	rng    *rand.Rand
	w, h   float64
	bodies []Body
	drag   Drag
}

func New(specs []Spec, opts Options, rng *rand.Rand) *Cloud {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Cloud{
		opts:  opts.normalized(),
		specs: append([]Spec(nil), specs...),
		rng:   rng,
	}
}

func (c *Cloud) Options() Options     { return c.opts }
func (c *Cloud) Bodies() []Body       { return c.bodies }
func (c *Cloud) Len() int             { return len(c.bodies) }
func (c *Cloud) Size() (w, h float64) { return c.w, c.h }
func (c *Cloud) Drag() Drag           { return c.drag }

func (c *Cloud) Body(i int) *Body {
	if i < 0 || i >= len(c.bodies) {
		return nil
	}
	return &c.bodies[i]
}

// SetOptions applies new tuning; body specs change only on the next Init.
func (c *Cloud) SetOptions(opts Options) { c.opts = opts.normalized() }

func (c *Cloud) SetSpecs(specs []Spec) { c.specs = append(c.specs[:0], specs...) }

// Init discards all bodies and lays out one per Spec inside container.
// Only the container's size matters; body coordinates are container-local.
func (c *Cloud) Init(container geom.Rect) {
	c.w, c.h = container.SafeSize(geom.MinDimension)
	c.drag = Drag{}
	c.bodies = c.bodies[:0]

	for _, s := range c.specs {
		size := s.Size
		if !(size > 0) {
			size = MinSize
		}
		c.bodies = append(c.bodies, Body{
			Name:   s.Name,
			R:      size / 2,
			Mass:   size * c.opts.MassPerSize,
			VX:     c.rand(-c.opts.InitialSpeed, c.opts.InitialSpeed),
			VY:     c.rand(-c.opts.InitialSpeed, c.opts.InitialSpeed),
			ScaleX: 1,
			ScaleY: 1,
		})
	}

	switch c.opts.Layout {
	case LayoutRings:
		c.layoutRings()
	default:
		c.layoutRandom()
	}
	c.resolveOverlaps()
}

// Resize re-initializes for the new container, or rescales current
// positions when Preserve is set.
func (c *Cloud) Resize(container geom.Rect) {
	if !c.opts.Preserve || len(c.bodies) == 0 || len(c.bodies) != len(c.specs) {
		c.Init(container)
		return
	}
	w, h := container.SafeSize(geom.MinDimension)
	sx, sy := w/c.w, h/c.h
	c.w, c.h = w, h
	c.drag = Drag{}
	for i := range c.bodies {
		b := &c.bodies[i]
		b.X = clampAxis(b.X*sx, b.R, w)
		b.Y = clampAxis(b.Y*sy, b.R, h)
	}
	c.resolveOverlaps()
}

func (c *Cloud) rand(a, b float64) float64 {
	return a + c.rng.Float64()*(b-a)
}

// clampAxis keeps a centre at least r from both walls of [0, size]; a body
// wider than the container is centred.
func clampAxis(x, r, size float64) float64 {
	if size <= 2*r {
		return size / 2
	}
	return geom.Clamp(x, r, size-r)
}

// Update advances the simulation by one frame.
func (c *Cloud) Update() {
	captured := c.drag.captured()

	for i := range c.bodies {
		if i == captured {
			continue
		}
		b := &c.bodies[i]
		b.VX *= c.opts.Damping
		b.VY *= c.opts.Damping
		b.X += b.VX
		b.Y += b.VY
		b.ScaleX += (1 - b.ScaleX) * c.opts.RelaxRate
		b.ScaleY += (1 - b.ScaleY) * c.opts.RelaxRate
	}

	for i := range c.bodies {
		if i == captured {
			continue
		}
		c.bounceWalls(&c.bodies[i])
	}

	c.collide()
}

// Draw hands every body to the stage in index order.
func (c *Cloud) Draw(s Stage) {
	for i := range c.bodies {
		s.Place(i, &c.bodies[i])
	}
}

// Step is one scheduled frame.
func (c *Cloud) Step(s Stage) {
	c.Update()
	c.Draw(s)
}

func (c *Cloud) bounceWalls(b *Body) {
	sq := c.opts.Squash
	if b.X-b.R < 0 || b.X+b.R > c.w {
		if b.X-b.R < 0 {
			b.VX = math.Abs(b.VX)
		} else {
			b.VX = -math.Abs(b.VX)
		}
		b.X = clampAxis(b.X, b.R, c.w)
		b.ScaleX, b.ScaleY = 1-sq, 1+sq
	}
	if b.Y-b.R < 0 || b.Y+b.R > c.h {
		if b.Y-b.R < 0 {
			b.VY = math.Abs(b.VY)
		} else {
			b.VY = -math.Abs(b.VY)
		}
		b.Y = clampAxis(b.Y, b.R, c.h)
		b.ScaleX, b.ScaleY = 1+sq, 1-sq
	}
}

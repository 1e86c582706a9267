package cloud

import (
	"math"

	"github.com/san-kum/heroviz/internal/geom"
)

// ElasticExchange returns the post-collision velocities along the line of
// centres for a perfectly elastic impact between masses m1 and m2.
func ElasticExchange(u1, u2, m1, m2 float64) (v1, v2 float64) {
	total := m1 + m2
	if !(total > 0) {
		return u2, u1
	}
	v1 = (u1*(m1-m2) + 2*m2*u2) / total
	v2 = (u2*(m2-m1) + 2*m1*u1) / total
	return v1, v2
}

// collide resolves every overlapping pair once with velocity exchange, then
// runs extra positional passes until nothing overlaps or the pass budget is
// spent. Pairs are O(n²); fine for the couple of dozen bodies a cloud holds.
func (c *Cloud) collide() {
	captured := c.drag.captured()
	n := len(c.bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c.resolve(i, j, captured, true)
		}
	}
	for pass := 1; pass < c.opts.Iterations; pass++ {
		if !c.separate(captured) {
			break
		}
	}
	c.contain(captured)
}

// separate runs one positional-only pass and reports whether any pair still
// overlapped beyond tolerance.
func (c *Cloud) separate(captured int) bool {
	moved := false
	n := len(c.bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if c.resolve(i, j, captured, false) {
				moved = true
			}
		}
	}
	c.contain(captured)
	return moved
}

// contain pulls every free body back inside the container.
func (c *Cloud) contain(captured int) {
	for i := range c.bodies {
		if i == captured {
			continue
		}
		b := &c.bodies[i]
		b.X = clampAxis(b.X, b.R, c.w)
		b.Y = clampAxis(b.Y, b.R, c.h)
	}
}

// settlePasses bounds the correction after a layout, where random
// placement can start heavily overlapped.
const settlePasses = 64

func (c *Cloud) resolveOverlaps() {
	for pass := 0; pass < max(c.opts.Iterations, settlePasses); pass++ {
		if !c.separate(-1) {
			return
		}
	}
}

// resolve pushes bodies i and j apart along their centre line and, when
// impulse is set, exchanges their normal velocities. A captured body is
// kinematic: its velocity never changes and the other body rebounds off it
// as off an infinite mass. It gives way only when the other body is pinned
// against a wall.
func (c *Cloud) resolve(i, j, captured int, impulse bool) bool {
	a, b := &c.bodies[i], &c.bodies[j]
	dx, dy := b.X-a.X, b.Y-a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = geom.Epsilon
	}
	minDist := a.R + b.R
	if dist >= minDist-c.tolerance(impulse) {
		return false
	}

	overlap := minDist - dist
	angle := math.Atan2(dy, dx)
	cos, sin := math.Cos(angle), math.Sin(angle)

	switch captured {
	case i:
		c.place(b, b.X+cos*overlap, b.Y+sin*overlap)
		c.pushApart(b, a)
	case j:
		c.place(a, a.X-cos*overlap, a.Y-sin*overlap)
		c.pushApart(a, b)
	default:
		half := overlap / 2
		c.place(a, a.X-cos*half, a.Y-sin*half)
		c.place(b, b.X+cos*half, b.Y+sin*half)
		c.pushApart(a, b)
		c.pushApart(b, a)
	}

	if !impulse {
		return true
	}

	u1 := a.VX*cos + a.VY*sin
	t1 := -a.VX*sin + a.VY*cos
	u2 := b.VX*cos + b.VY*sin
	t2 := -b.VX*sin + b.VY*cos

	// Only bodies closing on each other along the normal exchange momentum.
	if u1-u2 > 0 {
		var v1, v2 float64
		switch captured {
		case i:
			v1, v2 = u1, 2*u1-u2
		case j:
			v1, v2 = 2*u2-u1, u2
		default:
			v1, v2 = ElasticExchange(u1, u2, a.Mass, b.Mass)
		}
		a.VX, a.VY = v1*cos-t1*sin, v1*sin+t1*cos
		b.VX, b.VY = v2*cos-t2*sin, v2*sin+t2*cos
	}

	sq := c.opts.Squash
	sx, sy := 1+sq, 1-sq
	if math.Abs(dx) > math.Abs(dy) {
		sx, sy = 1-sq, 1+sq
	}
	if captured != i {
		a.ScaleX, a.ScaleY = sx, sy
	}
	if captured != j {
		b.ScaleX, b.ScaleY = sx, sy
	}
	return true
}

// place moves b to (x, y), kept inside the container.
func (c *Cloud) place(b *Body, x, y float64) {
	b.X = clampAxis(x, b.R, c.w)
	b.Y = clampAxis(y, b.R, c.h)
}

// pushApart moves b away from a by whatever overlap is left after a wall
// stopped a's share of the correction. A captured body is moved this way
// only when the body it hit is pinned.
func (c *Cloud) pushApart(a, b *Body) {
	dx, dy := b.X-a.X, b.Y-a.Y
	dist := math.Hypot(dx, dy)
	short := a.R + b.R - dist
	if short <= c.opts.Tolerance/2 {
		return
	}
	if dist < geom.Epsilon {
		dx, dy, dist = 1, 0, 1
	}
	c.place(b, b.X+dx/dist*short, b.Y+dy/dist*short)
}

// tolerance lets the positional passes ignore sub-tolerance contact so they
// terminate; the impulse pass reacts to any overlap.
func (c *Cloud) tolerance(impulse bool) float64 {
	if impulse {
		return 0
	}
	return c.opts.Tolerance / 2
}

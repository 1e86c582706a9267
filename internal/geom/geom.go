// Package geom holds the small amount of 2-D geometry shared by the effects:
// rectangles, clamping, device-pixel ratio handling and pointer normalization.
package geom

import "math"

// Epsilon stands in for a zero distance between coincident centres.
const Epsilon = 1e-6

// MinDimension is substituted for a side that has not been laid out yet.
const MinDimension = 1.0

type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Intersect returns the overlap of r and o, or the zero Rect when they are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// SafeSize replaces missing, zero or negative dimensions with min.
func (r Rect) SafeSize(min float64) (w, h float64) {
	w, h = r.W, r.H
	if !(w >= min) {
		w = min
	}
	if !(h >= min) {
		h = min
	}
	return w, h
}

func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// CapDPR normalizes a device-pixel ratio: anything non-positive (or NaN)
// becomes 1 and high-DPI ratios are capped at max.
func CapDPR(dpr, max float64) float64 {
	if !(dpr > 0) {
		dpr = 1
	}
	if max > 0 && dpr > max {
		return max
	}
	return dpr
}

// Lerp maps t in [0,1] onto [a,b].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

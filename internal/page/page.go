// Package page lays out the host document: a hero section carrying the
// particle field, followed by a skills section carrying the body cloud.
// Each section is one viewport tall and the page scrolls vertically.
//
// Rects returned by the page are in client (viewport) coordinates, the same
// space pointer events arrive in.
package page

import (
	"math"

	"github.com/san-kum/heroviz/internal/geom"
)

type Section int

const (
	Hero Section = iota
	Skills
	numSections
)

func (s Section) String() string {
	switch s {
	case Hero:
		return "hero"
	case Skills:
		return "skills"
	default:
		return "unknown"
	}
}

// Sections lists every section in document order.
func Sections() []Section { return []Section{Hero, Skills} }

type Page struct {
	w, h   float64
	scroll float64
}

func New(w, h float64) *Page {
	p := &Page{}
	p.Resize(w, h)
	return p
}

// Resize sets the viewport size and reports whether any section rect
// changed. The scroll offset is re-clamped and scaled so the same section
// stays in view.
func (p *Page) Resize(w, h float64) bool {
	w, h = geom.Rect{W: w, H: h}.SafeSize(geom.MinDimension)
	if w == p.w && h == p.h {
		return false
	}
	if p.h > 0 {
		p.scroll *= h / p.h
	}
	p.w, p.h = w, h
	p.scroll = geom.Clamp(p.scroll, 0, p.MaxScroll())
	return true
}

func (p *Page) Size() (w, h float64) { return p.w, p.h }
func (p *Page) Height() float64      { return p.h * float64(numSections) }
func (p *Page) Scroll() float64      { return p.scroll }
func (p *Page) MaxScroll() float64   { return math.Max(p.Height()-p.h, 0) }

// Viewport is the visible area in client coordinates.
func (p *Page) Viewport() geom.Rect {
	return geom.Rect{W: p.w, H: p.h}
}

// ScrollTo moves the viewport to offset y, clamped to the page. It reports
// whether the offset changed.
func (p *Page) ScrollTo(y float64) bool {
	if math.IsNaN(y) {
		return false
	}
	y = geom.Clamp(y, 0, p.MaxScroll())
	if y == p.scroll {
		return false
	}
	p.scroll = y
	return true
}

func (p *Page) ScrollBy(dy float64) bool { return p.ScrollTo(p.scroll + dy) }

// Show scrolls section s to the top of the viewport.
func (p *Page) Show(s Section) bool { return p.ScrollTo(p.top(s)) }

func (p *Page) top(s Section) float64 {
	return float64(s) * p.h
}

// Rect is section s in client coordinates.
func (p *Page) Rect(s Section) geom.Rect {
	return geom.Rect{Y: p.top(s) - p.scroll, W: p.w, H: p.h}
}

// At returns the section under a client point.
func (p *Page) At(x, y float64) (Section, bool) {
	for _, s := range Sections() {
		if p.Rect(s).Contains(x, y) {
			return s, true
		}
	}
	return 0, false
}

// Current is the section covering most of the viewport.
func (p *Page) Current() Section {
	vp := p.Viewport()
	best, bestArea := Hero, -1.0
	for _, s := range Sections() {
		if a := vp.Intersect(p.Rect(s)).Area(); a > bestArea {
			best, bestArea = s, a
		}
	}
	return best
}

package loop

import "github.com/san-kum/heroviz/internal/geom"

// DefaultThreshold is the visible fraction a target needs to count as in view.
const DefaultThreshold = 0.12

// Observer reports when a target rect enters or leaves a viewport.
type Observer struct {
	Threshold float64
	target    geom.Rect
	seen      bool
	visible   bool
	onChange  func(visible bool)
}

func NewObserver(threshold float64, onChange func(visible bool)) *Observer {
	if threshold < 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Observer{Threshold: threshold, onChange: onChange}
}

func (o *Observer) SetTarget(r geom.Rect) { o.target = r }
func (o *Observer) Visible() bool         { return o.visible }

// Ratio returns the fraction of target's area that lies inside viewport.
func Ratio(viewport, target geom.Rect) float64 {
	area := target.Area()
	if area == 0 {
		return 0
	}
	return viewport.Intersect(target).Area() / area
}

// Update re-evaluates the target against viewport. The callback fires on the
// first evaluation and on every transition after that.
func (o *Observer) Update(viewport geom.Rect) bool {
	ratio := Ratio(viewport, o.target)
	visible := ratio > 0 && ratio >= o.Threshold
	if o.seen && visible == o.visible {
		return visible
	}
	o.seen = true
	o.visible = visible
	if o.onChange != nil {
		o.onChange(visible)
	}
	return visible
}

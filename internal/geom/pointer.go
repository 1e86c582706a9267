package geom

// Pointer is the last known pointer position in a component's local space.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Move records a pointer event given in client coordinates. bounds is the
// element's on-screen rect and scale converts CSS pixels to the component's
// space (the device-pixel ratio for canvases, 1 otherwise). The pointer is
// only active while it lies inside bounds.
func (p *Pointer) Move(clientX, clientY float64, bounds Rect, scale float64) {
	if !(scale > 0) {
		scale = 1
	}
	p.X = (clientX - bounds.X) * scale
	p.Y = (clientY - bounds.Y) * scale
	p.Active = !bounds.Empty() && bounds.Contains(clientX, clientY)
}

func (p *Pointer) Leave() {
	p.Active = false
}

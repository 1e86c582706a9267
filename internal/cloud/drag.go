package cloud

// Mode is the drag state of a cloud.
type Mode uint8

const (
	Idle Mode = iota
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Drag is either Idle or Dragging a single body, identified by Index.
// Index is meaningless while Idle.
type Drag struct {
	Mode  Mode
	Index int

	lastX, lastY float64
}

func (d Drag) captured() int {
	if d.Mode == Dragging {
		return d.Index
	}
	return -1
}

// HitTest returns the topmost body containing (x, y), or -1. Later bodies are
// drawn on top, so they win.
func (c *Cloud) HitTest(x, y float64) int {
	for i := len(c.bodies) - 1; i >= 0; i-- {
		if c.bodies[i].contains(x, y) {
			return i
		}
	}
	return -1
}

// PointerDown captures the body under (x, y), in container coordinates.
// It reports whether a body was captured.
func (c *Cloud) PointerDown(x, y float64) bool {
	if c.drag.Mode == Dragging {
		return false
	}
	return c.BeginDrag(c.HitTest(x, y), x, y)
}

// BeginDrag captures body i with the pointer at (x, y) and stops it.
func (c *Cloud) BeginDrag(i int, x, y float64) bool {
	b := c.Body(i)
	if b == nil {
		return false
	}
	b.VX, b.VY = 0, 0
	c.drag = Drag{Mode: Dragging, Index: i, lastX: x, lastY: y}
	return true
}

// PointerMove drives the captured body: its centre follows the pointer
// (kept inside the container) and its velocity becomes the pointer delta
// times the drag multiplier.
func (c *Cloud) PointerMove(x, y float64) {
	if c.drag.Mode != Dragging {
		return
	}
	b := c.Body(c.drag.Index)
	if b == nil {
		c.drag = Drag{}
		return
	}
	b.VX = (x - c.drag.lastX) * c.opts.DragMultiplier
	b.VY = (y - c.drag.lastY) * c.opts.DragMultiplier
	b.X = clampAxis(x, b.R, c.w)
	b.Y = clampAxis(y, b.R, c.h)
	c.drag.lastX, c.drag.lastY = x, y
}

// PointerUp releases any capture. The body keeps its last drag velocity and
// physics takes over from there. Releasing while idle does nothing.
func (c *Cloud) PointerUp() {
	c.drag = Drag{}
}

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelStep is the scroll distance of one wheel notch, in CSS pixels.
const wheelStep = 48

// pointerInput turns ebiten's polled mouse and touch state into the
// move/down/up/leave events the scene expects. Coordinates are converted
// from screen pixels to CSS pixels.
type pointerInput struct {
	inside   bool
	lastX    float64
	lastY    float64
	touch    ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID
}

type pointerTarget interface {
	PointerMove(x, y float64)
	PointerDown(x, y float64) bool
	PointerUp()
	PointerLeave()
	Scroll(dy float64) bool
}

func (in *pointerInput) poll(t pointerTarget, w, h, dpr float64) {
	if in.pollTouch(t, dpr) {
		return
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/dpr, float64(cy)/dpr
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < w && y < h

	switch {
	case inside && (!in.inside || x != in.lastX || y != in.lastY):
		t.PointerMove(x, y)
	case !inside && in.inside:
		t.PointerLeave()
	}
	in.inside = inside
	in.lastX, in.lastY = x, y

	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		t.PointerDown(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		t.PointerUp()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		t.Scroll(-dy * wheelStep)
	}
}

// pollTouch follows the first active touch. It reports whether touch input
// was handled this frame.
func (in *pointerInput) pollTouch(t pointerTarget, dpr float64) bool {
	if !in.touching {
		in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
		if len(in.touchIDs) == 0 {
			return false
		}
		in.touch = in.touchIDs[0]
		in.touching = true
		x, y := in.touchPosition(dpr)
		t.PointerMove(x, y)
		t.PointerDown(x, y)
		return true
	}

	if inpututil.IsTouchJustReleased(in.touch) {
		in.touching = false
		t.PointerUp()
		t.PointerLeave()
		return true
	}

	x, y := in.touchPosition(dpr)
	if x != in.lastX || y != in.lastY {
		t.PointerMove(x, y)
	}
	return true
}

func (in *pointerInput) touchPosition(dpr float64) (float64, float64) {
	tx, ty := ebiten.TouchPosition(in.touch)
	in.lastX, in.lastY = float64(tx)/dpr, float64(ty)/dpr
	return in.lastX, in.lastY
}

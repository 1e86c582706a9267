package scene

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/san-kum/heroviz/internal/cloud"
	"github.com/san-kum/heroviz/internal/config"
	"github.com/san-kum/heroviz/internal/page"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newScene(t *testing.T) *Scene {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	s := New(cfg, nil)
	s.Resize(1280, 720, 1, t0)
	return s
}

type countingSurface struct{ clears int }

func (c *countingSurface) Clear()                                                { c.clears++ }
func (c *countingSurface) FillGlow(cx, cy, radius float64, col color.Color)      {}
func (c *countingSurface) FillCircle(x, y, r float64, col color.Color)           {}
func (c *countingSurface) StrokeLine(x1, y1, x2, y2, w float64, col color.Color) {}

func TestNothingRunsBeforeFirstFrame(t *testing.T) {
	s := newScene(t)
	if s.FieldRunning() || s.CloudRunning() {
		t.Fatal("loops running before the first visibility report")
	}

	s.Frame(t0)
	if !s.FieldRunning() {
		t.Error("hero is in view, field should run")
	}
	if s.CloudRunning() {
		t.Error("skills are out of view, cloud should be paused")
	}
}

func TestScrollSwitchesLoops(t *testing.T) {
	s := newScene(t)
	s.Frame(t0)

	s.Show(page.Skills)
	s.Frame(t0)
	if s.FieldRunning() || !s.CloudRunning() {
		t.Errorf("after scrolling to skills: field=%v cloud=%v", s.FieldRunning(), s.CloudRunning())
	}

	s.Show(page.Hero)
	s.Frame(t0)
	if !s.FieldRunning() || s.CloudRunning() {
		t.Errorf("after scrolling back: field=%v cloud=%v", s.FieldRunning(), s.CloudRunning())
	}
}

func TestReducedMotionFreezesField(t *testing.T) {
	s := newScene(t)
	s.Frame(t0)

	before := append(s.Field().Particles()[:0:0], s.Field().Particles()...)
	if !s.ToggleReducedMotion() {
		t.Fatal("expected reduced motion on")
	}
	for i := 0; i < 5; i++ {
		s.Frame(t0)
	}
	if s.FieldRunning() {
		t.Fatal("field still running under reduced motion")
	}
	for i, p := range s.Field().Particles() {
		if p != before[i] {
			t.Fatalf("particle %d moved while paused", i)
		}
	}

	s.ToggleReducedMotion()
	s.Frame(t0)
	if !s.FieldRunning() {
		t.Error("field did not resume")
	}
}

func TestReducedMotionFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Loop.ReducedMotion = true
	s := New(cfg, nil)
	s.Resize(800, 600, 1, t0)
	s.Frame(t0)
	if s.FieldRunning() || !s.ReducedMotion() {
		t.Error("reduced motion preference ignored")
	}
}

func TestResizeIsDebounced(t *testing.T) {
	s := newScene(t)
	s.Frame(t0)

	s.Resize(900, 500, 1, t0)
	s.Resize(640, 360, 1, t0.Add(100*time.Millisecond))
	if w, _ := s.Page().Size(); w != 640 {
		t.Errorf("page should relayout at once, got width %g", w)
	}

	s.Frame(t0.Add(200 * time.Millisecond))
	if w, _ := s.Field().Size(); w != 1280 {
		t.Errorf("field rebuilt before the burst settled: width %g", w)
	}

	s.Frame(t0.Add(250 * time.Millisecond))
	if w, h := s.Field().Size(); w != 640 || h != 360 {
		t.Errorf("expected field 640x360, got %gx%g", w, h)
	}
	if cw, ch := s.Cloud().Size(); cw != 640 || ch != 360 {
		t.Errorf("expected cloud 640x360, got %gx%g", cw, ch)
	}
}

func TestDevicePixelRatio(t *testing.T) {
	cfg := config.DefaultConfig()
	s := New(cfg, nil)
	s.Resize(400, 300, 3, t0)

	if s.Field().DPR() != 2 {
		t.Errorf("expected dpr capped at 2, got %g", s.Field().DPR())
	}
	if w, h := s.Field().Size(); w != 800 || h != 600 {
		t.Errorf("expected backing store 800x600, got %gx%g", w, h)
	}
}

func TestPointerMapsIntoField(t *testing.T) {
	cfg := config.DefaultConfig()
	s := New(cfg, nil)
	s.Resize(800, 600, 2, t0)

	s.PointerMove(100, 50)
	p := s.Field().Pointer()
	if !p.Active || p.X != 200 || p.Y != 100 {
		t.Errorf("pointer %+v", p)
	}

	s.Scroll(100)
	s.PointerMove(100, 50)
	if p := s.Field().Pointer(); p.Y != 300 {
		t.Errorf("scroll not applied to pointer mapping: %+v", p)
	}

	s.PointerLeave()
	if s.Field().Pointer().Active {
		t.Error("pointer still active after leave")
	}
}

func TestDragThroughScene(t *testing.T) {
	s := newScene(t)
	s.Show(page.Skills)
	s.Frame(t0)

	b := *s.Cloud().Body(0)
	o := s.CloudOrigin()
	if !s.PointerDown(b.X+o.X, b.Y+o.Y) {
		t.Fatal("expected to capture body 0")
	}
	if s.Cloud().Drag().Mode != cloud.Dragging {
		t.Fatal("cloud not dragging")
	}

	s.PointerMove(b.X+o.X+4, b.Y+o.Y)
	s.Frame(t0)
	s.PointerUp()
	if s.Cloud().Drag().Mode != cloud.Idle {
		t.Error("drag not released")
	}
}

func TestPointerDownIgnoredWhilePaused(t *testing.T) {
	s := newScene(t)
	s.Frame(t0)

	b := *s.Cloud().Body(0)
	o := s.CloudOrigin()
	if s.PointerDown(b.X+o.X, b.Y+o.Y) {
		t.Error("captured a body in a paused cloud")
	}
}

func TestReinitRedrawsWhilePaused(t *testing.T) {
	s := newScene(t)
	surf := &countingSurface{}
	placed := 0
	s.Attach(surf, cloud.StageFunc(func(int, *cloud.Body) { placed++ }))
	s.SetReducedMotion(true)

	s.Reinit()
	if surf.clears != 1 {
		t.Errorf("expected one static field frame, got %d", surf.clears)
	}
	if placed != s.Cloud().Len() {
		t.Errorf("expected %d placements, got %d", s.Cloud().Len(), placed)
	}
}

func TestApplyConfig(t *testing.T) {
	s := newScene(t)

	cfg := config.DefaultConfig()
	cfg.Particles.MinCount = 10
	cfg.Particles.MaxCount = 10
	cfg.Bodies.Skills = []cloud.Spec{{Name: "Go", Size: 64}, {Name: "Rust", Size: 64}}
	s.ApplyConfig(cfg)

	if got := len(s.Field().Particles()); got != 10 {
		t.Errorf("expected 10 particles, got %d", got)
	}
	if s.Cloud().Len() != 2 {
		t.Errorf("expected 2 bodies, got %d", s.Cloud().Len())
	}
	if s.Config() != cfg {
		t.Error("config not swapped")
	}
}

func TestSnapshot(t *testing.T) {
	s := newScene(t)
	s.Frame(t0)
	s.Frame(t0)

	snap := s.Snapshot()
	if snap.Frame != 2 {
		t.Errorf("expected frame 2, got %d", snap.Frame)
	}
	if len(snap.Bodies) != len(config.DefaultSkills) {
		t.Errorf("expected %d bodies, got %d", len(config.DefaultSkills), len(snap.Bodies))
	}
	if len(snap.Particles) == 0 {
		t.Error("no particles in snapshot")
	}
}

func TestFieldReseedsOnResume(t *testing.T) {
	s := newScene(t)
	s.Frame(t0)
	n := len(s.Field().Particles())
	before := s.Field().Particles()[0]

	s.Show(page.Skills)
	s.Frame(t0)
	s.Show(page.Hero)
	s.Frame(t0)

	if got := len(s.Field().Particles()); got != n {
		t.Errorf("expected %d particles after resume, got %d", n, got)
	}
	// One tick moves a particle by at most MaxSpeed; a reseed relocates it.
	after := s.Field().Particles()[0]
	if math.Hypot(after.X-before.X, after.Y-before.Y) <= 2*s.Config().Particles.MaxSpeed {
		t.Error("expected a fresh particle set after the field resumed")
	}
}

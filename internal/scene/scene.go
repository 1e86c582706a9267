// Package scene wires the two effects into a host page: it owns the page
// layout, one frame loop per effect, the visibility observers and
// reduced-motion gates that start and stop those loops, and the debounced
// resize. Hosts feed it input and call Frame once per display refresh.
package scene

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/heroviz/internal/cloud"
	"github.com/san-kum/heroviz/internal/config"
	"github.com/san-kum/heroviz/internal/field"
	"github.com/san-kum/heroviz/internal/geom"
	"github.com/san-kum/heroviz/internal/loop"
	"github.com/san-kum/heroviz/internal/metrics"
	"github.com/san-kum/heroviz/internal/page"
)

type Scene struct {
	cfg    *config.Config
	logger *log.Logger
	page   *page.Page
	dpr    float64
	sized  bool
	frame  int

	field     *field.Field
	fieldLoop *loop.Loop
	fieldGate *loop.Gate
	heroObs   *loop.Observer
	surface   field.Surface

	cloud     *cloud.Cloud
	cloudLoop *loop.Loop
	cloudGate *loop.Gate
	skillsObs *loop.Observer
	stage     cloud.Stage

	resize *loop.Debouncer
}

// New builds a scene from cfg. Nothing animates until the first Resize and
// Frame: the gates start closed and open on the first visibility report.
func New(cfg *config.Config, logger *log.Logger) *Scene {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := rand.New(rand.NewSource(cfg.SeedOr(time.Now().UnixNano())))

	s := &Scene{
		cfg:    cfg,
		logger: logger,
		page:   page.New(float64(cfg.Window.Width), float64(cfg.Window.Height)),
		dpr:    1,
		field:  field.New(cfg.FieldOptions(), rng),
		cloud:  cloud.New(cfg.Bodies.Skills, cfg.CloudOptions(), rng),
	}

	s.fieldLoop = loop.New(s.stepField)
	s.cloudLoop = loop.New(s.stepCloud)
	s.fieldGate = s.newGate(page.Hero, s.fieldLoop)
	s.cloudGate = s.newGate(page.Skills, s.cloudLoop)
	s.fieldGate.OnResume = s.remeasureField
	s.heroObs = s.newObserver(page.Hero, s.fieldGate)
	s.skillsObs = s.newObserver(page.Skills, s.cloudGate)
	s.resize = loop.NewDebouncer(cfg.Loop.ResizeDebounce, s.applyResize)

	s.SetReducedMotion(cfg.Loop.ReducedMotion)
	return s
}

func (s *Scene) newGate(sec page.Section, l *loop.Loop) *loop.Gate {
	g := loop.NewGate(l)
	g.OnChange = func(open bool) {
		s.logger.Debug("loop", "section", sec, "running", open)
	}
	return g
}

// remeasureField rebuilds the particles for the hero's current rect each
// time the field starts running again.
func (s *Scene) remeasureField() {
	if !s.sized {
		return
	}
	s.field.Resize(s.page.Rect(page.Hero), s.dpr)
}

func (s *Scene) newObserver(sec page.Section, g *loop.Gate) *loop.Observer {
	return loop.NewObserver(s.cfg.Loop.VisibilityThreshold, func(visible bool) {
		s.logger.Debug("visibility", "section", sec, "visible", visible)
		g.SetVisible(visible)
	})
}

func (s *Scene) Config() *config.Config { return s.cfg }
func (s *Scene) Page() *page.Page       { return s.page }
func (s *Scene) Field() *field.Field    { return s.field }
func (s *Scene) Cloud() *cloud.Cloud    { return s.cloud }
func (s *Scene) DPR() float64           { return s.dpr }
func (s *Scene) Frames() int            { return s.frame }
func (s *Scene) FieldRunning() bool     { return s.fieldLoop.Running() }
func (s *Scene) CloudRunning() bool     { return s.cloudLoop.Running() }
func (s *Scene) ReducedMotion() bool    { return s.fieldGate.ReducedMotion() }

// Attach sets where each effect renders. Either may be nil, in which case
// that effect still simulates but draws nothing.
func (s *Scene) Attach(surface field.Surface, stage cloud.Stage) {
	s.surface = surface
	s.stage = stage
}

// Resize reports a new viewport. The first call builds both effects at
// once; later calls relayout the page immediately and rebuild the effects
// after the resize burst has settled.
func (s *Scene) Resize(w, h, dpr float64, now time.Time) {
	changed := s.page.Resize(w, h)
	if dpr != s.dpr {
		s.dpr = dpr
		changed = true
	}
	s.field.Reposition(s.page.Rect(page.Hero))

	if !s.sized {
		s.sized = true
		s.resize.Cancel()
		s.applyResize()
		return
	}
	if changed {
		s.resize.Trigger(now)
	}
}

// Reinit rebuilds both effects for the current layout right away.
func (s *Scene) Reinit() {
	s.resize.Cancel()
	s.applyResize()
}

func (s *Scene) applyResize() {
	hero := s.page.Rect(page.Hero)
	skills := s.page.Rect(page.Skills)
	s.field.Resize(hero, s.dpr)
	s.cloud.Resize(skills)
	s.logger.Debug("resize", "width", hero.W, "height", hero.H, "dpr", s.field.DPR(),
		"particles", len(s.field.Particles()), "bodies", s.cloud.Len())
	s.redraw()
}

// redraw paints the current state without advancing it, so a paused effect
// still shows a frame after a rebuild.
func (s *Scene) redraw() {
	if s.surface != nil {
		s.field.Draw(s.surface)
	}
	if s.stage != nil {
		s.cloud.Draw(s.stage)
	}
}

// ApplyConfig swaps in a reloaded config and rebuilds both effects.
func (s *Scene) ApplyConfig(cfg *config.Config) {
	s.cfg = cfg
	s.field.SetOptions(cfg.FieldOptions())
	s.cloud.SetOptions(cfg.CloudOptions())
	s.cloud.SetSpecs(cfg.Bodies.Skills)
	s.heroObs.Threshold = cfg.Loop.VisibilityThreshold
	s.skillsObs.Threshold = cfg.Loop.VisibilityThreshold
	if cfg.Loop.ResizeDebounce > 0 {
		s.resize.Delay = cfg.Loop.ResizeDebounce
	}
	s.SetReducedMotion(cfg.Loop.ReducedMotion)
	if s.sized {
		s.Reinit()
	}
	s.logger.Info("config applied", "particles", len(s.field.Particles()), "bodies", s.cloud.Len())
}

func (s *Scene) SetReducedMotion(r bool) {
	s.fieldGate.SetReducedMotion(r)
	s.cloudGate.SetReducedMotion(r)
}

func (s *Scene) ToggleReducedMotion() bool {
	r := !s.ReducedMotion()
	s.SetReducedMotion(r)
	return r
}

// Scroll moves the page by dy and keeps the field's pointer mapping in step.
func (s *Scene) Scroll(dy float64) bool {
	if !s.page.ScrollBy(dy) {
		return false
	}
	s.field.Reposition(s.page.Rect(page.Hero))
	return true
}

// Show scrolls section sec into view.
func (s *Scene) Show(sec page.Section) bool {
	if !s.page.Show(sec) {
		return false
	}
	s.field.Reposition(s.page.Rect(page.Hero))
	return true
}

// CloudOrigin is the skills container's top-left in client coordinates.
func (s *Scene) CloudOrigin() geom.Vec {
	r := s.page.Rect(page.Skills)
	return geom.Vec{X: r.X, Y: r.Y}
}

// PointerMove takes client coordinates. The field tracks the pointer for
// repulsion and a captured body follows it.
func (s *Scene) PointerMove(x, y float64) {
	s.field.PointerMove(x, y)
	o := s.CloudOrigin()
	s.cloud.PointerMove(x-o.X, y-o.Y)
}

// PointerDown tries to capture a body under the pointer. A paused cloud
// ignores presses.
func (s *Scene) PointerDown(x, y float64) bool {
	if !s.cloudLoop.Running() || !s.page.Rect(page.Skills).Contains(x, y) {
		return false
	}
	o := s.CloudOrigin()
	return s.cloud.PointerDown(x-o.X, y-o.Y)
}

func (s *Scene) PointerUp() {
	s.cloud.PointerUp()
}

// PointerLeave handles the pointer leaving the window: repulsion stops and
// any drag is released.
func (s *Scene) PointerLeave() {
	s.field.PointerLeave()
	s.cloud.PointerUp()
}

// Frame runs one display refresh: the pending resize fires if it has
// settled, visibility is re-evaluated, then each running effect steps once.
func (s *Scene) Frame(now time.Time) {
	s.resize.Poll(now)
	s.observe()
	s.fieldLoop.Frame()
	s.cloudLoop.Frame()
	s.frame++
}

func (s *Scene) observe() {
	vp := s.page.Viewport()
	s.heroObs.SetTarget(s.page.Rect(page.Hero))
	s.skillsObs.SetTarget(s.page.Rect(page.Skills))
	s.heroObs.Update(vp)
	s.skillsObs.Update(vp)
}

func (s *Scene) stepField() {
	if s.surface != nil {
		s.field.Step(s.surface)
		return
	}
	s.field.Tick()
}

func (s *Scene) stepCloud() {
	if s.stage != nil {
		s.cloud.Step(s.stage)
		return
	}
	s.cloud.Update()
}

// Snapshot captures the current frame for metrics.
func (s *Scene) Snapshot() metrics.Snapshot {
	return metrics.Snapshot{
		Frame:     s.frame,
		Bodies:    s.cloud.Bodies(),
		Particles: s.field.Particles(),
		Links:     len(s.field.Links()),
	}
}

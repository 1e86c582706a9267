package field

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/heroviz/internal/geom"
)

type recorder struct {
	clears, glows, circles, lines int
	lineAlphas                    []uint8
}

func (r *recorder) Clear()                                         { r.clears++ }
func (r *recorder) FillGlow(cx, cy, radius float64, c color.Color) { r.glows++ }
func (r *recorder) FillCircle(x, y, rad float64, c color.Color)    { r.circles++ }
func (r *recorder) StrokeLine(x1, y1, x2, y2, w float64, c color.Color) {
	r.lines++
	r.lineAlphas = append(r.lineAlphas, color.NRGBAModel.Convert(c).(color.NRGBA).A)
}

func newField(opts Options) *Field {
	return New(opts, rand.New(rand.NewSource(42)))
}

func TestResizeZeroArea(t *testing.T) {
	g := NewWithT(t)
	f := newField(DefaultOptions())

	f.Resize(geom.Rect{}, 0)

	w, h := f.Size()
	g.Expect(w).To(BeNumerically(">=", geom.MinDimension))
	g.Expect(h).To(BeNumerically(">=", geom.MinDimension))
	g.Expect(f.Particles()).To(HaveLen(DefaultOptions().MinCount))

	rec := &recorder{}
	g.Expect(func() {
		for i := 0; i < 10; i++ {
			f.Step(rec)
		}
	}).NotTo(Panic())
	for _, p := range f.Particles() {
		g.Expect(math.IsNaN(p.X) || math.IsNaN(p.Y)).To(BeFalse())
	}
}

func TestEmptyFieldRuns(t *testing.T) {
	g := NewWithT(t)
	opts := DefaultOptions()
	opts.MinCount = 0
	opts.Density = 0
	f := newField(opts)
	f.Resize(geom.Rect{W: 0, H: 0}, 1)

	g.Expect(f.Particles()).To(BeEmpty())

	rec := &recorder{}
	f.PointerMove(0, 0)
	f.Step(rec)
	g.Expect(rec.clears).To(Equal(1))
	g.Expect(rec.circles).To(BeZero())
	g.Expect(f.Links()).To(BeEmpty())
}

func TestCountClamp(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name string
		area float64
		want int
	}{
		{"zero", 0, opts.MinCount},
		{"tiny", 320 * 240, opts.MinCount},
		{"reference", ReferenceArea, 90},
		{"huge", 7680 * 4320, opts.MaxCount},
		{"negative", -100, opts.MinCount},
	}

	for _, tt := range tests {
		if got := opts.Count(tt.area); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestResizeDPRCap(t *testing.T) {
	g := NewWithT(t)
	f := newField(DefaultOptions())

	f.Resize(geom.Rect{W: 640, H: 360}, 3)

	g.Expect(f.DPR()).To(Equal(2.0))
	w, h := f.Size()
	g.Expect(w).To(Equal(1280.0))
	g.Expect(h).To(Equal(720.0))
	for _, p := range f.Particles() {
		g.Expect(p.X).To(BeNumerically(">=", 0))
		g.Expect(p.X).To(BeNumerically("<=", w))
		g.Expect(p.Y).To(BeNumerically(">=", 0))
		g.Expect(p.Y).To(BeNumerically("<=", h))
	}
}

func TestLinkAlphaMonotone(t *testing.T) {
	const maxDist, base = 110.0, 0.18
	prev := math.Inf(1)
	for d := 0.0; d <= 150; d += 0.5 {
		a := LinkAlpha(d, maxDist, base)
		if a > prev {
			t.Fatalf("alpha increased at dist %f: %f > %f", d, a, prev)
		}
		if d >= maxDist && a != 0 {
			t.Fatalf("alpha should be zero at dist %f, got %f", d, a)
		}
		if a < 0 || a > base {
			t.Fatalf("alpha out of range at dist %f: %f", d, a)
		}
		prev = a
	}
	if LinkAlpha(10, 0, base) != 0 {
		t.Error("zero link distance should draw nothing")
	}
}

func TestLinksWithinThreshold(t *testing.T) {
	opts := DefaultOptions()
	f := newField(opts)
	f.Resize(geom.Rect{W: 800, H: 600}, 1)

	for i := 0; i < 30; i++ {
		f.Tick()
	}
	for _, l := range f.Links() {
		if l.Dist >= opts.LinkDistance {
			t.Errorf("link %d-%d at %f exceeds threshold without pointer", l.A, l.B, l.Dist)
		}
		want := LinkAlpha(l.Dist, opts.LinkDistance, opts.LinkAlpha)
		if math.Abs(l.Alpha-want) > 1e-12 {
			t.Errorf("expected alpha %f, got %f", want, l.Alpha)
		}
	}
}

func TestPointerWidensLinks(t *testing.T) {
	g := NewWithT(t)
	f := newField(DefaultOptions())
	f.Resize(geom.Rect{W: 800, H: 600}, 1)
	f.particles = []Particle{
		{X: 300, Y: 300, R: 1, Alpha: 1},
		{X: 430, Y: 300, R: 1, Alpha: 1},
	}

	g.Expect(f.Links()).To(BeEmpty())

	f.PointerMove(365, 300)
	links := f.Links()
	g.Expect(links).To(HaveLen(1))
	g.Expect(links[0].Alpha).To(BeNumerically(">", 0))

	f.PointerMove(365, 560)
	g.Expect(f.Links()).To(BeEmpty())

	f.PointerMove(365, 300)
	f.PointerLeave()
	g.Expect(f.Links()).To(BeEmpty())
}

func TestWallReflection(t *testing.T) {
	f := newField(DefaultOptions())
	f.Resize(geom.Rect{W: 100, H: 100}, 1)
	f.particles = []Particle{
		{X: 99.8, Y: 50, VX: 0.5, VY: 0},
		{X: 50, Y: 0.1, VX: 0, VY: -0.4},
	}

	f.Tick()

	a, b := f.particles[0], f.particles[1]
	if a.X != 100 || a.VX != -0.5 {
		t.Errorf("right wall: expected x=100 vx=-0.5, got x=%f vx=%f", a.X, a.VX)
	}
	if b.Y != 0 || b.VY != 0.4 {
		t.Errorf("top wall: expected y=0 vy=0.4, got y=%f vy=%f", b.Y, b.VY)
	}
}

func TestPointerRepulsion(t *testing.T) {
	g := NewWithT(t)
	opts := DefaultOptions()
	f := newField(opts)
	f.Resize(geom.Rect{W: 800, H: 600}, 1)
	f.particles = []Particle{{X: 400, Y: 300}}

	f.PointerMove(390, 300)
	f.Tick()
	g.Expect(f.particles[0].VX).To(BeNumerically(">", 0))
	g.Expect(f.particles[0].VY).To(BeNumerically("~", 0, 1e-12))

	for i := 0; i < 500; i++ {
		f.PointerMove(f.particles[0].X-5, f.particles[0].Y)
		f.Tick()
		p := f.particles[0]
		g.Expect(math.Hypot(p.VX, p.VY)).To(BeNumerically("<=", opts.MaxSpeed+1e-9))
	}
}

func TestDrawOrder(t *testing.T) {
	g := NewWithT(t)
	f := newField(DefaultOptions())
	f.Resize(geom.Rect{W: 800, H: 600}, 1)

	rec := &recorder{}
	f.Draw(rec)

	g.Expect(rec.clears).To(Equal(1))
	g.Expect(rec.glows).To(Equal(1))
	g.Expect(rec.circles).To(Equal(len(f.Particles())))
	g.Expect(rec.lines).To(Equal(len(f.Links())))
	for _, a := range rec.lineAlphas {
		g.Expect(a).To(BeNumerically("<=", 47))
	}
}

func TestReseedDeterministic(t *testing.T) {
	a := New(DefaultOptions(), rand.New(rand.NewSource(7)))
	b := New(DefaultOptions(), rand.New(rand.NewSource(7)))
	a.Resize(geom.Rect{W: 1024, H: 768}, 1)
	b.Resize(geom.Rect{W: 1024, H: 768}, 1)

	pa, pb := a.Particles(), b.Particles()
	if len(pa) != len(pb) {
		t.Fatalf("counts differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs", i)
		}
	}
}

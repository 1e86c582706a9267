package cloud

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heroviz/internal/geom"
)

var _ = Describe("Drag", func() {
	var c *Cloud

	BeforeEach(func() {
		c = place(800, 600,
			Body{X: 100, Y: 100, VX: 1, VY: -1, R: 30},
			Body{X: 400, Y: 300, VX: -0.5, R: 30},
			Body{X: 110, Y: 100, R: 30},
		)
	})

	It("starts idle", func() {
		Expect(c.Drag().Mode).To(Equal(Idle))
		Expect(c.Drag().Mode.String()).To(Equal("idle"))
	})

	It("captures the topmost body under the pointer and stops it", func() {
		Expect(c.PointerDown(105, 100)).To(BeTrue())

		Expect(c.Drag().Mode).To(Equal(Dragging))
		Expect(c.Drag().Index).To(Equal(2))
		Expect(c.Body(2).VX).To(BeZero())
		Expect(c.Body(2).VY).To(BeZero())
	})

	It("ignores presses that miss every body", func() {
		Expect(c.PointerDown(700, 500)).To(BeFalse())
		Expect(c.Drag().Mode).To(Equal(Idle))
	})

	It("throws the body with the last pointer delta", func() {
		Expect(c.BeginDrag(1, 400, 300)).To(BeTrue())
		c.PointerMove(410, 304)
		c.PointerUp()

		b := c.Body(1)
		Expect(c.Drag().Mode).To(Equal(Idle))
		Expect(b.VX).To(BeNumerically("~", 15, 1e-9))
		Expect(b.VY).To(BeNumerically("~", 6, 1e-9))
		Expect(b.X).To(BeNumerically("~", 410, 1e-9))
		Expect(b.Y).To(BeNumerically("~", 304, 1e-9))

		c.Update()
		Expect(b.X).To(BeNumerically("~", 425, 1e-9))
		Expect(b.Y).To(BeNumerically("~", 310, 1e-9))
	})

	It("keeps the captured body inside the container", func() {
		c.BeginDrag(1, 400, 300)
		c.PointerMove(-50, 900)

		b := c.Body(1)
		Expect(b.X).To(Equal(b.R))
		Expect(b.Y).To(Equal(600 - b.R))
	})

	It("holds the captured body out of integration", func() {
		c.BeginDrag(1, 400, 300)
		c.PointerMove(410, 300)
		x := c.Body(1).X

		c.Update()
		c.Update()

		Expect(c.Body(1).X).To(Equal(x))
		Expect(c.Body(1).VX).To(BeNumerically("~", 15, 1e-9))
	})

	It("treats a release without capture as a no-op", func() {
		before := append([]Body(nil), c.Bodies()...)

		Expect(func() { c.PointerUp() }).NotTo(Panic())
		Expect(c.Drag().Mode).To(Equal(Idle))
		Expect(c.Bodies()).To(Equal(before))
	})

	It("ignores moves while idle", func() {
		before := *c.Body(0)
		c.PointerMove(500, 500)
		Expect(*c.Body(0)).To(Equal(before))
	})

	It("refuses a second capture while dragging", func() {
		c.BeginDrag(1, 400, 300)
		Expect(c.PointerDown(100, 100)).To(BeFalse())
		Expect(c.Drag().Index).To(Equal(1))
	})

	It("rejects out-of-range captures", func() {
		Expect(c.BeginDrag(-1, 0, 0)).To(BeFalse())
		Expect(c.BeginDrag(3, 0, 0)).To(BeFalse())
		Expect(c.Drag().Mode).To(Equal(Idle))
	})

	It("pushes free bodies off the captured one without moving it", func() {
		c.BeginDrag(1, 400, 300)
		other := c.Body(0)
		other.X, other.Y, other.VX, other.VY = 360, 300, 2, 0

		c.Update()

		dragged := c.Body(1)
		Expect(dragged.X).To(Equal(400.0))
		Expect(dragged.Y).To(Equal(300.0))
		Expect(geom.Dist(other.X, other.Y, dragged.X, dragged.Y)).To(BeNumerically(">=", 60-1e-9))
		Expect(other.VX).To(BeNumerically("<", 0))
	})
})

var _ = Describe("Dragging into a pinned body", func() {
	It("gives way instead of overlapping a body stuck in a corner", func() {
		c := place(800, 600,
			Body{X: 40, Y: 40, R: 36},
			Body{X: 200, Y: 300, R: 36},
		)
		free, dragged := c.Body(0), c.Body(1)
		apart := func() float64 { return geom.Dist(free.X, free.Y, dragged.X, dragged.Y) }

		Expect(c.BeginDrag(1, 200, 300)).To(BeTrue())
		for step := 1; step <= 20; step++ {
			k := float64(step) / 20
			c.PointerMove(200-160*k, 300-260*k)
			c.Update()
			Expect(apart()).To(BeNumerically(">=", 72-0.01), "step %d", step)
		}

		for frame := 0; frame < 30; frame++ {
			c.Update()
			Expect(apart()).To(BeNumerically(">=", 72-0.01), "held frame %d", frame)
		}
		Expect(free.X).To(BeNumerically(">=", free.R))
		Expect(free.Y).To(BeNumerically(">=", free.R))

		c.PointerUp()
		c.Update()
		Expect(apart()).To(BeNumerically(">=", 72-0.01))
	})
})

var _ = Describe("Collisions", func() {
	It("conserves momentum for a glancing impact", func() {
		c := place(800, 600,
			Body{X: 300, Y: 300, VX: 2, VY: 0.4, R: 40, Mass: 90},
			Body{X: 355, Y: 320, VX: -1.5, VY: -0.3, R: 30, Mass: 40},
		)
		a, b := c.Body(0), c.Body(1)
		px := a.Mass*a.VX + b.Mass*b.VX
		py := a.Mass*a.VY + b.Mass*b.VY

		c.Update()

		Expect(a.Mass*a.VX + b.Mass*b.VX).To(BeNumerically("~", px, 1e-9))
		Expect(a.Mass*a.VY + b.Mass*b.VY).To(BeNumerically("~", py, 1e-9))
		Expect(geom.Dist(a.X, a.Y, b.X, b.Y)).To(BeNumerically(">=", a.R+b.R-1e-9))
	})

	It("leaves separating bodies' velocities alone", func() {
		c := place(800, 600,
			Body{X: 300, Y: 300, VX: -1, R: 40},
			Body{X: 370, Y: 300, VX: 1, R: 40},
		)

		c.Update()

		Expect(c.Body(0).VX).To(Equal(-1.0))
		Expect(c.Body(1).VX).To(Equal(1.0))
		Expect(geom.Dist(c.Body(0).X, 0, c.Body(1).X, 0)).To(BeNumerically(">=", 80-1e-9))
	})
})

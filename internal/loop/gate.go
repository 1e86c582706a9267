package loop

// Gate keeps a loop running only while its component is visible and motion
// is allowed.
type Gate struct {
	loop          *Loop
	visible       bool
	reducedMotion bool

	// OnResume runs each time the gate reopens, before the loop restarts.
	OnResume func()
	// OnChange observes every open/close transition.
	OnChange func(open bool)
}

// NewGate starts closed: nothing animates until the first visibility signal.
func NewGate(l *Loop) *Gate {
	return &Gate{loop: l}
}

func (g *Gate) SetVisible(v bool) {
	if g.visible == v {
		return
	}
	g.visible = v
	g.apply()
}

func (g *Gate) SetReducedMotion(r bool) {
	if g.reducedMotion == r {
		return
	}
	g.reducedMotion = r
	g.apply()
}

func (g *Gate) Visible() bool       { return g.visible }
func (g *Gate) ReducedMotion() bool { return g.reducedMotion }
func (g *Gate) Open() bool          { return g.visible && !g.reducedMotion }

func (g *Gate) apply() {
	open := g.Open()
	if open == g.loop.Running() {
		return
	}
	if open {
		if g.OnResume != nil {
			g.OnResume()
		}
		g.loop.Start()
	} else {
		g.loop.Stop()
	}
	if g.OnChange != nil {
		g.OnChange(open)
	}
}

package loop

// Loop owns a per-frame step and whether the next frame has been requested.
type Loop struct {
	step    func()
	running bool
	inStep  bool
	frames  uint64
}

func New(step func()) *Loop {
	return &Loop{step: step}
}

// Start requests frames. Starting a running loop is a no-op.
func (l *Loop) Start() { l.running = true }

// Stop cancels the pending frame request.
func (l *Loop) Stop() { l.running = false }

func (l *Loop) Running() bool  { return l.running }
func (l *Loop) Frames() uint64 { return l.frames }

// Frame runs one step if the loop is running and reports whether it did.
// A step that re-enters Frame is ignored.
func (l *Loop) Frame() bool {
	if !l.running || l.inStep || l.step == nil {
		return false
	}
	l.inStep = true
	defer func() { l.inStep = false }()
	l.step()
	l.frames++
	return true
}

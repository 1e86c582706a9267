// Package tui hosts the scene in a terminal with bubbletea. The page
// viewport is drawn on a braille canvas, the mouse acts as the pointer and
// a side panel shows loop state and a kinetic-energy plot.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heroviz/internal/config"
	"github.com/san-kum/heroviz/internal/metrics"
	"github.com/san-kum/heroviz/internal/page"
	"github.com/san-kum/heroviz/internal/scene"
)

const (
	// cssPerDot is how many CSS pixels one braille dot stands for.
	cssPerDot       = 6.0
	wheelStep       = 48.0
	historyCapacity = 120
	labelLetters    = 3
	minCols         = 20
	minRows         = 8
)

type TickMsg time.Time

type Model struct {
	scene    *scene.Scene
	logger   *log.Logger
	canvas   *Canvas
	theme    Theme
	st       styles
	tps      int
	energy   []float64
	showHelp bool
}

func NewModel(cfg *config.Config, logger *log.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tps := cfg.Loop.TPS
	if tps <= 0 {
		tps = config.DefaultTPS
	}
	m := Model{
		scene:  scene.New(cfg, logger),
		logger: logger,
		theme:  ThemeNight,
		st:     newStyles(ThemeNight),
		tps:    tps,
		energy: make([]float64, 0, historyCapacity),
	}
	m.resize(80+statsWidth, 24, time.Now())
	return m
}

func (m Model) Scene() *scene.Scene { return m.scene }
func (m Model) Canvas() *Canvas     { return m.canvas }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.tps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height, time.Now())
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.scene.Page().Current() == page.Hero {
				m.scene.Show(page.Skills)
			} else {
				m.scene.Show(page.Hero)
			}
		case "m":
			m.logger.Info("reduced motion", "on", m.scene.ToggleReducedMotion())
		case "r":
			m.scene.Reinit()
			m.energy = m.energy[:0]
		case "t":
			m.theme = nextTheme(m.theme.Name)
			m.st = newStyles(m.theme)
		case "up", "k":
			m.scene.Scroll(-wheelStep)
		case "down", "j":
			m.scene.Scroll(wheelStep)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		m.scene.Frame(time.Time(msg))
		m.energy = append(m.energy, metrics.KineticEnergy(m.scene.Cloud().Bodies()))
		if len(m.energy) > historyCapacity {
			m.energy = m.energy[1:]
		}
		return m, m.tick()
	}
	return m, nil
}

// resize fits the canvas to the terminal, leaving room for the stats panel.
func (m *Model) resize(w, h int, now time.Time) {
	cols := max(w-statsWidth-2*canvasPadX-1, minCols)
	rows := max(h-2*canvasPadY, minRows)
	if m.canvas != nil && m.canvas.Width == cols && m.canvas.Height == rows {
		return
	}
	m.canvas = NewCanvas(cols, rows)
	dw, dh := m.canvas.Dots()
	m.scene.Resize(float64(dw)*cssPerDot, float64(dh)*cssPerDot, 1, now)
}

// toCSS maps a terminal cell to the CSS-pixel centre of that cell.
func (m Model) toCSS(x, y int) (cx, cy float64, inside bool) {
	col, row := x-canvasPadX, y-canvasPadY
	inside = col >= 0 && row >= 0 && col < m.canvas.Width && row < m.canvas.Height
	return (float64(col)*2 + 1) * cssPerDot, (float64(row)*4 + 2) * cssPerDot, inside
}

func (m Model) mouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scene.Scroll(-wheelStep)
		return
	case tea.MouseButtonWheelDown:
		m.scene.Scroll(wheelStep)
		return
	}

	x, y, inside := m.toCSS(msg.X, msg.Y)
	if !inside {
		m.scene.PointerLeave()
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.scene.PointerMove(x, y)
		if msg.Button == tea.MouseButtonLeft {
			m.scene.PointerDown(x, y)
		}
	case tea.MouseActionRelease:
		m.scene.PointerUp()
	case tea.MouseActionMotion:
		m.scene.PointerMove(x, y)
	}
}

// render paints the visible part of both sections onto the canvas.
func (m Model) render() {
	m.canvas.Clear()
	p := m.scene.Page()

	hero := p.Rect(page.Hero)
	f := m.scene.Field()
	f.Draw(canvasSurface{c: m.canvas, p: projection{
		ox: hero.X / cssPerDot,
		oy: hero.Y / cssPerDot,
		k:  1 / (cssPerDot * f.DPR()),
	}})

	skills := p.Rect(page.Skills)
	m.scene.Cloud().Draw(canvasStage{c: m.canvas, letters: labelLetters, p: projection{
		ox: skills.X / cssPerDot,
		oy: skills.Y / cssPerDot,
		k:  1 / cssPerDot,
	}})
}

func (m Model) status(running bool) string {
	if running {
		return m.st.running.Render("RUNNING")
	}
	return m.st.paused.Render("PAUSED")
}

func (m Model) row(label, value string) string {
	return m.st.label.Render(label) + m.st.value.Render(value) + "\n"
}

func (m Model) View() string {
	m.render()
	canvasView := m.st.canvas.Render(strings.TrimSuffix(m.canvas.String(), "\n"))

	s := m.scene
	var b strings.Builder
	b.WriteString(m.st.header.Render("HEROVIZ") + "\n")
	b.WriteString(m.row("Section", s.Page().Current().String()))
	b.WriteString(m.row("Field", m.status(s.FieldRunning())))
	b.WriteString(m.row("Cloud", m.status(s.CloudRunning())))
	b.WriteString(m.row("Motion", motion(s.ReducedMotion())))
	b.WriteString("\n")
	b.WriteString(m.row("Particles", fmt.Sprintf("%d", len(s.Field().Particles()))))
	b.WriteString(m.row("Links", fmt.Sprintf("%d", len(s.Field().Links()))))
	b.WriteString(m.row("Bodies", fmt.Sprintf("%d", s.Cloud().Len())))
	b.WriteString(m.row("Drag", s.Cloud().Drag().Mode.String()))
	b.WriteString(m.row("Frame", fmt.Sprintf("%d", s.Frames())))

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("Kinetic energy"))
		b.WriteString(m.st.graph.Render(chart) + "\n")
	}
	b.WriteString(m.st.help.Render("TAB:Section M:Motion R:Reinit\nT:Theme ↑↓:Scroll ?:Help Q:Quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.stats.Render(b.String()))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func motion(reduced bool) string {
	if reduced {
		return "reduced"
	}
	return "full"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD AND MOUSE          ║
╠══════════════════════════════════════╣
║  Tab      - Switch section           ║
║  M        - Toggle reduced motion    ║
║  R        - Rebuild both effects     ║
║  T        - Cycle themes             ║
║  Up/Down  - Scroll the page          ║
║  Mouse    - Repel particles          ║
║  Drag     - Throw a skill badge      ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the terminal UI and blocks until the user quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(cfg, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

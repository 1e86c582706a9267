// Package render hosts the scene in a desktop window using ebiten. The
// particle field paints into an offscreen image kept at the field's
// backing-store resolution; bodies are drawn as cached badge sprites with
// their squash transform applied at draw time.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/heroviz/internal/config"
	"github.com/san-kum/heroviz/internal/loop"
	"github.com/san-kum/heroviz/internal/page"
	"github.com/san-kum/heroviz/internal/scene"
)

const hudRefresh = 250 * time.Millisecond

var (
	background   = color.NRGBA{R: 0x0d, G: 0x11, B: 0x17, A: 0xff}
	skillsShade  = color.NRGBA{R: 0x16, G: 0x1b, B: 0x22, A: 0xff}
	headingColor = color.NRGBA{R: 0x8b, G: 0x94, B: 0x9e, A: 0xff}
)

type Options struct {
	Logger  *log.Logger
	Watcher *config.Watcher
	HUD     bool
}

type Game struct {
	scene   *scene.Scene
	logger  *log.Logger
	watcher *config.Watcher
	input   pointerInput
	surface *imageSurface
	stage   *spriteStage

	outW, outH float64
	dpr        float64
	sizedW     float64
	sizedH     float64
	sizedDPR   float64

	hud      bool
	hudEvery *loop.Interval
	hudText  string
	quit     bool
}

func NewGame(cfg *config.Config, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		scene:    scene.New(cfg, logger),
		logger:   logger,
		watcher:  opts.Watcher,
		stage:    newSpriteStage(),
		dpr:      1,
		hud:      opts.HUD,
		hudEvery: loop.NewInterval(hudRefresh),
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	now := time.Now()

	g.pollConfig()
	if g.outW > 0 && (g.outW != g.sizedW || g.outH != g.sizedH || g.dpr != g.sizedDPR) {
		g.scene.Resize(g.outW, g.outH, g.dpr, now)
		g.sizedW, g.sizedH, g.sizedDPR = g.outW, g.outH, g.dpr
		g.ensureSurface()
	}
	g.pollKeys()
	g.input.poll(g.scene, g.outW, g.outH, g.dpr)

	g.scene.Frame(now)
	g.ensureSurface()
	g.stage.truncate(g.scene.Cloud().Len())
	if g.hud && g.hudEvery.Due(now) {
		g.hudText = g.stats()
	}
	return nil
}

func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	cfg, err := g.watcher.Poll()
	if err != nil {
		g.logger.Error("config reload failed", "path", g.watcher.Path(), "err", err)
		return
	}
	if cfg != nil {
		g.logger.Info("config reloaded", "path", g.watcher.Path())
		g.scene.ApplyConfig(cfg)
		g.ensureSurface()
	}
}

func (g *Game) pollKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.quit = true
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.logger.Info("reduced motion", "on", g.scene.ToggleReducedMotion())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.scene.Reinit()
		g.ensureSurface()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hud = !g.hud
		g.hudEvery.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if g.scene.Page().Current() == page.Hero {
			g.scene.Show(page.Skills)
		} else {
			g.scene.Show(page.Hero)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.scene.Show(page.Skills)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.scene.Show(page.Hero)
	}
}

// ensureSurface keeps the offscreen field image at the field's current
// backing-store size. A replaced image gets the current frame painted at once.
func (g *Game) ensureSurface() {
	fw, fh := g.scene.Field().Size()
	w, h := int(fw), int(fh)
	if g.surface != nil && g.surface.fits(w, h) {
		return
	}
	if g.surface != nil {
		g.surface.img.Deallocate()
	}
	g.surface = newImageSurface(w, h)
	g.scene.Attach(g.surface, g.stage)
	g.scene.Field().Draw(g.surface)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	p := g.scene.Page()

	if g.surface != nil {
		hero := p.Rect(page.Hero)
		k := g.dpr / g.scene.Field().DPR()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(k, k)
		op.GeoM.Translate(hero.X*g.dpr, hero.Y*g.dpr)
		screen.DrawImage(g.surface.img, op)
		g.heading(screen, "hero", hero.X, hero.Y)
	}

	skills := p.Rect(page.Skills)
	vector.DrawFilledRect(screen, float32(skills.X*g.dpr), float32(skills.Y*g.dpr),
		float32(skills.W*g.dpr), float32(skills.H*g.dpr), skillsShade, false)
	g.heading(screen, "skills", skills.X, skills.Y)
	g.stage.Draw(screen, skills.X, skills.Y, g.dpr)

	if g.hud {
		g.drawHUD(screen)
	}
}

func (g *Game) heading(dst *ebiten.Image, label string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(g.dpr, g.dpr)
	op.GeoM.Translate((x+12)*g.dpr, (y+12)*g.dpr)
	op.ColorScale.ScaleWithColor(headingColor)
	text.Draw(dst, label, badgeFace, op)
}

// stats is the HUD text. It walks every link, so it is refreshed on an
// interval rather than every frame.
func (g *Game) stats() string {
	s := g.scene
	return fmt.Sprintf("fps %.0f  tps %.0f\nparticles %d  links %d\nbodies %d  drag %s\nfield %s  cloud %s\nreduced motion %v",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		len(s.Field().Particles()), len(s.Field().Links()),
		s.Cloud().Len(), s.Cloud().Drag().Mode,
		state(s.FieldRunning()), state(s.CloudRunning()),
		s.ReducedMotion())
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(g.dpr, g.dpr)
	op.GeoM.Translate(g.outW*g.dpr-200*g.dpr, 12*g.dpr)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(badgeText)
	text.Draw(dst, g.hudText, badgeFace, op)
}

func state(running bool) string {
	if running {
		return "running"
	}
	return "paused"
}

// LayoutF makes the screen one pixel per device pixel; the scene works in
// CSS pixels and the device scale factor maps between the two.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.dpr = ebiten.Monitor().DeviceScaleFactor()
	if g.dpr <= 0 {
		g.dpr = 1
	}
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth * g.dpr, outsideHeight * g.dpr
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("Layout called; use LayoutF instead")
}

// Run opens the window and blocks until it is closed or the user quits.
func Run(cfg *config.Config, opts Options) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Loop.TPS > 0 {
		ebiten.SetTPS(cfg.Loop.TPS)
	}

	if err := ebiten.RunGame(NewGame(cfg, opts)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

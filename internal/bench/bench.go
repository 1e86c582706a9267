// Package bench runs both effects headlessly for a fixed number of frames
// and records metrics and per-frame samples. Both effects step every frame
// regardless of visibility.
package bench

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/heroviz/internal/cloud"
	"github.com/san-kum/heroviz/internal/config"
	"github.com/san-kum/heroviz/internal/field"
	"github.com/san-kum/heroviz/internal/geom"
	"github.com/san-kum/heroviz/internal/metrics"
	"github.com/san-kum/heroviz/internal/telemetry"
)

type Config struct {
	Frames      int
	Width       float64
	Height      float64
	DPR         float64
	SampleEvery int
	Seed        int64

	// Sweep moves a pointer in a circle over the field so repulsion and
	// pointer-boosted links are exercised.
	Sweep bool
}

// Observer sees every frame after it has been stepped.
type Observer interface {
	OnFrame(snap metrics.Snapshot)
}

type ObserverFunc func(snap metrics.Snapshot)

func (f ObserverFunc) OnFrame(snap metrics.Snapshot) { f(snap) }

type Result struct {
	Frames    int
	Particles int
	Bodies    int
	Samples   []telemetry.Sample
	Metrics   map[string]float64
	Elapsed   time.Duration

	// Field and Cloud hold the final state of the run.
	Field *field.Field
	Cloud *cloud.Cloud
}

// Run converts the result into a telemetry run.
func (r *Result) Run(meta telemetry.RunMetadata) telemetry.Run {
	meta.Frames = r.Frames
	meta.Particles = r.Particles
	meta.Bodies = r.Bodies
	meta.Metrics = r.Metrics
	return telemetry.Run{Meta: meta, Samples: r.Samples}
}

type Runner struct {
	cfg       *config.Config
	metrics   []metrics.Metric
	observers []Observer
}

// New returns a runner over cfg with the default metric set.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, metrics: metrics.Default()}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, bc Config) (*Result, error) {
	if err := validate(bc); err != nil {
		return nil, err
	}
	if bc.DPR <= 0 {
		bc.DPR = 1
	}
	if bc.SampleEvery <= 0 {
		bc.SampleEvery = 1
	}

	rng := rand.New(rand.NewSource(bc.Seed))
	rect := geom.Rect{W: bc.Width, H: bc.Height}
	f := field.New(r.cfg.FieldOptions(), rng)
	f.Resize(rect, bc.DPR)
	c := cloud.New(r.cfg.Bodies.Skills, r.cfg.CloudOptions(), rng)
	c.Init(rect)

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Particles: len(f.Particles()),
		Bodies:    c.Len(),
		Samples:   make([]telemetry.Sample, 0, bc.Frames/bc.SampleEvery+1),
		Field:     f,
		Cloud:     c,
	}
	start := time.Now()

	for i := 0; i < bc.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		if bc.Sweep {
			x, y := sweep(i, bc.Width, bc.Height)
			f.PointerMove(x, y)
		}
		f.Tick()
		c.Update()

		snap := metrics.Snapshot{
			Frame:     i,
			Bodies:    c.Bodies(),
			Particles: f.Particles(),
			Links:     len(f.Links()),
		}
		for _, m := range r.metrics {
			m.Observe(snap)
		}
		for _, o := range r.observers {
			o.OnFrame(snap)
		}
		if i%bc.SampleEvery == 0 {
			result.Samples = append(result.Samples, telemetry.SampleOf(snap))
		}
		result.Frames++
	}

	result.Elapsed = time.Since(start)
	result.Metrics = metrics.Values(r.metrics)
	return result, nil
}

func validate(bc Config) error {
	if bc.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", config.ErrInvalidConfig, bc.Frames)
	}
	if !(bc.Width > 0) || !(bc.Height > 0) {
		return fmt.Errorf("%w: size must be positive, got %gx%g", config.ErrInvalidConfig, bc.Width, bc.Height)
	}
	return nil
}

// sweep is a pointer circling the centre once every 240 frames.
func sweep(frame int, w, h float64) (float64, float64) {
	a := 2 * math.Pi * float64(frame%240) / 240
	r := math.Min(w, h) / 3
	return w/2 + r*math.Cos(a), h/2 + r*math.Sin(a)
}

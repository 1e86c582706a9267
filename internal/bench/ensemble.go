package bench

import (
	"context"
	"sync"

	"github.com/san-kum/heroviz/internal/config"
)

// Ensemble repeats a bench over consecutive seeds, one goroutine per run.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, bc Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := bc
			cfgCopy.Seed = e.seedStart + int64(idx)
			results[idx], errs[idx] = New(e.cfg).Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Mean averages each metric across results.
func Mean(results []*Result) map[string]float64 {
	out := make(map[string]float64)
	if len(results) == 0 {
		return out
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(results))
	}
	return out
}

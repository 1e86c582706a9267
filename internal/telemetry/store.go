// Package telemetry persists headless bench runs: a metadata.json with the
// run parameters and summary metrics, and a samples.csv with one row per
// sampled frame.
package telemetry

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/heroviz/internal/metrics"
)

var ErrRunNotFound = errors.New("heroviz: run not found")

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var samplesHeader = []string{"frame", "energy", "momentum_x", "momentum_y", "overlap", "links"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Particles int                `json:"particles"`
	Bodies    int                `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Sample is one frame of a run.
type Sample struct {
	Frame     int
	Energy    float64
	MomentumX float64
	MomentumY float64
	Overlap   float64
	Links     int
}

// SampleOf reduces a metrics snapshot to a sample row.
func SampleOf(snap metrics.Snapshot) Sample {
	px, py := metrics.TotalMomentum(snap.Bodies)
	return Sample{
		Frame:     snap.Frame,
		Energy:    metrics.KineticEnergy(snap.Bodies),
		MomentumX: px,
		MomentumY: py,
		Overlap:   metrics.MaxOverlap(snap.Bodies),
		Links:     snap.Links,
	}
}

type Run struct {
	Meta    RunMetadata
	Samples []Sample
}

// Save writes the run under a fresh ID and returns that ID. A zero
// Timestamp is set to now.
func (s *Store) Save(run Run) (string, error) {
	meta := run.Meta
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), run.Samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSamples(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(samplesHeader); err != nil {
		return err
	}
	for _, sm := range samples {
		row := []string{
			strconv.Itoa(sm.Frame),
			formatFloat(sm.Energy),
			formatFloat(sm.MomentumX),
			formatFloat(sm.MomentumY),
			formatFloat(sm.Overlap),
			strconv.Itoa(sm.Links),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns the metadata of every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("telemetry: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads a run's samples back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		sm, ok := parseSample(record)
		if !ok {
			continue
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func parseSample(record []string) (Sample, bool) {
	if len(record) != len(samplesHeader) {
		return Sample{}, false
	}
	var (
		sm  Sample
		err error
	)
	if sm.Frame, err = strconv.Atoi(record[0]); err != nil {
		return Sample{}, false
	}
	floats := []*float64{&sm.Energy, &sm.MomentumX, &sm.MomentumY, &sm.Overlap}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(record[i+1], 64); err != nil {
			return Sample{}, false
		}
	}
	if sm.Links, err = strconv.Atoi(record[5]); err != nil {
		return Sample{}, false
	}
	return sm, true
}

// Energies extracts the energy column, for plotting.
func Energies(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, sm := range samples {
		out[i] = sm.Energy
	}
	return out
}

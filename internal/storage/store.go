package storage

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

	"github.com/google/uuid"

	"github.com/san-kum/slidercrank/internal/kinematics"
	"github.com/san-kum/slidercrank/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	runPrefix    = "slidercrank_"
)

var ErrRunNotFound = errors.New("storage: run not found")

var sampleHeader = []string{"time", "angle", "position", "velocity", "acceleration"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Params     kinematics.Params  `json:"params"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	StartAngle float64            `json:"start_angle"`
	Samples    int                `json:"samples"`
	Undefined  int                `json:"undefined"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run under a fresh directory and returns its ID.
func (s *Store) Save(p kinematics.Params, cfg sim.Config, result *sim.Result) (string, error) {
	runID := runPrefix + uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Params:     p,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		StartAngle: cfg.StartAngle,
		Samples:    len(result.Samples),
		Undefined:  result.Undefined,
		Metrics:    result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result); err != nil {
		return "", err
	}

	return runID, nil
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

func writeSamples(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}

	for i, smp := range result.Samples {
		t := 0.0
		if i < len(result.Times) {
			t = result.Times[i]
		}
		row := []string{
			formatFloat(t),
			formatFloat(smp.CrankAngle),
			formatFloat(smp.Position),
			formatFloat(smp.Velocity),
			formatFloat(smp.Acceleration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// formatFloat writes the shortest exact representation, so values read back
// by LoadSamples match what was saved. Undefined values are written as NaN.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
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
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}

	return &meta, nil
}

// LoadSamples reads back the samples and their times. NaN cells come back as
// kinematics.Undefined.
func (s *Store) LoadSamples(runID string) ([]kinematics.Sample, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []kinematics.Sample{}, []float64{}, nil
	}

	samples := make([]kinematics.Sample, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)

	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: %s row %d column %s: %w", runID, i+1, sampleHeader[j], err)
			}
			vals[j] = v
		}

		times = append(times, vals[0])
		samples = append(samples, kinematics.Sample{
			CrankAngle:   vals[1],
			Position:     vals[2],
			Velocity:     vals[3],
			Acceleration: vals[4],
		})
	}

	return samples, times, nil
}

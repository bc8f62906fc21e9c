package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

type CurveExport struct {
	Params kinematics.Params       `json:"params"`
	Valid  bool                    `json:"valid"`
	Reason string                  `json:"reason,omitempty"`
	Points []kinematics.CurvePoint `json:"points"`
}

// ExportCurveCSV writes one row per degree. An empty curve produces only the
// header.
func ExportCurveCSV(w io.Writer, c kinematics.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"angle", "position", "velocity", "acceleration"}); err != nil {
		return err
	}

	for _, pt := range c {
		row := []string{
			strconv.Itoa(pt.AngleDegrees),
			formatFloat(pt.Position),
			formatFloat(pt.Velocity),
			formatFloat(pt.Acceleration),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportCurveJSON(w io.Writer, p kinematics.Params, c kinematics.Curve) error {
	v := kinematics.Validate(p)
	data := CurveExport{
		Params: p,
		Valid:  v.Valid,
		Reason: v.Reason,
		Points: make([]kinematics.CurvePoint, len(c)),
	}
	copy(data.Points, c)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// SampleRecord is a stored sample in JSON form. Undefined values are null.
type SampleRecord struct {
	Time         float64  `json:"time"`
	Angle        float64  `json:"angle"`
	Position     *float64 `json:"position"`
	Velocity     *float64 `json:"velocity"`
	Acceleration *float64 `json:"acceleration"`
}

type RunExport struct {
	RunMetadata
	Records []SampleRecord `json:"records"`
}

func nullable(v float64) *float64 {
	if kinematics.IsUndefined(v) {
		return nil
	}
	return &v
}

// ExportRunCSV writes the samples of a stored run in the samples.csv layout.
func (s *Store) ExportRunCSV(w io.Writer, runID string) error {
	samples, times, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for i, smp := range samples {
		row := []string{
			formatFloat(times[i]),
			formatFloat(smp.CrankAngle),
			formatFloat(smp.Position),
			formatFloat(smp.Velocity),
			formatFloat(smp.Acceleration),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportRunJSON writes the metadata and samples of a stored run.
func (s *Store) ExportRunJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, times, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := RunExport{
		RunMetadata: *meta,
		Records:     make([]SampleRecord, len(samples)),
	}
	for i, smp := range samples {
		data.Records[i] = SampleRecord{
			Time:         times[i],
			Angle:        smp.CrankAngle,
			Position:     nullable(smp.Position),
			Velocity:     nullable(smp.Velocity),
			Acceleration: nullable(smp.Acceleration),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

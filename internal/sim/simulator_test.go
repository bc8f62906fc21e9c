package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

var balanced = kinematics.Params{CrankRadius: 50, RodLength: 150, CrankSpeed: 60}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(s kinematics.Sample, time float64) {
	t.count++
	t.sum += s.Position
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type recorder struct {
	times []float64
}

func (r *recorder) OnSample(s kinematics.Sample, t float64) { r.times = append(r.times, t) }

func TestSimulatorRun(t *testing.T) {
	sim := New(balanced)

	result, err := sim.Run(context.Background(), Config{Dt: 0.25, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Samples) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(result.Samples))
	}
	if len(result.Times) != 5 {
		t.Errorf("expected 5 times, got %d", len(result.Times))
	}
	if result.Undefined != 0 {
		t.Errorf("expected no undefined samples, got %d", result.Undefined)
	}

	// 60 rpm, quarter-second steps: 0, 90, 180, 270, 360 degrees.
	want := []float64{200, math.Sqrt(20000), 100, math.Sqrt(20000), 200}
	for i, s := range result.Samples {
		if math.Abs(s.Position-want[i]) > 1e-6 {
			t.Errorf("sample %d: position %v, want %v", i, s.Position, want[i])
		}
	}
}

func TestSimulatorStartAngle(t *testing.T) {
	sim := New(balanced)
	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 0.1, StartAngle: math.Pi})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(result.Samples[0].Position-100) > 1e-9 {
		t.Errorf("expected BDC position 100, got %v", result.Samples[0].Position)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(balanced)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorInfeasibleParams(t *testing.T) {
	sim := New(kinematics.Params{CrankRadius: 80, RodLength: 60, CrankSpeed: 60})

	result, err := sim.Run(context.Background(), Config{Dt: 0.05, Duration: 1.0})
	if err != nil {
		t.Fatalf("infeasible params must not fail the run: %v", err)
	}
	if result.Undefined == 0 {
		t.Error("expected undefined samples")
	}
	if result.Undefined == len(result.Samples) {
		t.Error("samples near dead centre should still be defined")
	}
}

func TestSimulatorMetricsAndObservers(t *testing.T) {
	sim := New(balanced)

	metric := &testMetric{}
	rec := &recorder{}
	sim.AddMetric(metric)
	sim.AddObserver(rec)

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != len(result.Samples) {
		t.Errorf("expected %d observations, got %d", len(result.Samples), metric.count)
	}
	if len(rec.times) != len(result.Samples) {
		t.Errorf("observer saw %d samples, want %d", len(rec.times), len(result.Samples))
	}
}

func TestSimulatorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(balanced).Run(ctx, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunWithCallback(t *testing.T) {
	sim := New(balanced)

	calls := 0
	err := sim.RunWithCallback(context.Background(), Config{Dt: 0.1, Duration: 10}, func(s kinematics.Sample, c Clock) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("expected callback to stop after 3 calls, got %d", calls)
	}
}

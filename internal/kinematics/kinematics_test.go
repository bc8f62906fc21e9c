package kinematics

import (
	"errors"
	"math"
	"strings"
	"testing"
)

var balanced = Params{CrankRadius: 50, RodLength: 150, CrankSpeed: 150}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		valid  bool
		reason string
	}{
		{"balanced", balanced, true, ""},
		{"zero radius", Params{CrankRadius: 0, RodLength: 150}, false, "crank radius"},
		{"negative radius", Params{CrankRadius: -5, RodLength: 150}, false, "crank radius"},
		{"zero rod", Params{CrankRadius: 50, RodLength: 0}, false, "connecting rod length must be greater than 0"},
		{"rod equals radius", Params{CrankRadius: 50, RodLength: 50}, false, "greater than crank radius"},
		{"rod shorter", Params{CrankRadius: 80, RodLength: 60}, false, "greater than crank radius"},
		{"nan radius", Params{CrankRadius: math.NaN(), RodLength: 60}, false, "crank radius"},
		{"nan rod", Params{CrankRadius: 50, RodLength: math.NaN()}, false, "connecting rod length"},
		{"infinite rod", Params{CrankRadius: 50, RodLength: math.Inf(1)}, false, "finite"},
		{"infinite speed", Params{CrankRadius: 50, RodLength: 150, CrankSpeed: math.Inf(-1)}, false, "crank speed"},
		{"infinite radius", Params{CrankRadius: math.Inf(1), RodLength: math.Inf(1)}, false, "finite"},
		{"negative speed is fine", Params{CrankRadius: 10, RodLength: 40, CrankSpeed: -100}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.params)
			if got.Valid != tt.valid {
				t.Fatalf("Validate(%v).Valid = %v, want %v", tt.params, got.Valid, tt.valid)
			}
			if tt.valid && got.Reason != "" {
				t.Errorf("expected empty reason, got %q", got.Reason)
			}
			if !strings.Contains(got.Reason, tt.reason) {
				t.Errorf("reason %q does not mention %q", got.Reason, tt.reason)
			}
		})
	}
}

func TestPositionScenarios(t *testing.T) {
	tests := []struct {
		angle    float64
		expected float64
	}{
		{0, 200},
		{math.Pi / 2, math.Sqrt(20000)},
		{math.Pi, 100},
	}

	for _, tt := range tests {
		x, err := Position(tt.angle, 50, 150)
		if err != nil {
			t.Fatalf("Position(%v): %v", tt.angle, err)
		}
		if math.Abs(x-tt.expected) > 1e-9 {
			t.Errorf("Position(%v) = %v, want %v", tt.angle, x, tt.expected)
		}
	}
}

func TestAngularSpeed(t *testing.T) {
	if got := AngularSpeed(150); math.Abs(got-5*math.Pi) > 1e-12 {
		t.Errorf("AngularSpeed(150) = %v, want %v", got, 5*math.Pi)
	}
	if got := AngularSpeed(-60); math.Abs(got+2*math.Pi) > 1e-12 {
		t.Errorf("AngularSpeed(-60) = %v, want %v", got, -2*math.Pi)
	}
}

func TestVelocityAtDeadCentre(t *testing.T) {
	for _, angle := range []float64{0, math.Pi} {
		v, err := Velocity(angle, 50, 150, 150)
		if err != nil {
			t.Fatalf("Velocity(%v): %v", angle, err)
		}
		if math.Abs(v) > 1e-9 {
			t.Errorf("Velocity(%v) = %v, want 0", angle, v)
		}
	}
}

func TestVelocityMatchesPositionDerivative(t *testing.T) {
	const h = 1e-6
	omega := AngularSpeed(balanced.CrankSpeed)

	for deg := 5; deg < 360; deg += 25 {
		theta := Radians(deg)
		x1, _ := Position(theta-h, 50, 150)
		x2, _ := Position(theta+h, 50, 150)
		want := (x2 - x1) / (2 * h) * omega

		got, err := Velocity(theta, 50, 150, 150)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-want) > 1e-3*math.Max(1, math.Abs(want)) {
			t.Errorf("deg %d: Velocity = %v, numeric derivative = %v", deg, got, want)
		}
	}
}

func TestAccelerationMatchesVelocityDerivative(t *testing.T) {
	const h = 1e-6
	omega := AngularSpeed(balanced.CrankSpeed)

	for deg := 0; deg <= 360; deg += 30 {
		theta := Radians(deg)
		v1, _ := Velocity(theta-h, 50, 150, 150)
		v2, _ := Velocity(theta+h, 50, 150, 150)
		want := (v2 - v1) / (2 * h) * omega

		got, err := Acceleration(theta, 50, 150, 150)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-want) > 1e-3*math.Max(1, math.Abs(want)) {
			t.Errorf("deg %d: Acceleration = %v, numeric derivative = %v", deg, got, want)
		}
	}
}

func TestAccelerationPeaksAtTopDeadCentre(t *testing.T) {
	a, err := Acceleration(0, 50, 150, 150)
	if err != nil {
		t.Fatal(err)
	}
	omega := 5 * math.Pi
	want := -(50 + 50.0*50/150) * omega * omega
	if math.Abs(a-want) > 1e-6 {
		t.Errorf("Acceleration(0) = %v, want %v", a, want)
	}

	c := GenerateCurve(balanced)
	for _, p := range c {
		if math.Abs(p.Acceleration) > math.Abs(a)+1e-9 {
			t.Errorf("deg %d: |a| = %v exceeds dead-centre peak %v", p.AngleDegrees, math.Abs(p.Acceleration), math.Abs(a))
		}
	}
}

func TestNegativeSpeedReversesVelocity(t *testing.T) {
	theta := Radians(60)
	fwd, _ := Velocity(theta, 50, 150, 150)
	rev, _ := Velocity(theta, 50, 150, -150)
	if math.Abs(fwd+rev) > 1e-9 {
		t.Errorf("expected reversed velocity, got %v and %v", fwd, rev)
	}

	afwd, _ := Acceleration(theta, 50, 150, 150)
	arev, _ := Acceleration(theta, 50, 150, -150)
	if math.Abs(afwd-arev) > 1e-9 {
		t.Errorf("acceleration should not depend on direction: %v vs %v", afwd, arev)
	}
}

func TestInfeasibleGeometry(t *testing.T) {
	_, err := Position(math.Pi/2, 80, 60)
	if err == nil {
		t.Fatal("expected error for rod shorter than crank")
	}
	if !errors.Is(err, ErrInfeasibleGeometry) {
		t.Errorf("expected ErrInfeasibleGeometry, got %v", err)
	}

	var ge *GeometryError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GeometryError, got %T", err)
	}
	if ge.CrankRadius != 80 || ge.RodLength != 60 {
		t.Errorf("unexpected error fields: %+v", ge)
	}

	// Short rod is still reachable near the dead centres.
	if _, err := Position(0, 80, 60); err != nil {
		t.Errorf("Position at θ=0 should be feasible: %v", err)
	}

	if _, err := Velocity(math.Pi/2, 80, 60, 100); !errors.Is(err, ErrInfeasibleGeometry) {
		t.Errorf("Velocity: expected ErrInfeasibleGeometry, got %v", err)
	}
	if _, err := Acceleration(math.Pi/2, 80, 60, 100); !errors.Is(err, ErrInfeasibleGeometry) {
		t.Errorf("Acceleration: expected ErrInfeasibleGeometry, got %v", err)
	}
}

func TestDegenerateMechanism(t *testing.T) {
	p := Params{CrankRadius: 50, RodLength: 50, CrankSpeed: 150}

	v := Validate(p)
	if v.Valid {
		t.Fatal("r == l must be rejected")
	}
	if !strings.Contains(v.Reason, "crank radius") || !strings.Contains(v.Reason, "rod length") {
		t.Errorf("reason should mention the rod/crank relation: %q", v.Reason)
	}

	s := EvaluateState(math.Pi/2, p)
	if s.CrankAngle != math.Pi/2 {
		t.Errorf("crank angle changed: %v", s.CrankAngle)
	}
	if !IsUndefined(s.Position) || !IsUndefined(s.Velocity) || !IsUndefined(s.Acceleration) {
		t.Errorf("expected undefined motion, got %+v", s)
	}
	if s.Defined() {
		t.Error("Defined() should be false")
	}

	if c := GenerateCurve(p); len(c) != 0 {
		t.Errorf("expected empty curve, got %d points", len(c))
	}
}

func TestEvaluateStateKeepsUnwrappedAngle(t *testing.T) {
	angle := 7 * math.Pi
	s := EvaluateState(angle, balanced)
	if s.CrankAngle != angle {
		t.Errorf("CrankAngle = %v, want %v", s.CrankAngle, angle)
	}
	ref := EvaluateState(math.Pi, balanced)
	if math.Abs(s.Position-ref.Position) > 1e-9 {
		t.Errorf("position at 7π = %v, at π = %v", s.Position, ref.Position)
	}
}

func TestGenerateCurve(t *testing.T) {
	c := GenerateCurve(balanced)
	if len(c) != CurvePoints {
		t.Fatalf("expected %d points, got %d", CurvePoints, len(c))
	}
	for i, p := range c {
		if p.AngleDegrees != i {
			t.Fatalf("point %d has angle %d", i, p.AngleDegrees)
		}
	}
	if math.Abs(c[0].Position-c[360].Position) > 1e-9 {
		t.Errorf("curve does not close: %v vs %v", c[0].Position, c[360].Position)
	}

	for _, deg := range []int{0, 45, 90, 181, 300, 360} {
		s := EvaluateState(Radians(deg), balanced)
		p := c[deg]
		if p.Position != s.Position || p.Velocity != s.Velocity || p.Acceleration != s.Acceleration {
			t.Errorf("deg %d: curve %+v differs from state %+v", deg, p, s)
		}
	}
}

func TestGenerateCurvePartiallyInfeasible(t *testing.T) {
	// Feasible near 0°, infeasible near 90°: the whole curve is dropped.
	c := GenerateCurve(Params{CrankRadius: 100, RodLength: 90, CrankSpeed: 60})
	if c != nil {
		t.Errorf("expected nil curve, got %d points", len(c))
	}
	if !c.Empty() {
		t.Error("Empty() should be true")
	}
}

func TestCurveColumns(t *testing.T) {
	c := GenerateCurve(balanced)
	pos, vel, acc := c.Positions(), c.Velocities(), c.Accelerations()
	if len(pos) != CurvePoints || len(vel) != CurvePoints || len(acc) != CurvePoints {
		t.Fatal("column length mismatch")
	}
	if pos[90] != c[90].Position || vel[90] != c[90].Velocity || acc[90] != c[90].Acceleration {
		t.Error("column values do not match points")
	}
	if got := c.Column("velocity"); got[10] != vel[10] {
		t.Error("Column(velocity) mismatch")
	}
	if _, ok := c.At(361); ok {
		t.Error("At(361) should be out of range")
	}
	if p, ok := c.At(180); !ok || p.AngleDegrees != 180 {
		t.Errorf("At(180) = %+v, %v", p, ok)
	}
}

func TestSetParam(t *testing.T) {
	p := balanced
	if err := p.SetParam(ParamRodLength, 220); err != nil {
		t.Fatal(err)
	}
	if p.RodLength != 220 {
		t.Errorf("RodLength = %v, want 220", p.RodLength)
	}
	if err := p.SetParam("mass", 1); err == nil {
		t.Error("expected error for unknown param")
	}

	q, err := balanced.With(ParamCrankSpeed, -30)
	if err != nil || q.CrankSpeed != -30 || balanced.CrankSpeed != 150 {
		t.Errorf("With should copy: got %+v, original %+v", q, balanced)
	}

	got := balanced.GetParams()
	if got[ParamCrankRadius] != 50 || got[ParamRodLength] != 150 || got[ParamCrankSpeed] != 150 {
		t.Errorf("GetParams = %v", got)
	}
	if r := balanced.RodRatio(); math.Abs(r-1.0/3) > 1e-12 {
		t.Errorf("RodRatio = %v", r)
	}
}

func TestRodAngle(t *testing.T) {
	r, l := balanced.CrankRadius, balanced.RodLength

	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"top dead centre", 0, 0},
		{"quarter turn", math.Pi / 2, math.Asin(r / l)},
		{"bottom dead centre", math.Pi, 0},
		{"three quarter turn", 3 * math.Pi / 2, -math.Asin(r / l)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RodAngle(tt.angle, r, l)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RodAngle(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}

	theta := 1.0
	phi, _ := RodAngle(theta, r, l)
	x, _ := Position(theta, r, l)
	if math.Abs(math.Cos(phi)-(x-r*math.Cos(theta))/l) > 1e-12 {
		t.Errorf("cosφ does not match (x − r·cosθ)/l")
	}
}

func TestRodAngleInfeasible(t *testing.T) {
	if _, err := RodAngle(math.Pi/2, 50, 50); !errors.Is(err, ErrInfeasibleGeometry) {
		t.Errorf("degenerate r == l: expected ErrInfeasibleGeometry, got %v", err)
	}
	if _, err := RodAngle(math.Pi/2, 80, 60); !errors.Is(err, ErrInfeasibleGeometry) {
		t.Errorf("short rod: expected ErrInfeasibleGeometry, got %v", err)
	}
	if phi, err := RodAngle(0, 50, 50); err != nil || phi != 0 {
		t.Errorf("degenerate mechanism at θ=0: got %v, %v", phi, err)
	}
}

func TestResolveRodForce(t *testing.T) {
	r, l := balanced.CrankRadius, balanced.RodLength
	const force = 1000.0

	f, err := ResolveRodForce(0, r, l, force)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(f.Fx-force) > 1e-9 || math.Abs(f.Fy) > 1e-9 || math.Abs(f.Torque) > 1e-9 {
		t.Errorf("dead centre should carry pure thrust and no torque: %+v", f)
	}

	f, _ = ResolveRodForce(math.Pi/2, r, l, force)
	if math.Abs(f.Fy-force*r/l) > 1e-9 {
		t.Errorf("Fy = %v, want %v", f.Fy, force*r/l)
	}
	if want := r * force * math.Sqrt(1-(r/l)*(r/l)); math.Abs(f.Torque-want) > 1e-9 {
		t.Errorf("Torque = %v, want %v", f.Torque, want)
	}

	// Virtual work: crank torque equals the line-of-stroke force times the
	// slider's displacement per radian.
	omega := AngularSpeed(balanced.CrankSpeed)
	for _, theta := range []float64{0.3, 1.0, 2.5, 4.0, 5.5} {
		f, _ := ResolveRodForce(theta, r, l, force)
		v, _ := Velocity(theta, r, l, balanced.CrankSpeed)
		if want := -f.Fx * v / omega; math.Abs(f.Torque-want) > 1e-6 {
			t.Errorf("θ=%v: torque %v, want %v", theta, f.Torque, want)
		}
	}

	if _, err := ResolveRodForce(math.Pi/2, 80, 60, force); !errors.Is(err, ErrInfeasibleGeometry) {
		t.Errorf("expected ErrInfeasibleGeometry, got %v", err)
	}
}

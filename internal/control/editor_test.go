package control

import (
	"testing"

	"github.com/san-kum/slidercrank/internal/config"
	"github.com/san-kum/slidercrank/internal/kinematics"
)

func newBalanced() *Editor {
	return NewEditor(kinematics.Params{CrankRadius: 50, RodLength: 150, CrankSpeed: 150}, config.Beginner)
}

func TestEditorRejectsInvalidCrankRadius(t *testing.T) {
	ed := newBalanced()

	if ed.Set(kinematics.ParamCrankRadius, 160) {
		t.Fatal("crank radius above rod length should be rejected")
	}
	if ed.Params().CrankRadius != 50 {
		t.Errorf("params changed after rejection: %+v", ed.Params())
	}
	if ed.LastRejection() == "" {
		t.Error("expected a rejection reason")
	}

	if !ed.Set(kinematics.ParamCrankRadius, 60) {
		t.Fatalf("valid edit rejected: %s", ed.LastRejection())
	}
	if ed.LastRejection() != "" {
		t.Error("rejection should clear after a committed edit")
	}
}

func TestEditorAllowsRodLengthFixForward(t *testing.T) {
	ed := newBalanced()

	if !ed.Set(kinematics.ParamRodLength, 30) {
		t.Fatal("rod length edits always commit")
	}
	if ed.Validation().Valid {
		t.Error("mechanism should now be invalid")
	}

	// Other fields are blocked while the combination stays invalid.
	if ed.Set(kinematics.ParamCrankSpeed, 100) {
		t.Error("speed edit into an invalid mechanism should be rejected")
	}

	if !ed.Set(kinematics.ParamRodLength, 120) {
		t.Fatal("rod length edit rejected")
	}
	if !ed.Validation().Valid {
		t.Error("mechanism should be valid again")
	}
}

func TestEditorStep(t *testing.T) {
	ed := newBalanced()

	if !ed.Step(kinematics.ParamCrankRadius, 1) {
		t.Fatal("step rejected")
	}
	if ed.Params().CrankRadius != 55 {
		t.Errorf("expected 55, got %v", ed.Params().CrankRadius)
	}

	for i := 0; i < 20; i++ {
		ed.Step(kinematics.ParamCrankSpeed, 1)
	}
	if ed.Params().CrankSpeed != 200 {
		t.Errorf("speed should clamp at beginner max 200, got %v", ed.Params().CrankSpeed)
	}

	if ed.Step("mass", 1) {
		t.Error("unknown field should not step")
	}
}

func TestEditorDifficultyAndPresets(t *testing.T) {
	ed := newBalanced()
	ed.SetDifficulty(config.Advanced)
	if ed.Difficulty() != config.Advanced || ed.Ranges().CrankSpeed.Max != 1000 {
		t.Errorf("difficulty not applied: %v %+v", ed.Difficulty(), ed.Ranges())
	}

	ed.Step(kinematics.ParamCrankSpeed, 1)
	if ed.Params().CrankSpeed != 151 {
		t.Errorf("advanced step should be 1, got %v", ed.Params().CrankSpeed)
	}

	hs, _ := config.GetPreset("high-speed")
	ed.ApplyPreset(hs)
	if ed.Params() != hs {
		t.Errorf("preset not applied: %+v", ed.Params())
	}

	ed.Reset()
	if ed.Params().RodLength != 150 || ed.Params().CrankSpeed != 150 {
		t.Errorf("reset should restore balanced, got %+v", ed.Params())
	}
}

func TestFields(t *testing.T) {
	f := Fields()
	if len(f) != 3 || f[1] != kinematics.ParamRodLength {
		t.Errorf("unexpected fields: %v", f)
	}
}

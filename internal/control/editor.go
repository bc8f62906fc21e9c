package control

import (
	"github.com/san-kum/slidercrank/internal/config"
	"github.com/san-kum/slidercrank/internal/kinematics"
)

// Editor is the manual parameter input surface. It owns the committed
// mechanism parameters and gates every edit through kinematics.Validate.
//
// Edits that would leave the mechanism invalid are rejected, except edits to
// the rod length, which always commit so the user can lengthen the rod out of
// an invalid combination.
type Editor struct {
	params     kinematics.Params
	defaults   kinematics.Params
	difficulty config.Difficulty
	ranges     config.Ranges
	rejection  string
}

func NewEditor(p kinematics.Params, d config.Difficulty) *Editor {
	return &Editor{
		params:     p,
		defaults:   config.Presets[config.DefaultPreset],
		difficulty: d,
		ranges:     config.RangesFor(d),
	}
}

// Fields lists the editable parameter names in display order.
func Fields() []string {
	return []string{kinematics.ParamCrankRadius, kinematics.ParamRodLength, kinematics.ParamCrankSpeed}
}

func (e *Editor) Params() kinematics.Params { return e.params }

func (e *Editor) Difficulty() config.Difficulty { return e.difficulty }

func (e *Editor) Ranges() config.Ranges { return e.ranges }

// LastRejection returns the validation reason of the most recent rejected
// edit, or "" if the last edit committed.
func (e *Editor) LastRejection() string { return e.rejection }

// Validation reports the state of the committed parameters, which can be
// invalid after a fix-forward rod length edit.
func (e *Editor) Validation() kinematics.Validation {
	return kinematics.Validate(e.params)
}

// Set applies value to field and reports whether it was committed.
func (e *Editor) Set(field string, value float64) bool {
	candidate, err := e.params.With(field, value)
	if err != nil {
		e.rejection = err.Error()
		return false
	}

	v := kinematics.Validate(candidate)
	if !v.Valid && field != kinematics.ParamRodLength {
		e.rejection = v.Reason
		return false
	}

	e.params = candidate
	e.rejection = ""
	return true
}

// Step moves field by dir steps of its difficulty range, clamped to the
// range bounds.
func (e *Editor) Step(field string, dir int) bool {
	r, ok := e.ranges.Field(field)
	if !ok {
		return false
	}
	current := e.params.GetParams()[field]
	return e.Set(field, r.Clamp(current+float64(dir)*r.Step))
}

// SetDifficulty swaps the slider ranges. Committed parameters are kept even
// if they fall outside the new ranges.
func (e *Editor) SetDifficulty(d config.Difficulty) {
	e.difficulty = d
	e.ranges = config.RangesFor(d)
}

// ApplyPreset commits p without gating.
func (e *Editor) ApplyPreset(p kinematics.Params) {
	e.params = p
	e.rejection = ""
}

func (e *Editor) Reset() {
	e.ApplyPreset(e.defaults)
}

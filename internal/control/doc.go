// Package control implements the parameter input surface for the live view.
//
// An [Editor] holds the committed mechanism and applies keyboard edits:
//
//	ed := control.NewEditor(params, config.Beginner)
//	ed.Step(kinematics.ParamCrankRadius, +1) // one range step, validated
//	if !ed.Set(kinematics.ParamCrankRadius, 200) {
//	    fmt.Println(ed.LastRejection())
//	}
//
// Rod length edits always commit, even into an invalid mechanism; the
// engine degrades to undefined readouts until the rod is long enough again.
package control

// Package viz renders the slider-crank in the terminal.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: animation clock, parameter editor and panels
//   - [Canvas]: braille dot canvas the mechanism is drawn on
//   - [Layout] and [DrawMechanism]: mechanism geometry in pixel space
//   - [CurveChart]: asciigraph plot of the motion curve with a live marker
//
// # Key Bindings
//
//	Space      - Play/pause
//	Tab        - Select next parameter (Shift+Tab for previous)
//	Up/Down    - Step the selected parameter
//	Left/Right - Step the crank one degree while paused
//	P / D      - Cycle presets / difficulty
//	C / T      - Cycle chart quantity / theme
//	R          - Reset
//	?          - Show help overlay
package viz

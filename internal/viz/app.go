package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/slidercrank/internal/config"
	"github.com/san-kum/slidercrank/internal/control"
	"github.com/san-kum/slidercrank/internal/kinematics"
	"github.com/san-kum/slidercrank/internal/log"
	"github.com/san-kum/slidercrank/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 16
	chartWidth   = 40
	chartHeight  = 6
	barWidth     = 12
	// maxFrameDt bounds the clock step after a stalled frame.
	maxFrameDt = 0.25
)

var fieldLabels = map[string]string{
	kinematics.ParamCrankRadius: "crank r",
	kinematics.ParamRodLength:   "rod l",
	kinematics.ParamCrankSpeed:  "speed",
}

var fieldUnits = map[string]string{
	kinematics.ParamCrankRadius: "mm",
	kinematics.ParamRodLength:   "mm",
	kinematics.ParamCrankSpeed:  "rpm",
}

type TickMsg time.Time

// Options seed the live view.
type Options struct {
	Params     kinematics.Params
	Preset     string
	Difficulty config.Difficulty
	StartAngle float64
	FPS        int
	Theme      string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Params:     cfg.Params,
		Preset:     cfg.Preset,
		Difficulty: cfg.Difficulty,
		StartAngle: cfg.StartAngle,
		FPS:        cfg.FPS,
		Theme:      cfg.Theme,
	}
}

// Model is the live view. The crank angle lives in clock and is advanced by
// real elapsed time on every tick; the curve is regenerated only when the
// parameters change.
type Model struct {
	editor   *control.Editor
	clock    sim.Clock
	start    sim.Clock
	sample   kinematics.Sample
	curve    kinematics.Curve
	preset   string
	selected int
	chart    string
	theme    Theme
	styles   Styles
	canvas   *Canvas
	fps      int
	last     time.Time
	showHelp bool
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.Beginner
	}

	theme := GetTheme(opts.Theme)
	start := sim.Clock{}.Seek(opts.StartAngle)
	m := Model{
		editor: control.NewEditor(opts.Params, opts.Difficulty),
		clock:  start,
		start:  start,
		preset: opts.Preset,
		chart:  ChartFields[0],
		theme:  theme,
		styles: NewStyles(theme),
		canvas: NewCanvas(canvasWidth, canvasHeight),
		fps:    opts.FPS,
	}
	m.regenerate()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case TickMsg:
		now := time.Time(msg)
		dt := 1 / float64(m.fps)
		if !m.last.IsZero() {
			dt = math.Min(now.Sub(m.last).Seconds(), maxFrameDt)
		}
		m.last = now
		m.clock = m.clock.Advance(dt, m.editor.Params().CrankSpeed)
		m.resample()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	fields := control.Fields()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.clock = m.clock.Toggle()
	case "tab":
		m.selected = (m.selected + 1) % len(fields)
	case "shift+tab":
		m.selected = (m.selected + len(fields) - 1) % len(fields)
	case "up", "k":
		m.edit(fields[m.selected], 1)
	case "down", "j":
		m.edit(fields[m.selected], -1)
	case "p":
		m.preset = config.NextPreset(m.preset)
		if p, err := config.GetPreset(m.preset); err == nil {
			m.editor.ApplyPreset(p)
			m.regenerate()
		}
	case "d":
		m.editor.SetDifficulty(m.editor.Difficulty().Next())
	case "c":
		m.chart = NextChartField(m.chart)
	case "t":
		m.theme = NextTheme(m.theme)
		m.styles = NewStyles(m.theme)
	case "r":
		m.editor.Reset()
		m.preset = config.DefaultPreset
		m.clock = m.start
		m.regenerate()
	case "left", "h":
		m.stepAngle(-1)
	case "right", "l":
		m.stepAngle(1)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) edit(field string, dir int) {
	if m.editor.Step(field, dir) {
		m.preset = ""
		m.regenerate()
		return
	}
	if reason := m.editor.LastRejection(); reason != "" {
		log.Debug("edit rejected", "field", field, "reason", reason)
	}
}

// stepAngle moves the crank by whole degrees while paused.
func (m *Model) stepAngle(deg int) {
	if m.clock.Playing {
		return
	}
	m.clock = m.clock.Seek(kinematics.Radians(m.clock.Degrees() + deg))
	m.resample()
}

func (m *Model) regenerate() {
	m.curve = kinematics.GenerateCurve(m.editor.Params())
	m.resample()
}

func (m *Model) resample() {
	m.sample = kinematics.EvaluateState(m.clock.Angle, m.editor.Params())
}

// Accessors used by tests and the CLI.
func (m Model) Clock() sim.Clock              { return m.clock }
func (m Model) Sample() kinematics.Sample     { return m.sample }
func (m Model) Curve() kinematics.Curve       { return m.curve }
func (m Model) Params() kinematics.Params     { return m.editor.Params() }
func (m Model) Difficulty() config.Difficulty { return m.editor.Difficulty() }
func (m Model) SelectedField() string         { return control.Fields()[m.selected] }
func (m Model) ChartField() string            { return m.chart }
func (m Model) Theme() Theme                  { return m.theme }
func (m Model) Preset() string                { return m.preset }

// RodAngleDegrees returns the connecting-rod inclination at the current
// angle, or Undefined when the rod cannot reach the slider axis.
func (m Model) RodAngleDegrees() float64 {
	p := m.editor.Params()
	phi, err := kinematics.RodAngle(m.clock.Angle, p.CrankRadius, p.RodLength)
	if err != nil {
		return kinematics.Undefined
	}
	return phi * 180 / math.Pi
}

// FormatMeasurement renders a motion value with two decimals. Undefined
// values read 0.00.
func FormatMeasurement(v float64) string {
	if kinematics.IsUndefined(v) {
		v = 0
	}
	return fmt.Sprintf("%.2f", v)
}

func (m Model) View() string {
	p := m.editor.Params()
	st := m.styles

	m.canvas.Clear()
	w, h := m.canvas.Dots()
	DrawMechanism(m.canvas, Layout(p, m.sample, w, h))
	canvasView := st.Canvas.Render(m.canvas.String())

	var s strings.Builder
	status := st.Running.Render("RUNNING")
	if !m.clock.Playing {
		status = st.Paused.Render("PAUSED")
	}
	title := "SLIDER-CRANK"
	if m.preset != "" {
		title += " · " + m.preset
	}
	s.WriteString(st.Header.Render(title) + "\n")
	s.WriteString(status + "\n\n")

	if v := m.editor.Validation(); !v.Valid {
		s.WriteString(st.ErrorMsg.Render("invalid: "+v.Reason) + "\n")
	}
	if reason := m.editor.LastRejection(); reason != "" {
		s.WriteString(st.Warning.Render("rejected: "+reason) + "\n")
	}

	s.WriteString(st.Label.Render("angle") + st.Value.Render(fmt.Sprintf("%d°", m.clock.Degrees())) + "\n")
	s.WriteString(st.Label.Render("displacement") + st.Value.Render(FormatMeasurement(m.sample.Position)+" mm") + "\n")
	s.WriteString(st.Label.Render("velocity") + st.Value.Render(FormatMeasurement(math.Abs(m.sample.Velocity))+" mm/s") + "\n")
	s.WriteString(st.Label.Render("acceleration") + st.Value.Render(FormatMeasurement(m.sample.Acceleration)+" mm/s²") + "\n")
	s.WriteString(st.Label.Render("rod angle φ") + st.Value.Render(FormatMeasurement(m.RodAngleDegrees())+"°") + "\n")
	s.WriteString(st.Label.Render("time") + st.Value.Render(fmt.Sprintf("%.2fs", m.clock.Time)) + "\n")

	s.WriteString("\nPARAMETERS (" + string(m.editor.Difficulty()) + ")\n")
	ranges := m.editor.Ranges()
	values := p.GetParams()
	for i, f := range control.Fields() {
		r, _ := ranges.Field(f)
		line := fmt.Sprintf("%-8s %s %6.0f %s", fieldLabels[f], st.Bar(r.Fraction(values[f]), barWidth), values[f], fieldUnits[f])
		if i == m.selected {
			s.WriteString(st.Active.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if m.curve.Empty() {
		s.WriteString("\n" + st.ErrorMsg.Render("mechanism infeasible: no motion curve") + "\n")
	} else {
		s.WriteString(st.Graph.Render(CurveChart(m.curve, m.chart, m.clock.Degrees(), chartWidth, chartHeight)) + "\n")
	}

	s.WriteString(st.Help.Render("space:play  tab:field  ↑↓:adjust  p:preset  ?:help  q:quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space      Play / pause             ║
║  Tab        Next parameter           ║
║  Shift+Tab  Previous parameter       ║
║  Up/K       Increase parameter       ║
║  Down/J     Decrease parameter       ║
║  Left/Right Step 1° while paused     ║
║  P          Cycle presets            ║
║  D          Cycle difficulty         ║
║  C          Cycle chart quantity     ║
║  T          Cycle themes             ║
║  R          Reset                    ║
║  ?          Toggle this help         ║
║  Q          Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the live view and blocks until the user quits.
func Run(opts Options) error {
	log.Info("starting live view", "params", opts.Params.String(), "difficulty", string(opts.Difficulty), "fps", opts.FPS)
	_, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	return err
}

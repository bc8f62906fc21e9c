package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/slidercrank/internal/analysis"
	"github.com/san-kum/slidercrank/internal/automation"
	"github.com/san-kum/slidercrank/internal/config"
	"github.com/san-kum/slidercrank/internal/export"
	"github.com/san-kum/slidercrank/internal/kinematics"
	"github.com/san-kum/slidercrank/internal/log"
	"github.com/san-kum/slidercrank/internal/metrics"
	"github.com/san-kum/slidercrank/internal/sim"
	"github.com/san-kum/slidercrank/internal/storage"
	"github.com/san-kum/slidercrank/internal/viz"
)

var errInfeasible = errors.New("mechanism infeasible")

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func formatValue(v float64) string {
	if kinematics.IsUndefined(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", v)
}

// curveFor generates the curve and turns an empty one into an error carrying
// the validation reason.
func curveFor(p kinematics.Params) (kinematics.Curve, error) {
	c := kinematics.GenerateCurve(p)
	if c.Empty() {
		reason := kinematics.Validate(p).Reason
		if reason == "" {
			reason = "geometry cannot close at every angle"
		}
		return nil, fmt.Errorf("%w: %s", errInfeasible, reason)
	}
	return c, nil
}

func validateParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	v := kinematics.Validate(cfg.Params)
	fmt.Printf("params: %s\n", cfg.Params)
	if !v.Valid {
		fmt.Printf("invalid: %s\n", v.Reason)
		return fmt.Errorf("%w: %s", errInfeasible, v.Reason)
	}
	fmt.Printf("valid (rod ratio %.3f)\n", cfg.Params.RodRatio())
	return nil
}

func evaluateState(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s := kinematics.EvaluateState(degToRad(angleDeg), cfg.Params)
	if !s.Defined() {
		log.Warn("state undefined", "angle", angleDeg, "params", cfg.Params.String())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tVALUE\tUNIT")
	fmt.Fprintf(w, "angle\t%.2f\tdeg\n", angleDeg)
	fmt.Fprintf(w, "position\t%s\tmm\n", formatValue(s.Position))
	fmt.Fprintf(w, "velocity\t%s\tmm/s\n", formatValue(s.Velocity))
	fmt.Fprintf(w, "acceleration\t%s\tmm/s²\n", formatValue(s.Acceleration))
	return w.Flush()
}

func explain(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if v := kinematics.Validate(cfg.Params); !v.Valid {
		log.Warn("mechanism cannot complete a revolution", "reason", v.Reason)
	}
	d, err := analysis.Derive(cfg.Params, degToRad(explainAngle), rodForce)
	if err != nil {
		return fmt.Errorf("%w at %g°: %v", errInfeasible, explainAngle, err)
	}
	return d.Write(os.Stdout)
}

func printCurve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	c := kinematics.GenerateCurve(cfg.Params)
	switch format {
	case "csv":
		return storage.ExportCurveCSV(os.Stdout, c)
	case "json":
		return storage.ExportCurveJSON(os.Stdout, cfg.Params, c)
	case "table":
	default:
		return fmt.Errorf("unknown format %q (table, csv, json)", format)
	}

	if c.Empty() {
		_, err := curveFor(cfg.Params)
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "ANGLE\tPOSITION\tVELOCITY\tACCELERATION\t")
	for _, pt := range c {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t\n", pt.AngleDegrees, pt.Position, pt.Velocity, pt.Acceleration)
	}
	return w.Flush()
}

func plotCurve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	c, err := curveFor(cfg.Params)
	if err != nil {
		return err
	}

	fields := viz.ChartFields
	if plotField != "all" {
		if _, ok := viz.ChartUnits(plotField); !ok {
			return fmt.Errorf("unknown field %q (position, velocity, acceleration, all)", plotField)
		}
		fields = []string{plotField}
	}

	fmt.Printf("params: %s\n\n", cfg.Params)
	for _, f := range fields {
		graph := asciigraph.Plot(c.Column(f),
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(f+" vs crank angle (0-360°)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func printSummary(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	c, err := curveFor(cfg.Params)
	if err != nil {
		return err
	}
	s, _ := analysis.Summarize(c)

	fmt.Printf("params: %s\n\n", cfg.Params)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tVALUE\tAT")
	fmt.Fprintf(w, "stroke\t%.3f mm\t\n", s.Stroke)
	fmt.Fprintf(w, "top dead centre\t%.3f mm\t%d°\n", s.TopDeadCentre.Value, s.TopDeadCentre.Degrees)
	fmt.Fprintf(w, "bottom dead centre\t%.3f mm\t%d°\n", s.BottomDeadCentre.Value, s.BottomDeadCentre.Degrees)
	fmt.Fprintf(w, "peak velocity\t%.3f mm/s\t%d°\n", s.PeakVelocity.Value, s.PeakVelocity.Degrees)
	fmt.Fprintf(w, "peak acceleration\t%.3f mm/s²\t%d°\n", s.PeakAcceleration.Value, s.PeakAcceleration.Degrees)
	fmt.Fprintf(w, "mean speed\t%.3f mm/s\t\n", s.MeanSpeed)
	fmt.Fprintf(w, "primary harmonic\t%.3f mm/s²\t1×\n", s.Harmonics.Primary)
	fmt.Fprintf(w, "secondary harmonic\t%.3f mm/s²\t2×\n", s.Harmonics.Secondary)
	fmt.Fprintf(w, "secondary/primary\t%.4f\t\n", s.Harmonics.Ratio())
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	points, err := analysis.Sweep(cfg.Params, sweepField, sweepMin, sweepMax, sweepN)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over [%g, %g] from %s\n\n", sweepField, sweepMin, sweepMax, cfg.Params)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tFEASIBLE\tSTROKE\tPEAK_V\tPEAK_A\tMEAN_SPEED\tA2/A1")
	for _, pt := range points {
		if !pt.Feasible {
			fmt.Fprintf(w, "%.3f\tno\t-\t-\t-\t-\t-\n", pt.Value)
			continue
		}
		s := pt.Summary
		fmt.Fprintf(w, "%.3f\tyes\t%.3f\t%.3f\t%.3f\t%.3f\t%.4f\n",
			pt.Value, s.Stroke, s.PeakVelocity.Value, s.PeakAcceleration.Value, s.MeanSpeed, s.Harmonics.Ratio())
	}
	return w.Flush()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s := sim.New(cfg.Params)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	runCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, StartAngle: cfg.StartAngle}
	log.Info("running", "params", cfg.Params.String(), "dt", runCfg.Dt, "duration", runCfg.Duration)

	result, err := s.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	if result.Undefined > 0 {
		log.Warn("run contains undefined samples", "undefined", result.Undefined, "samples", len(result.Samples))
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Params, runCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d (%d undefined)\n", len(result.Samples), result.Undefined)
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %.4f\n", name, result.Metrics[name])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARAMS\tDURATION\tDT\tSAMPLES\tUNDEFINED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params,
			run.Duration,
			run.Dt,
			run.Samples,
			run.Undefined,
		)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportRunCSV(os.Stdout, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportRunJSON(os.Stdout, args[0])
}

func writeSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	c, err := curveFor(cfg.Params)
	if err != nil {
		return err
	}

	svg := export.CurveToSVG(c, svgField, width, height, color)
	if svg == "" {
		return fmt.Errorf("nothing to draw at %dx%d", width, height)
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func writeGIF(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	f, err := os.Create(gifOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.RevolutionGIF(f, cfg.Params, frames, size); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", gifOut, frames)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCRANK\tROD\tRPM\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%s\n", name, p.CrankRadius, p.RodLength, p.CrankSpeed, config.PresetDescription(name))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIFFICULTY\tCRANK\tROD\tRPM")
	for _, d := range config.Difficulties {
		r := config.DifficultyRanges[d]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d, formatRange(r.CrankRadius), formatRange(r.RodLength), formatRange(r.CrankSpeed))
	}
	return w.Flush()
}

func formatRange(r config.Range) string {
	return fmt.Sprintf("%g-%g/%g", r.Min, r.Max, r.Step)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(strings.TrimSpace(sc.Description))
	}

	results, err := automation.RunScenario(context.Background(), sc, storage.New(dataDir))
	for _, r := range results {
		fmt.Printf("  %-16s %s  stroke=%.2f\n", r.Label, r.RunID, r.Metrics["stroke"])
	}
	return err
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/slidercrank/internal/config"
	"github.com/san-kum/slidercrank/internal/kinematics"
	"github.com/san-kum/slidercrank/internal/log"
	"github.com/san-kum/slidercrank/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	// Mechanism
	preset      string
	difficulty  string
	crankRadius float64
	rodLength   float64
	crankSpeed  float64
	// Headless run timing
	dt         float64
	duration   float64
	startAngle float64
	// Live view
	frameRate int
	themeName string
	// Output
	angleDeg     float64
	rodForce     float64
	explainAngle float64
	format       string
	plotField    string
	sweepField   string
	svgField     string
	svgOut       string
	gifOut       string
	width        int
	height       int
	color        string
	frames       int
	size         int
	sweepMin     float64
	sweepMax     float64
	sweepN       int
	plotWidth    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "slidercrank",
		Short:         "slider-crank kinematics explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Init(logLevel)
		},
		// Default to the live view when no command given
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".slidercrank", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	addMechanismFlags(rootCmd)
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the mechanism in the terminal",
		RunE:  runLive,
	}
	addMechanismFlags(liveCmd)
	addLiveFlags(liveCmd)

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check that the mechanism can complete a revolution",
		RunE:  validateParams,
	}
	addMechanismFlags(validateCmd)

	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "evaluate position, velocity and acceleration at one angle",
		RunE:  evaluateState,
	}
	addMechanismFlags(stateCmd)
	stateCmd.Flags().Float64Var(&angleDeg, "angle", 0, "crank angle in degrees")

	explainCmd := &cobra.Command{
		Use:   "explain",
		Short: "work through the position, rod angle, force and motion equations at one angle",
		RunE:  explain,
	}
	addMechanismFlags(explainCmd)
	explainCmd.Flags().Float64Var(&explainAngle, "angle", 30, "crank angle in degrees")
	explainCmd.Flags().Float64Var(&rodForce, "force", 1000, "compressive force along the connecting rod (N)")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "tabulate one revolution, one row per degree",
		RunE:  printCurve,
	}
	addMechanismFlags(curveCmd)
	curveCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the motion curve",
		RunE:  plotCurve,
	}
	addMechanismFlags(plotCmd)
	plotCmd.Flags().StringVar(&plotField, "field", "all", "quantity to plot (position, velocity, acceleration, all)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width in columns")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "stroke, dead centres and peak values",
		RunE:  printSummary,
	}
	addMechanismFlags(summaryCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "summarize the mechanism across a range of one parameter",
		RunE:  runSweep,
	}
	addMechanismFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepField, "field", kinematics.ParamRodLength, "parameter to sweep (crank_radius, rod_length, crank_speed)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 100, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 300, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "steps", 9, "number of values")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the clock headless and store the samples",
		RunE:  runSimulation,
	}
	addMechanismFlags(runCmd)
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	runCmd.Flags().Float64Var(&startAngle, "start", 0, "start angle in degrees")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "write the motion curve as SVG",
		RunE:  writeSVG,
	}
	addMechanismFlags(svgCmd)
	svgCmd.Flags().StringVar(&svgField, "field", "position", "quantity to plot (position, velocity, acceleration)")
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "curve.svg", "output file")
	svgCmd.Flags().IntVar(&width, "width", 720, "width in pixels")
	svgCmd.Flags().IntVar(&height, "height", 240, "height in pixels")
	svgCmd.Flags().StringVar(&color, "color", "#00ffff", "stroke colour")

	gifCmd := &cobra.Command{
		Use:   "gif",
		Short: "write one crank revolution as an animated GIF",
		RunE:  writeGIF,
	}
	addMechanismFlags(gifCmd)
	gifCmd.Flags().StringVarP(&gifOut, "out", "o", "slidercrank.gif", "output file")
	gifCmd.Flags().IntVar(&frames, "frames", 72, "frames per revolution")
	gifCmd.Flags().IntVar(&size, "size", 320, "frame width in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and difficulty ranges",
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(liveCmd, validateCmd, stateCmd, explainCmd, curveCmd, plotCmd, summaryCmd, sweepCmd, runCmd, listCmd,
		exportCSVCmd, exportJSONCmd, svgCmd, gifCmd, presetsCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addMechanismFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset ("+fmt.Sprint(config.ListPresets())+")")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(config.Beginner), "slider ranges (beginner, intermediate, advanced)")
	cmd.Flags().Float64VarP(&crankRadius, "crank-radius", "r", config.DefaultCrankRadius, "crank radius (mm)")
	cmd.Flags().Float64VarP(&rodLength, "rod-length", "l", config.DefaultRodLength, "connecting rod length (mm)")
	cmd.Flags().Float64Var(&crankSpeed, "rpm", config.DefaultCrankSpeed, "crank speed (rpm)")
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "colour theme ("+fmt.Sprint(viz.ThemeNames())+")")
}

// resolveConfig layers the config file, the preset and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg.Preset, cfg.Params = preset, p
	}
	if flags.Changed("difficulty") {
		d, err := config.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		cfg.Difficulty = d
	}
	if flags.Changed("crank-radius") {
		cfg.Params.CrankRadius = crankRadius
	}
	if flags.Changed("rod-length") {
		cfg.Params.RodLength = rodLength
	}
	if flags.Changed("rpm") {
		cfg.Params.CrankSpeed = crankSpeed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("start") {
		cfg.StartAngle = degToRad(startAngle)
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}

	if err := cfg.ValidateSettings(); err != nil {
		return nil, err
	}

	log.Debug("resolved config", "params", cfg.Params.String(), "preset", cfg.Preset, "difficulty", string(cfg.Difficulty))
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; logs go to a file instead.
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "live.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	log.InitWriter(f, logLevel)

	return viz.Run(viz.OptionsFromConfig(cfg))
}

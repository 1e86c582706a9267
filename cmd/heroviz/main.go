package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/heroviz/internal/bench"
	"github.com/san-kum/heroviz/internal/config"
	"github.com/san-kum/heroviz/internal/export"
	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/telemetry"
	"github.com/san-kum/heroviz/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	debug      bool
	reduced    bool
	// Window
	hud   bool
	watch bool
	// Bench
	frames      int
	benchWidth  float64
	benchHeight float64
	benchDPR    float64
	sampleEvery int
	numRuns     int
	sweep       bool
	save        bool
	svgPath     string
	// Config
	force bool
)

// main registers the heroviz commands and runs the window when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "heroviz",
		Short:         "constellation field and skill cloud effects",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heroviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&reduced, "reduced-motion", false, "start with animation paused")
	rootCmd.Flags().BoolVar(&hud, "hud", false, "show the stats overlay")
	rootCmd.Flags().BoolVar(&watch, "watch", true, "reload the config file when it changes")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the effects in a window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	runCmd.Flags().BoolVar(&hud, "hud", false, "show the stats overlay")
	runCmd.Flags().BoolVar(&watch, "watch", true, "reload the config file when it changes")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the effects in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run both effects headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	benchCmd.Flags().Float64Var(&benchWidth, "width", config.DefaultWidth, "container width in CSS pixels")
	benchCmd.Flags().Float64Var(&benchHeight, "height", config.DefaultHeight, "container height in CSS pixels")
	benchCmd.Flags().Float64Var(&benchDPR, "dpr", 1, "device-pixel ratio")
	benchCmd.Flags().IntVar(&sampleEvery, "sample", 1, "record every Nth frame")
	benchCmd.Flags().IntVar(&numRuns, "runs", 1, "number of runs over consecutive seeds")
	benchCmd.Flags().BoolVar(&sweep, "sweep", false, "sweep a pointer across the field")
	benchCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	benchCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved bench runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write or print configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the resolved config",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(runCmd, tuiCmd, benchCmd, runsCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "heroviz",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// presetConfig is the defaults with the selected preset applied.
func presetConfig() (*config.Config, error) {
	if preset == "" {
		return config.DefaultConfig(), nil
	}
	return config.GetPreset(preset)
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flags set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := presetConfig()
	if err != nil {
		return nil, err
	}

	// Config file values go over the preset.
	if configFile != "" {
		cfg, err = config.LoadInto(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("reduced-motion") {
		cfg.Loop.ReducedMotion = reduced
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	opts := render.Options{Logger: logger, HUD: hud}
	if configFile != "" && watch {
		base, _ := presetConfig()
		w, err := config.Watch(configFile, base)
		if err != nil {
			logger.Warn("config watch disabled", "path", configFile, "err", err)
		} else {
			defer w.Close()
			opts.Watcher = w
			logger.Debug("watching config", "path", w.Path())
		}
	}

	logger.Info("starting", "preset", presetName(), "seed", cfg.Seed, "bodies", len(cfg.Bodies.Skills))
	return render.Run(cfg, opts)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go to a file when asked for.
	var w io.Writer = io.Discard
	if debug {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(filepath.Join(dataDir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return tui.Run(cfg, newLogger(w))
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bc := bench.Config{
		Frames:      frames,
		Width:       benchWidth,
		Height:      benchHeight,
		DPR:         benchDPR,
		SampleEvery: sampleEvery,
		Seed:        cfg.SeedOr(time.Now().UnixNano()),
		Sweep:       sweep,
	}

	if numRuns > 1 {
		results, err := bench.NewEnsemble(cfg, numRuns, bc.Seed).Run(ctx, bc)
		if err != nil {
			return err
		}
		fmt.Printf("%d runs x %d frames, seeds %d..%d\n\n", numRuns, frames, bc.Seed, bc.Seed+int64(numRuns)-1)
		return printMetrics(bench.Mean(results))
	}

	res, err := bench.New(cfg).Run(ctx, bc)
	if err != nil {
		return err
	}

	fmt.Printf("%d frames in %v (%.0f frames/s), %d particles, %d bodies, seed %d\n\n",
		res.Frames, res.Elapsed.Round(time.Millisecond), float64(res.Frames)/res.Elapsed.Seconds(),
		res.Particles, res.Bodies, bc.Seed)
	if err := printMetrics(res.Metrics); err != nil {
		return err
	}
	plotSamples(res.Samples)

	if svgPath != "" {
		if err := export.WriteFile(svgPath, res.Field, res.Cloud); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}

	if save {
		st := telemetry.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := telemetry.RunMetadata{
			Preset: presetName(),
			Seed:   bc.Seed,
			Width:  int(bc.Width),
			Height: int(bc.Height),
		}
		runID, err := st.Save(res.Run(meta))
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %s\n", runID)
	}
	return nil
}

func presetName() string {
	if preset == "" {
		return "default"
	}
	return preset
}

func printMetrics(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", k, values[k])
	}
	return w.Flush()
}

func plotSamples(samples []telemetry.Sample) {
	if len(samples) < 2 {
		return
	}
	graph := asciigraph.Plot(telemetry.Energies(samples),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	)
	fmt.Println()
	fmt.Println(graph)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := telemetry.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tSIZE\tPARTICLES\tBODIES\tDRIFT\tSEPARATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%d\t%d\t%.2e\t%.3f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width, run.Height,
			run.Particles,
			run.Bodies,
			run.Metrics["energy_drift"],
			run.Metrics["separation"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := telemetry.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", runID)
	}

	fmt.Printf("%s (%s, seed %d, %d frames)\n\n", meta.ID, meta.Preset, meta.Seed, meta.Frames)
	plotSamples(samples)

	overlap := make([]float64, len(samples))
	for i, sm := range samples {
		overlap[i] = sm.Overlap
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(overlap,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("max overlap (px)"),
	))
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "heroviz.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

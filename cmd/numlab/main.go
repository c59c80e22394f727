package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/numlab/internal/analysis"
	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/metrics"
	"github.com/san-kum/numlab/internal/optim"
	"github.com/san-kum/numlab/internal/storage"
	"github.com/san-kum/numlab/internal/tui"
	"github.com/san-kum/numlab/internal/viz"
)

var (
	dataDir  string
	logLevel string
	saveRun  bool
	outFile  string

	// ode
	odeProblem string
	odeN       int
	odeH       float64
	odeX0      float64
	odeY0      float64
	odeX       float64
	odePlot    bool

	// integrate
	quadProblem string
	quadA       float64
	quadB       float64
	quadN       int

	// root
	rootProblem string
	rootA       float64
	rootB       float64
	rootEps     float64
	rootMaxIter int

	// run and sweep
	configFile   string
	preset       string
	method       string
	panels       int
	sweepPreset  string
	sweepNs      []int
	sweepWorkers int

	// tune
	tunePreset    string
	tuneParams    []string
	tuneObjective string
	tuneMaxErr    float64

	promFormat bool
)

var logger = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "numlab",
		Short: "numerical methods lab: ode solvers, quadrature and root finding",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			logger.SetOutput(os.Stderr)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(experiment.NewRegistry())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".numlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	odeCmd := &cobra.Command{
		Use:   "ode [method]",
		Short: "solve dy/dx = f(x, y) with rk2 or rk4",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runODE,
	}
	odeCmd.Flags().StringVar(&odeProblem, "problem", "cooling_ball", "ode problem")
	odeCmd.Flags().IntVar(&odeN, "n", 10, "number of steps")
	odeCmd.Flags().Float64Var(&odeH, "h", 0, "step size (overrides --n)")
	odeCmd.Flags().Float64Var(&odeX0, "x0", 0, "initial x")
	odeCmd.Flags().Float64Var(&odeY0, "y0", 1200, "initial y")
	odeCmd.Flags().Float64Var(&odeX, "x", 480, "target x")
	odeCmd.Flags().BoolVar(&odePlot, "plot", false, "plot the trajectory")
	odeCmd.Flags().BoolVar(&saveRun, "save", false, "save the run")

	integrateCmd := &cobra.Command{
		Use:   "integrate [rule]",
		Short: "integrate f over [a, b]",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegrate,
	}
	integrateCmd.Flags().StringVar(&quadProblem, "problem", "sine", "integrand")
	integrateCmd.Flags().Float64Var(&quadA, "a", 0, "lower bound")
	integrateCmd.Flags().Float64Var(&quadB, "b", math.Pi, "upper bound")
	integrateCmd.Flags().IntVar(&quadN, "n", 10, "number of panels")
	integrateCmd.Flags().BoolVar(&saveRun, "save", false, "save the run")

	rootFindCmd := &cobra.Command{
		Use:   "root [method]",
		Short: "find a root of f with bisection or newton",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRoot,
	}
	rootFindCmd.Flags().StringVar(&rootProblem, "problem", "sqrt2", "target function")
	rootFindCmd.Flags().Float64Var(&rootA, "a", 0, "bracket start, or the newton guess")
	rootFindCmd.Flags().Float64Var(&rootB, "b", 2, "bracket end")
	rootFindCmd.Flags().Float64Var(&rootEps, "eps", config.DefaultEpsilon, "residual tolerance")
	rootFindCmd.Flags().IntVar(&rootMaxIter, "max-iter", config.DefaultMaxIter, "iteration cap (0 = unbounded)")
	rootFindCmd.Flags().BoolVar(&saveRun, "save", false, "save the run")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a config file or preset and save it",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&method, "method", "", "override the method")
	runCmd.Flags().IntVar(&panels, "n", 0, "override the step or panel count")

	sweepCmd := &cobra.Command{
		Use:   "sweep [method]",
		Short: "convergence study over a list of n",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&sweepPreset, "preset", "sine", "use preset configuration")
	sweepCmd.Flags().IntSliceVar(&sweepNs, "ns", nil, "resolutions to sweep")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")

	tuneCmd := &cobra.Command{
		Use:   "tune [method]",
		Short: "grid search for the cheapest parameters meeting an error cap",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	tuneCmd.Flags().StringVar(&tunePreset, "preset", defaultTunePreset, "use preset configuration")
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", []string{defaultTuneAxis}, "grid axis as name=v1,v2,...")
	tuneCmd.Flags().StringVar(&tuneObjective, "minimize", optim.ObjectiveEvals, "objective (evals, abs_err, elapsed)")
	tuneCmd.Flags().Float64Var(&tuneMaxErr, "max-err", defaultTuneMaxErr, "absolute error cap (0 = none)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(func(w io.Writer) error {
				return storage.New(dataDir).ExportJSON(args[0], w)
			})
		},
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(func(w io.Writer) error {
				return storage.New(dataDir).ExportCSV(args[0], w)
			})
		},
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "cooling ball, sin integral and sqrt(2) in one report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), os.Stdout, nil)
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive preset explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(experiment.NewRegistry())
		},
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "run the demo and print evaluation counters",
		RunE:  showMetrics,
	}
	metricsCmd.Flags().BoolVar(&promFormat, "prom", false, "print in the Prometheus text exposition format")

	rootCmd.AddCommand(odeCmd, integrateCmd, rootFindCmd, runCmd, sweepCmd, tuneCmd, listCmd, showCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd, demoCmd, tuiCmd, metricsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newExperiment(cfg *config.Config) *experiment.Experiment {
	exp := experiment.New(cfg, experiment.NewRegistry())
	exp.SetLogger(logger)
	return exp
}

func methodArg(args []string, def string) string {
	if len(args) > 0 {
		return args[0]
	}
	return def
}

func runODE(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{
		Family:  config.FamilyODE,
		Method:  methodArg(args, "rk4"),
		Problem: odeProblem,
		Params:  config.ParamsConfig{X0: odeX0, Y0: odeY0, X: odeX, N: odeN},
	}
	if cmd.Flags().Changed("h") {
		cfg.Params.N = 0
		cfg.Params.H = odeH
	}

	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	printResult(res)

	if odePlot {
		fmt.Println()
		fmt.Println(plotTrajectory(res))
	}
	return maybeSave(cfg, res)
}

// plotTrajectory captions the plot with the last grid point, not --x.
func plotTrajectory(res *experiment.Result) string {
	if len(res.Trajectory) == 0 {
		return ""
	}
	ys := make([]float64, len(res.Trajectory))
	for i, p := range res.Trajectory {
		ys[i] = p.Y
	}
	first, last := res.Trajectory[0], res.Trajectory[len(res.Trajectory)-1]
	return viz.Plot(ys, fmt.Sprintf("%s: y over [%g, %g]", res.Problem, first.X, last.X))
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{
		Family:  config.FamilyQuadrature,
		Method:  methodArg(args, config.DefaultMethod),
		Problem: quadProblem,
		Params:  config.ParamsConfig{A: quadA, B: quadB, N: quadN},
	}

	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	printResult(res)
	return maybeSave(cfg, res)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{
		Family:  config.FamilyRoot,
		Method:  methodArg(args, experiment.MethodBisection),
		Problem: rootProblem,
		Params:  config.ParamsConfig{A: rootA, B: rootB, Epsilon: rootEps, MaxIter: rootMaxIter},
	}

	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	printResult(res)
	return maybeSave(cfg, res)
}

func maybeSave(cfg *config.Config, res *experiment.Result) error {
	if !saveRun {
		return nil
	}
	return save(cfg, res)
}

func save(cfg *config.Config, res *experiment.Result) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

// loadConfig resolves --config and --preset; the config file wins when both
// are given.
func loadConfig(path, name string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	if name == "" {
		return nil, fmt.Errorf("need --config or --preset (available: %v)", config.ListPresets(""))
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(""))
	}
	return cfg, nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile, preset)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("n") {
		cfg.Params.N = panels
		cfg.Params.H = 0
	}

	fmt.Printf("running %s %s on %s...\n", cfg.Family, cfg.Method, cfg.Problem)
	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	printResult(res)
	return save(cfg, res)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile, sweepPreset)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Method = args[0]
	}
	if cmd.Flags().Changed("ns") {
		cfg.Sweep.Ns = sweepNs
	}
	if cmd.Flags().Changed("workers") {
		cfg.Sweep.Workers = sweepWorkers
	}

	res, err := newExperiment(cfg).Sweep(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("convergence of %s on %s", res.Method, res.Problem)))
	fmt.Println()
	printSamples(os.Stdout, res.Samples)
	fmt.Println()
	fmt.Println(viz.Fieldf("exact", "%.12g", res.Exact))
	fmt.Println(viz.Fieldf("order", "%.3f", res.Order))
	fmt.Println(viz.Field("monotone", analysis.Monotone(res.Samples)))
	fmt.Println(viz.Field("evals", res.Evals))
	fmt.Println()
	fmt.Println(viz.PlotLogError(res.Samples, "log10 |error| vs sweep step"))
	fmt.Println()
	return save(cfg, res)
}

// parseAxis reads one --param value of the form name=v1,v2,...
func parseAxis(axis string) (string, []float64, error) {
	name, list, ok := strings.Cut(axis, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad --param %q, want name=v1,v2,...", axis)
	}
	var vals []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --param %q: %w", axis, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

// Without a method argument, tune runs the composite rule on the sine preset.
const (
	defaultTunePreset = "sine"
	defaultTuneMethod = "simpson_composite"
	defaultTuneAxis   = "n=4,8,16,32,64"
	defaultTuneMaxErr = 1e-4
)

func tuneConfig(path, name string, args []string) (*config.Config, error) {
	cfg, err := loadConfig(path, name)
	if err != nil {
		return nil, err
	}
	switch {
	case len(args) > 0:
		cfg.Method = args[0]
	case path == "" && name == defaultTunePreset:
		cfg.Method = defaultTuneMethod
	}
	return cfg, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := tuneConfig(configFile, tunePreset, args)
	if err != nil {
		return err
	}

	var names []string
	var ranges [][]float64
	for _, axis := range tuneParams {
		name, vals, err := parseAxis(axis)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	g := optim.NewGridSearch(names, ranges)
	g.MaxAbsErr = tuneMaxErr

	best, err := g.Search(cmd.Context(), cfg, experiment.NewRegistry(), tuneObjective)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best.Params))
	for k := range best.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, best.Params[k])
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("tuned %s on %s", cfg.Method, cfg.Problem)))
	fmt.Println(viz.Field("best", strings.Join(parts, " ")))
	fmt.Println(viz.Fieldf(tuneObjective, "%g", best.Value))
	fmt.Println(viz.Fieldf("abs err", "%.3e", best.Result.AbsErr))
	fmt.Println(viz.Field("evaluated", fmt.Sprintf("%d points, %d failed", best.Evaluated, best.Failed)))
	return nil
}

func printSamples(out io.Writer, samples []analysis.Sample) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tVALUE\tABS_ERR\tRATIO")
	for i, s := range samples {
		ratio := "-"
		if i > 0 && s.AbsErr > 0 {
			ratio = fmt.Sprintf("%.2f", samples[i-1].AbsErr/s.AbsErr)
		}
		fmt.Fprintf(w, "%d\t%.12g\t%.3e\t%s\n", s.N, s.Value, s.AbsErr, ratio)
	}
	w.Flush()
}

func printResult(res *experiment.Result) {
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s %s on %s", res.Family, res.Method, res.Problem)))
	fmt.Println(viz.Fieldf("value", "%.12g", res.Value))
	if res.HasExact {
		fmt.Println(viz.Fieldf("exact", "%.12g", res.Exact))
		fmt.Println(viz.Fieldf("abs err", "%.3e", res.AbsErr))
	}
	fmt.Println(viz.Field("evals", res.Evals))
	if res.Iterations > 0 {
		fmt.Println(viz.Field("iterations", res.Iterations))
	}
	fmt.Println(viz.Field("elapsed", res.Elapsed))
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
	fmt.Fprintln(w, "ID\tKIND\tFAMILY\tMETHOD\tPROBLEM\tTIME\tVALUE\tABS_ERR")

	for _, run := range runs {
		value, absErr := "-", "-"
		if run.Value != nil {
			value = fmt.Sprintf("%.10g", *run.Value)
		}
		if run.AbsErr != nil {
			absErr = fmt.Sprintf("%.3e", *run.AbsErr)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Family,
			run.Method,
			run.Problem,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			value,
			absErr,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(meta.ID))
	fmt.Println(viz.Field("kind", meta.Kind))
	fmt.Println(viz.Field("family", meta.Family))
	fmt.Println(viz.Field("method", meta.Method))
	fmt.Println(viz.Field("problem", meta.Problem))
	fmt.Println(viz.Field("time", meta.Timestamp.Format("2006-01-02 15:04:05")))
	fmt.Println(viz.Fieldf("params", "%+v", meta.Params))
	if meta.Value != nil {
		fmt.Println(viz.Fieldf("value", "%.12g", *meta.Value))
	} else {
		fmt.Println(viz.Field("value", "non-finite"))
	}
	if meta.Exact != nil {
		fmt.Println(viz.Fieldf("exact", "%.12g", *meta.Exact))
	}
	if meta.AbsErr != nil {
		fmt.Println(viz.Fieldf("abs err", "%.3e", *meta.AbsErr))
	}
	if meta.Order != nil {
		fmt.Println(viz.Fieldf("order", "%.3f", *meta.Order))
	}
	fmt.Println(viz.Field("evals", meta.Evals))
	fmt.Println(viz.Field("samples", fmt.Sprintf("%d (%s)", len(samples.Rows), strings.Join(samples.Columns, ", "))))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s on %s\n", meta.Method, meta.Problem)
	fmt.Printf("samples: %d\n\n", len(samples.Rows))

	switch strings.Join(samples.Columns, ",") {
	case "x,y":
		ys := make([]float64, len(samples.Rows))
		for i, row := range samples.Rows {
			ys[i] = row[1]
		}
		fmt.Println(viz.Plot(ys, "y(x)"))
	case "n,value,abs_err":
		points := make([]analysis.Sample, len(samples.Rows))
		for i, row := range samples.Rows {
			points[i] = analysis.Sample{N: int(row[0]), Value: row[1], AbsErr: row[2]}
		}
		printSamples(os.Stdout, points)
		fmt.Println()
		fmt.Println(viz.PlotLogError(points, "log10 |error| vs sweep step"))
	default:
		return fmt.Errorf("run %s has nothing to plot", meta.ID)
	}
	return nil
}

// withOutput hands fn the --out file, or stdout when none was given.
func withOutput(fn func(w io.Writer) error) error {
	if outFile == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func listPresets(cmd *cobra.Command, args []string) error {
	family := methodArg(args, "")
	names := config.ListPresets(family)
	if len(names) == 0 {
		fmt.Printf("no presets for family: %s\n", family)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFAMILY\tMETHOD\tPROBLEM")
	for _, name := range names {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, cfg.Family, cfg.Method, cfg.Problem)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	families := []string{config.FamilyODE, config.FamilyQuadrature, config.FamilyRoot}
	if family != "" {
		families = []string{family}
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tMETHODS\tPROBLEMS")
	for _, fam := range families {
		fmt.Fprintf(w, "%s\t%s\t%s\n", fam,
			strings.Join(registry.ListMethods(fam), ", "),
			strings.Join(registry.ListProblems(fam), ", "))
	}
	return w.Flush()
}

// demoRuns are the three textbook drivers: the cooling ball with both
// Runge-Kutta orders, sin over [0, π] with every rule, and √2 both ways.
var demoRuns = []struct {
	preset  string
	methods []string
}{
	{"cooling_ball", []string{"rk2", "rk4"}},
	{"sine", []string{"riemann", "trapezoid", "simpson", "simpson_composite"}},
	{"sqrt2_bisection", []string{experiment.MethodBisection}},
	{"sqrt2_newton", []string{experiment.MethodNewton}},
}

func runDemo(ctx context.Context, out io.Writer, collector *metrics.Collector) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMETHOD\tVALUE\tEXACT\tABS_ERR\tEVALS")

	for _, d := range demoRuns {
		for _, m := range d.methods {
			cfg := config.GetPreset(d.preset)
			cfg.Method = m

			exp := newExperiment(cfg)
			if collector != nil {
				exp.SetCollector(collector)
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", d.preset, m, err)
			}
			fmt.Fprintf(w, "%s\t%s\t%.10g\t%.10g\t%.3e\t%d\n",
				d.preset, m, res.Value, res.Exact, res.AbsErr, res.Evals)
		}
	}
	return w.Flush()
}

func showMetrics(cmd *cobra.Command, args []string) error {
	collector := metrics.NewCollector()
	if err := runDemo(cmd.Context(), io.Discard, collector); err != nil {
		return err
	}

	if promFormat {
		families, err := collector.Registry().Gather()
		if err != nil {
			return err
		}
		enc := expfmt.NewEncoder(os.Stdout, expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return err
			}
		}
		return nil
	}

	samples, err := collector.Snapshot()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tLABELS\tVALUE")
	for _, s := range samples {
		fmt.Fprintf(w, "%s\t%s\t%g\n", s.Name, s.Labels, s.Value)
	}
	return w.Flush()
}

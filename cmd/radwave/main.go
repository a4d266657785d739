package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/numlab/radwave/internal/analysis"
	"github.com/numlab/radwave/internal/config"
	"github.com/numlab/radwave/internal/numerov"
	"github.com/numlab/radwave/internal/potential"
	"github.com/numlab/radwave/internal/quantum"
	"github.com/numlab/radwave/internal/store"
	"github.com/numlab/radwave/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	energy      float64
	angularL    int
	depth       float64
	radius      float64
	diffuseness float64
	imagDepth   float64
	mu          float64
	step        float64
	rmax        float64
	potName     string
	startName   string
	strict      bool

	hFine   float64
	hTest   float64
	channel int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "radwave",
		Short: "radial Schrödinger wavefunctions via the Numerov method",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".radwave", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "integrate a single-channel wavefunction",
		RunE:  runSolve,
	}
	addPhysicsFlags(solveCmd)

	coupledCmd := &cobra.Command{
		Use:   "coupled",
		Short: "integrate a coupled-channels system",
		Long:  "Integrates all channels of a coupled system. Channels and couplings come from a preset or a config file.",
		RunE:  runCoupled,
	}
	addPhysicsFlags(coupledCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "estimate truncation error from two step sizes",
		RunE:  runConverge,
	}
	addPhysicsFlags(convergeCmd)
	convergeCmd.Flags().Float64Var(&hFine, "h-fine", 0.005, "fine step size")
	convergeCmd.Flags().Float64Var(&hTest, "h-test", 0.01, "test step size (integer multiple of h-fine)")

	wronskianCmd := &cobra.Command{
		Use:   "wronskian [run_id]",
		Short: "check the discrete Wronskian invariant of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  runWronskian,
	}
	wronskianCmd.Flags().IntVar(&channel, "channel", 0, "channel index to check")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  runList,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a stored run interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's samples as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run's metadata and samples as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	potentialsCmd := &cobra.Command{
		Use:   "potentials",
		Short: "list registered potential shapes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range potential.Names() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(solveCmd, coupledCmd, convergeCmd, wronskianCmd,
		listCmd, plotCmd, viewCmd, exportCSVCmd, exportJSONCmd, presetsCmd, potentialsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&energy, "energy", config.DefaultEnergy, "incident energy (MeV)")
	cmd.Flags().IntVar(&angularL, "l", 0, "angular momentum")
	cmd.Flags().Float64Var(&depth, "v0", config.DefaultDepth, "potential depth (MeV)")
	cmd.Flags().Float64Var(&radius, "r0", config.DefaultRadius, "potential radius (fm)")
	cmd.Flags().Float64Var(&diffuseness, "a0", config.DefaultDiffuseness, "potential diffuseness (fm)")
	cmd.Flags().Float64Var(&imagDepth, "w0", 0, "imaginary depth (MeV)")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "reduced mass (MeV/c²)")
	cmd.Flags().Float64Var(&step, "h", config.DefaultStep, "radial step (fm)")
	cmd.Flags().Float64Var(&rmax, "rmax", config.DefaultRMax, "maximum radius (fm)")
	cmd.Flags().StringVar(&potName, "potential", "woods-saxon", "potential shape")
	cmd.Flags().StringVar(&startName, "start", "bessel-l1", "origin start strategy")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail fast on numerical instability")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file and changed flags, in increasing
// precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("energy") {
		cfg.Energy = energy
	}
	if flags.Changed("l") {
		cfg.L = angularL
	}
	if flags.Changed("v0") {
		cfg.Depth = depth
	}
	if flags.Changed("r0") {
		cfg.Radius = radius
	}
	if flags.Changed("a0") {
		cfg.Diffuseness = diffuseness
	}
	if flags.Changed("w0") {
		cfg.ImagDepth = imagDepth
	}
	if flags.Changed("mu") {
		cfg.Mu = mu
	}
	if flags.Changed("h") {
		cfg.Step = step
	}
	if flags.Changed("rmax") {
		cfg.RMax = rmax
	}
	if flags.Changed("potential") {
		cfg.Potential = potName
	}
	if flags.Changed("start") {
		cfg.Start = startName
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}
	return cfg, nil
}

func metaFromConfig(cfg *config.Config, channels []quantum.Channel) store.RunMetadata {
	meta := store.RunMetadata{
		Potential:   cfg.Potential,
		Depth:       cfg.Depth,
		Radius:      cfg.Radius,
		Diffuseness: cfg.Diffuseness,
		Mu:          cfg.Mu,
		Step:        cfg.Step,
		RMax:        cfg.RMax,
		Start:       cfg.Start,
	}
	for _, ch := range channels {
		meta.Channels = append(meta.Channels, store.ChannelMeta{L: ch.L, Energy: ch.Energy, Label: ch.Label})
	}
	return meta
}

func openStore() (*store.Store, error) {
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p, err := cfg.Problem()
	if err != nil {
		return err
	}

	u, err := numerov.Solve(p)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	runID, err := st.Save(metaFromConfig(cfg, []quantum.Channel{{L: cfg.L, Energy: cfg.Energy}}),
		[]quantum.Wavefunction{u})
	if err != nil {
		return err
	}

	fmt.Println(viz.Plot(u, p.Grid, ""))
	fmt.Println()

	variation := analysis.Variation(analysis.WronskianCheck(p, analysis.Normalize(u)))
	fmt.Printf("run: %s\n", runID)
	fmt.Printf("points: %d   wronskian variation: %.3e\n", len(u), variation)
	return nil
}

func runCoupled(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := cfg.System()
	if err != nil {
		return err
	}

	sol, err := s.Solve()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	runID, err := st.Save(metaFromConfig(cfg, s.Channels), sol)
	if err != nil {
		return err
	}

	labels := make([]string, len(s.Channels))
	for i, ch := range s.Channels {
		labels[i] = ch.Label
	}
	fmt.Println(viz.PlotChannels(sol, labels, s.Grid))
	fmt.Printf("run: %s  (%d channels, %d couplings)\n", runID, len(s.Channels), len(s.Couplings))
	return nil
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p, err := cfg.Problem()
	if err != nil {
		return err
	}

	rep, err := analysis.Convergence(p, hFine, hTest)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "h fine\t%g\n", hFine)
	fmt.Fprintf(w, "h test\t%g\n", hTest)
	fmt.Fprintf(w, "step ratio\t%d\n", rep.Ratio)
	fmt.Fprintf(w, "compared points\t%d\n", len(rep.Pointwise))
	fmt.Fprintf(w, "max error\t%.3e\n", rep.MaxErr)
	fmt.Fprintf(w, "mean error\t%.3e\n", rep.MeanErr)
	return w.Flush()
}

func runWronskian(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	meta, channels, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if channel < 0 || channel >= len(channels) {
		return fmt.Errorf("%w: %d of %d channels", quantum.ErrChannelIndex, channel, len(channels))
	}
	if channel >= len(meta.Channels) {
		return fmt.Errorf("run %s has no channel metadata for index %d", args[0], channel)
	}

	model, err := potential.Lookup(meta.Potential)
	if err != nil {
		return err
	}
	p := numerov.Problem{
		Energy:     meta.Channels[channel].Energy,
		L:          meta.Channels[channel].L,
		Params:     potential.Params{Depth: meta.Depth, Radius: meta.Radius, Diffuseness: meta.Diffuseness},
		Model:      model,
		MassFactor: quantum.MassFactor(meta.Mu),
		Grid:       meta.Grid(),
	}

	// For coupled runs this uses the diagonal f only, so the invariant is
	// approximate once couplings are strong.
	w := analysis.WronskianCheck(p, analysis.Normalize(channels[channel]))

	fmt.Println(viz.Plot(w, p.Grid, fmt.Sprintf("W_n, channel %d", channel)))
	fmt.Printf("\nvariation: %.3e over %d interior points\n", analysis.Variation(w), len(w))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	runs, err := st.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOTENTIAL\tCHANNELS\tH\tRMAX\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%s\n",
			r.ID, r.Potential, len(r.Channels), r.Step, r.RMax, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	meta, channels, err := st.Load(args[0])
	if err != nil {
		return err
	}

	labels := make([]string, len(meta.Channels))
	for i, ch := range meta.Channels {
		labels[i] = ch.Label
	}
	fmt.Println(viz.PlotChannels(channels, labels, meta.Grid()))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	meta, channels, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return viz.Run(meta, channels)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	f, err := os.Open(st.CSVPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	meta, channels, err := st.Load(args[0])
	if err != nil {
		return err
	}

	out := struct {
		store.RunMetadata
		Wavefunctions []quantum.Wavefunction `json:"wavefunctions"`
	}{meta, channels}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

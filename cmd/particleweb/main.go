package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/particleweb/internal/config"
	"github.com/san-kum/particleweb/internal/gui"
	"github.com/san-kum/particleweb/internal/reveal"
	"github.com/san-kum/particleweb/internal/storage"
	"github.com/san-kum/particleweb/internal/tui"
	"github.com/san-kum/particleweb/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	theme      string
	frameRate  int
	seed       int64
	headline   string
	// Headless runs
	frames  int
	width   float64
	height  float64
	outFile string
	pointer string
	// Window size for the gui host
	winWidth  int
	winHeight int
)

// main registers the particleweb commands and runs the terminal host when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	log.SetFlags(0)
	log.SetPrefix("particleweb: ")

	rootCmd := &cobra.Command{
		Use:          "particleweb",
		Short:        "drifting, linking particles",
		RunE:         runLive,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".particleweb", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the web in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addLiveFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the web in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "target frames per second")
	guiCmd.Flags().StringVar(&headline, "headline", "hello, web", "headline text")
	guiCmd.Flags().IntVar(&winWidth, "width", 1280, "window width")
	guiCmd.Flags().IntVar(&winHeight, "height", 720, "window height")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "run headless and write the last frame as svg",
		Args:  cobra.NoArgs,
		RunE:  renderWeb,
	}
	addHeadlessFlags(renderCmd)
	renderCmd.Flags().StringVar(&outFile, "out", "web.svg", "output svg file")
	renderCmd.Flags().StringVar(&pointer, "pointer", "", "hold the pointer at x,y")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame cost and save the run",
		Args:  cobra.NoArgs,
		RunE:  benchWeb,
	}
	addHeadlessFlags(benchCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved bench runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved bench run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(liveCmd, guiCmd, renderCmd, benchCmd, listCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	cmd.Flags().StringVar(&headline, "headline", "hello, web", "headline text")
}

func addHeadlessFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", config.DefaultBenchFrames, "frames to run")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "viewport width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "viewport height")
}

// resolveConfig applies the preset, then the config file, then the explicitly set
// flags shared by every command. It returns the config and the name runs are saved under.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "classic"

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, "", err
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
		cfg, name = c, "custom"
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, name, nil
}

// loadConfig resolves the config for the interactive hosts.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

// loadHeadlessConfig also applies the frame count and viewport flags of render and bench.
func loadHeadlessConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Bench.Frames = frames
	}
	if flags.Changed("width") {
		cfg.Bench.Width = width
	}
	if flags.Changed("height") {
		cfg.Bench.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func revealTiming(cfg *config.Config) reveal.Timing {
	return reveal.Timing{
		SweepMs:           cfg.Reveal.SweepMs,
		SettleEarlyMs:     cfg.Reveal.SettleEarlyMs,
		LoadRevealDelayMs: cfg.Reveal.LoadRevealDelayMs,
		FirstFrameDelay:   cfg.Reveal.FirstFrameDelay,
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !knownTheme(cfg.Theme) {
		log.Printf("unknown theme %q, using %s", cfg.Theme, config.DefaultTheme)
	}

	return tui.Run(tui.Options{
		Params:   cfg.Web.Params(),
		Timing:   revealTiming(cfg),
		Theme:    cfg.Theme,
		FPS:      cfg.FPS,
		Seed:     cfg.Seed,
		Headline: headline,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	return gui.Run(gui.Options{
		Params:   cfg.Web.Params(),
		Timing:   revealTiming(cfg),
		FPS:      cfg.FPS,
		Seed:     cfg.Seed,
		Headline: headline,
		Width:    winWidth,
		Height:   winHeight,
	})
}

func knownTheme(name string) bool {
	for _, n := range viz.ThemeNames() {
		if n == name {
			return true
		}
	}
	return false
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tVIEWPORT\tFRAMES\tPARTICLES\tMEAN\tP95")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%d\t%d\t%.3fms\t%.3fms\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Particles,
			run.MeanMs,
			run.P95Ms,
		)
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDENSITY\tCOUNT\tLINK DIST\tDAMPING\tSWEEP")
	for _, name := range config.ListPresets() {
		c, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t1/%.0f\t%d-%d\t%.0f-%.0f\t%g\t%.0fms\n",
			name,
			c.Web.DensityDivisor,
			c.Web.MinCount, c.Web.MaxCount,
			c.Web.MinLinkDist, c.Web.MaxLinkDist,
			c.Web.Damping,
			c.Reveal.SweepMs,
		)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	path := "particleweb.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return err
		}
		cfg = p
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

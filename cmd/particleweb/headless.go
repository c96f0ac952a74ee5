package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particleweb/internal/config"
	"github.com/san-kum/particleweb/internal/export"
	"github.com/san-kum/particleweb/internal/host"
	"github.com/san-kum/particleweb/internal/metrics"
	"github.com/san-kum/particleweb/internal/reveal"
	"github.com/san-kum/particleweb/internal/storage"
	"github.com/san-kum/particleweb/internal/web"
)

// headless is a web driven by a manual scheduler and clock.
type headless struct {
	web   *web.Web
	sched *host.Scheduler
	clock *host.ManualClock
	seq   *reveal.Sequencer
	seed  int64
}

func newHeadless(cfg *config.Config, surf web.Surface) *headless {
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	h := &headless{
		sched: host.NewScheduler(),
		clock: &host.ManualClock{},
		seed:  s,
	}
	h.web = web.New(cfg.Web.Params(), web.Host{
		Window:    &host.FixedWindow{W: cfg.Bench.Width, H: cfg.Bench.Height, DPR: 1},
		Surface:   surf,
		Scheduler: h.sched,
		Clock:     h.clock,
	}, rand.New(rand.NewSource(s)))

	h.seq = reveal.New(h.web, revealTiming(cfg), false, 0)
	h.web.AddObserver(h.seq)
	return h
}

// step advances the clock by ms and runs one frame.
func (h *headless) step(ms float64) {
	now := h.clock.Advance(ms)
	h.seq.Tick(now)
	h.sched.RunFrame(now)
}

func parsePoint(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

func renderWeb(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadHeadlessConfig(cmd)
	if err != nil {
		return err
	}

	held := pointer != ""
	var px, py float64
	if held {
		if px, py, err = parsePoint(pointer); err != nil {
			return err
		}
	}

	svg := export.NewSVG()
	h := newHeadless(cfg, svg)
	h.web.Start()
	h.seq.Loaded(0)

	for i := 0; i < cfg.Bench.Frames; i++ {
		if held {
			h.web.PointerMove(px, py)
		}
		h.step(cfg.Bench.FrameMs)
	}

	if err := svg.WriteFile(outFile); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	fmt.Printf("rendered %d frames (%d particles) to %s\n", h.web.Frames(), len(h.web.Particles()), outFile)
	return nil
}

func benchWeb(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadHeadlessConfig(cmd)
	if err != nil {
		return err
	}
	n := cfg.Bench.Frames

	h := newHeadless(cfg, host.NewRecorder())
	ms := metrics.Defaults()
	for _, m := range ms {
		h.web.AddObserver(m)
	}
	history := metrics.NewHistory(n)
	h.web.AddObserver(history)
	h.web.Start()

	// The pointer circles the viewport center so the attraction path is measured.
	cx, cy := cfg.Bench.Width/2, cfg.Bench.Height/2
	r := math.Min(cx, cy) / 2

	var cost metrics.Timing
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		h.web.PointerMove(cx+r*math.Cos(a), cy+r*math.Sin(a))

		start := time.Now()
		h.step(cfg.Bench.FrameMs)
		cost.Add(time.Since(start))
	}

	run := &storage.Run{
		Meta: storage.RunMetadata{
			Preset:    name,
			Seed:      h.seed,
			Width:     cfg.Bench.Width,
			Height:    cfg.Bench.Height,
			Frames:    n,
			Particles: len(h.web.Particles()),
			MeanMs:    cost.Mean(),
			P95Ms:     cost.Percentile(95),
			Metrics:   metrics.Collect(ms),
		},
		Frames: history.Frames(),
		CostMs: cost.Samples(),
	}

	fmt.Printf("benchmarking %s at %.0fx%.0f\n\n", name, cfg.Bench.Width, cfg.Bench.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tPARTICLES\tMEAN\tP95\tMAX\tFRAMES/SEC")
	fmt.Fprintf(w, "%d\t%d\t%.3fms\t%.3fms\t%.3fms\t%.0f\n",
		n, run.Meta.Particles, cost.Mean(), cost.Percentile(95), cost.Max(), 1000/math.Max(cost.Mean(), 1e-6))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(cost.Samples(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame cost (ms)"),
	))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(run)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	log.Printf("saved run %s to %s", id, dataDir)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, costs, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("run %s has no frames", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s, seed: %d, viewport: %.0fx%.0f, particles: %d\n\n",
		meta.Preset, meta.Seed, meta.Width, meta.Height, meta.Particles)

	links := make([]float64, len(stats))
	for i, s := range stats {
		links[i] = metrics.Links(s)
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"links per frame", links},
		{"frame cost (ms)", costs},
	} {
		if len(series.data) == 0 {
			continue
		}
		fmt.Println(asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Println()
	}

	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-12s %.4f\n", name, meta.Metrics[name])
	}
	return nil
}

// Package gui hosts the particle web in a resizable raylib window.
package gui

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particleweb/internal/host"
	"github.com/san-kum/particleweb/internal/metrics"
	"github.com/san-kum/particleweb/internal/reveal"
	"github.com/san-kum/particleweb/internal/web"
)

var (
	ColBg      = rl.NewColor(10, 10, 15, 255)
	ColText    = rl.NewColor(140, 140, 150, 255)
	ColTextDim = rl.NewColor(60, 60, 70, 255)
	ColShine   = rl.NewColor(245, 245, 255, 255)
)

const (
	headerHeight = 64
	headlineSize = 32
)

type Options struct {
	Params   web.Params
	Timing   reveal.Timing
	FPS      int
	Seed     int64
	Headline string
	Width    int
	Height   int
}

// window reports the raylib screen minus the headline bar. Raylib screen units are
// already logical pixels on high-DPI displays.
type window struct{}

func (window) InnerSize() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight() - headerHeight)
}

func (window) DevicePixelRatio() float64 {
	return float64(rl.GetWindowScaleDPI().X)
}

// clock is raylib's monotonic timer in milliseconds.
type clock struct{}

func (clock) Now() float64 { return rl.GetTime() * 1000 }

type App struct {
	opts    Options
	web     *web.Web
	sched   *host.Scheduler
	surf    *Surface
	seq     *reveal.Sequencer
	history *metrics.History
	clk     clock

	paused    bool
	showStats bool
	swept     bool
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "particleweb")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

// NewApp creates the app; the raylib window must already be open.
func NewApp(opts Options) *App {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		opts:    opts,
		sched:   host.NewScheduler(),
		surf:    NewSurface(),
		history: metrics.NewHistory(240),
	}
	a.surf.SetOrigin(0, headerHeight)
	a.web = web.New(opts.Params, web.Host{
		Window:    window{},
		Surface:   a.surf,
		Scheduler: a.sched,
		Clock:     a.clk,
	}, rand.New(rand.NewSource(seed)))

	a.seq = reveal.New(a.web, opts.Timing, opts.Headline != "", a.clk.Now())
	a.web.AddObserver(a.seq)
	a.web.AddObserver(a.history)
	return a
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	initWindow(opts)
	defer rl.CloseWindow()

	a := NewApp(opts)
	a.web.Start()
	a.seq.Loaded(a.clk.Now())

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		a.update()
		a.draw()
	}
	a.web.Stop()
	return nil
}

func (a *App) update() {
	if rl.IsWindowResized() {
		a.web.Resize()
	}

	d := rl.GetMouseDelta()
	if d.X != 0 || d.Y != 0 {
		m := rl.GetMousePosition()
		a.web.PointerMove(float64(m.X), float64(m.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.paused = !a.paused
	case rl.IsKeyPressed(rl.KeyR):
		a.web.Reveal()
	case rl.IsKeyPressed(rl.KeyS):
		a.showStats = !a.showStats
	}

	now := a.clk.Now()
	if !a.swept && a.seq.Progress(now, 0) >= 1 {
		a.swept = true
		a.seq.AnimationEnd()
	}
	a.seq.Tick(now)
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.stepOrReplay(a.clk.Now())
	a.drawHeadline()
	if a.showStats {
		a.drawStats()
	}
	footer := fmt.Sprintf("© %d   Q quit   SPACE pause   S stats   R reveal", time.Now().Year())
	rl.DrawText(footer, 16, int32(rl.GetScreenHeight())-24, 14, ColTextDim)

	rl.EndDrawing()
}

// stepOrReplay runs the pending web frame, or redraws the last one when paused or
// when nothing was scheduled.
func (a *App) stepOrReplay(now float64) {
	if a.paused || a.sched.RunFrame(now) == 0 {
		a.surf.Replay()
	}
}

// drawHeadline fades the headline in with the sweep and draws it solid once settled.
func (a *App) drawHeadline() {
	if a.opts.Headline == "" {
		return
	}
	p := a.seq.Progress(a.clk.Now(), 0)
	col := ColShine
	if !a.seq.Settled() {
		col = rl.ColorAlpha(ColText, float32(0.3+0.7*p))
	}
	w := rl.MeasureText(a.opts.Headline, headlineSize)
	x := (int32(rl.GetScreenWidth()) - w) / 2
	rl.DrawText(a.opts.Headline, x, (headerHeight-headlineSize)/2, headlineSize, col)
}

func (a *App) drawStats() {
	last, ok := a.history.Last()
	if !ok {
		return
	}
	lines := []string{
		fmt.Sprintf("fps        %d", rl.GetFPS()),
		fmt.Sprintf("particles  %d", last.Particles),
		fmt.Sprintf("links      %d / %d", last.Links, last.Candidates),
		fmt.Sprintf("link dist  %.1f", last.LinkDist),
		fmt.Sprintf("pointer    %.2f", last.Influence),
		fmt.Sprintf("speed      %.4f", last.MeanSpeed),
	}
	for i, l := range lines {
		rl.DrawText(l, 16, headerHeight+16+int32(i)*18, 14, ColText)
	}
}

// Package tui hosts the particle web in a terminal with Bubble Tea.
//
// The bubbletea event loop is the web's single thread: window-size messages resize it,
// mouse motion feeds the pointer and a fixed-rate tick drives the frame scheduler.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/particleweb/internal/export"
	"github.com/san-kum/particleweb/internal/host"
	"github.com/san-kum/particleweb/internal/metrics"
	"github.com/san-kum/particleweb/internal/reveal"
	"github.com/san-kum/particleweb/internal/viz"
	"github.com/san-kum/particleweb/internal/web"
)

// A terminal cell counts as an 8x16 pixel box.
const (
	cellW      = 8.0
	cellH      = 16.0
	headerRows = 2
	footerRows = 1
	statsWidth = 38
	historyCap = 120
)

type FrameMsg time.Time

type Options struct {
	Params   web.Params
	Timing   reveal.Timing
	Theme    string
	FPS      int
	Seed     int64
	Headline string
}

type termWindow struct {
	cols, rows int
}

func (w *termWindow) InnerSize() (float64, float64) {
	return float64(w.cols) * cellW, float64(w.rows) * cellH
}

func (w *termWindow) DevicePixelRatio() float64 { return 1 }

// Model is the bubbletea model wrapping one particle web.
type Model struct {
	opts    Options
	web     *web.Web
	sched   *host.Scheduler
	clock   *host.WallClock
	win     *termWindow
	surf    *viz.Surface
	seq     *reveal.Sequencer
	history *metrics.History

	theme  viz.Theme
	shades []lipgloss.Style

	width, height int
	started       bool
	paused        bool
	showStats     bool
	swept         bool
	status        string
}

func New(opts Options) *Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Headline == "" {
		opts.Headline = "hello, web"
	}

	m := &Model{
		opts:    opts,
		sched:   host.NewScheduler(),
		clock:   host.NewWallClock(),
		win:     &termWindow{cols: 80, rows: 24 - headerRows - footerRows},
		surf:    viz.NewSurface(cellW / 2),
		history: metrics.NewHistory(historyCap),
		width:   80,
		height:  24,
	}
	m.surf.SetOrigin(0, headerRows*cellH)
	m.setTheme(viz.GetTheme(opts.Theme))

	m.web = web.New(opts.Params, web.Host{
		Window:    m.win,
		Surface:   m.surf,
		Scheduler: m.sched,
		Clock:     m.clock,
	}, seededRand(opts.Seed))
	m.seq = reveal.New(m.web, opts.Timing, true, m.clock.Now())
	m.web.AddObserver(m.seq)
	m.web.AddObserver(m.history)
	return m
}

// Run starts the terminal program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		if !m.started {
			m.started = true
			m.web.Start()
			m.seq.Loaded(m.clock.Now())
		} else {
			m.web.Resize()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.web.PointerMove(float64(msg.X)*cellW+cellW/2, float64(msg.Y)*cellH+cellH/2)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		now := m.clock.Now()
		if !m.swept && m.seq.Progress(now, 0) >= 1 {
			m.swept = true
			m.seq.AnimationEnd()
		}
		m.seq.Tick(now)
		if !m.paused {
			m.sched.RunFrame(now)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.web.Stop()
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "s":
		m.showStats = !m.showStats
		m.layout()
		if m.started {
			m.web.Resize()
		}
	case "t":
		m.setTheme(viz.NextTheme(m.theme.Name))
		m.status = "theme: " + m.theme.Name
	case "r":
		m.web.Reveal()
	case "p":
		m.status = m.snapshot()
	}
	return m, nil
}

func (m *Model) setTheme(t viz.Theme) {
	m.theme = t
	m.shades = t.ShadeStyles()
}

// layout fits the canvas to the terminal, leaving room for the header, footer and
// the stats panel when shown.
func (m *Model) layout() {
	cols := m.width
	if m.showStats {
		cols -= statsWidth
	}
	m.win.cols = max(cols, 1)
	m.win.rows = max(m.height-headerRows-footerRows, 1)
}

func (m *Model) snapshot() string {
	name := fmt.Sprintf("web_%d.svg", time.Now().Unix())
	svg := export.CanvasToSVG(m.surf.Canvas, m.surf.Scale, string(m.theme.Shades[len(m.theme.Shades)-1]))
	if err := os.WriteFile(name, []byte(svg), 0644); err != nil {
		return "snapshot failed: " + err.Error()
	}
	return "saved " + name
}

func (m *Model) View() string {
	now := m.clock.Now()
	var b strings.Builder

	b.WriteString(viz.Headline(m.opts.Headline, m.seq.Progress(now, 0), m.seq.Settled(), m.theme))
	b.WriteString(strings.Repeat("\n", headerRows))

	canvas := m.surf.Canvas.Render(m.shades)
	if m.showStats {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, viz.Panel.Render(m.statsView()))
	}
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) statsView() string {
	var s strings.Builder
	last, _ := m.history.Last()
	vp := m.web.Viewport()

	if m.history.Len() > 1 {
		chart := asciigraph.Plot(m.history.Series(metrics.Links),
			asciigraph.Height(5), asciigraph.Width(24), asciigraph.Caption("links"))
		s.WriteString(chart + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(viz.MetricLabel.Render(label) + viz.MetricValue.Render(value) + "\n")
	}
	row("Viewport", fmt.Sprintf("%.0fx%.0f", vp.Width, vp.Height))
	row("Particles", fmt.Sprintf("%d", last.Particles))
	row("Links", fmt.Sprintf("%d / %d", last.Links, last.Candidates))
	row("Link dist", fmt.Sprintf("%.1f", last.LinkDist))
	row("Pointer", fmt.Sprintf("%.2f", last.Influence))
	row("Opacity", fmt.Sprintf("%.2f", m.surf.Opacity()))
	row("Speed", viz.Sparkline(m.history.Series(metrics.Speed), 20))
	return s.String()
}

func (m *Model) footer() string {
	state := ""
	if m.paused {
		state = "PAUSED · "
	}
	if m.status != "" {
		state += m.status + " · "
	}
	return viz.KeyHint.Render(fmt.Sprintf("© %d · %sq quit · space pause · s stats · t theme · p snapshot",
		time.Now().Year(), state))
}

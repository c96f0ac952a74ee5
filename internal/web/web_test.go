package web_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particleweb/internal/host"
	"github.com/san-kum/particleweb/internal/web"
)

type harness struct {
	web   *web.Web
	win   *host.FixedWindow
	surf  *host.Recorder
	sched *host.Scheduler
	clock *host.ManualClock
}

func newHarness(w, h float64, seed int64) *harness {
	hs := &harness{
		win:   &host.FixedWindow{W: w, H: h, DPR: 1},
		surf:  host.NewRecorder(),
		sched: host.NewScheduler(),
		clock: &host.ManualClock{},
	}
	hs.web = web.New(web.DefaultParams(), web.Host{
		Window:    hs.win,
		Surface:   hs.surf,
		Scheduler: hs.sched,
		Clock:     hs.clock,
	}, rand.New(rand.NewSource(seed)))
	return hs
}

// frame advances the clock by ms and runs the pending frame.
func (hs *harness) frame(ms float64) {
	hs.sched.RunFrame(hs.clock.Advance(ms))
}

type statsCollector struct{ frames []web.FrameStats }

func (c *statsCollector) OnFrame(s web.FrameStats) { c.frames = append(c.frames, s) }

var _ = Describe("Particle field", func() {
	p := web.DefaultParams()

	DescribeTable("population follows viewport area",
		func(w, h float64, expected int) {
			Expect(web.ParticleCount(w, h, p)).To(Equal(expected))
		},
		Entry("1700x1000 sits on the floor", 1700.0, 1000.0, 100),
		Entry("empty viewport", 0.0, 0.0, 100),
		Entry("mid-size", 1600.0, 1300.0, 122),
		Entry("large viewport hits the ceiling", 3000.0, 2000.0, 180),
		Entry("just above the ceiling", 1920.0, 1600.0, 180),
	)

	It("keeps the count stable across regenerations", func() {
		f := web.NewField(p, rand.New(rand.NewSource(1)))
		f.Regenerate(1600, 1300)
		first := f.Len()
		f.Regenerate(1600, 1300)
		Expect(f.Len()).To(Equal(first))
	})

	It("initializes particles inside the viewport with small velocities", func() {
		f := web.NewField(p, rand.New(rand.NewSource(7)))
		f.Regenerate(1280, 720)
		for _, q := range f.Particles {
			Expect(q.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 1280)))
			Expect(q.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", 720)))
			Expect(math.Abs(q.VX)).To(BeNumerically("<=", 0.06))
			Expect(math.Abs(q.VY)).To(BeNumerically("<=", 0.06))
			Expect(q.R).To(And(BeNumerically(">=", 0.8), BeNumerically("<=", 2.1)))
			Expect(q.Valid()).To(BeTrue())
		}
	})
})

var _ = Describe("Pointer", func() {
	It("decays linearly over the window", func() {
		var ptr web.Pointer
		ptr.OnMove(10, 20, 1000)
		Expect(ptr.Active).To(BeTrue())
		Expect(ptr.Influence(1000, 200)).To(Equal(1.0))
		Expect(ptr.Influence(1100, 200)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(ptr.Influence(1200, 200)).To(Equal(0.0))
		Expect(ptr.Influence(5000, 200)).To(Equal(0.0))
	})

	It("treats timestamps before the move as fresh", func() {
		var ptr web.Pointer
		ptr.OnMove(0, 0, 500)
		Expect(ptr.Influence(400, 200)).To(Equal(1.0))
	})

	It("has no influence with a non-positive window", func() {
		var ptr web.Pointer
		ptr.OnMove(0, 0, 0)
		Expect(ptr.Influence(0, 0)).To(Equal(0.0))
	})

	It("has no influence before any move or after deactivation", func() {
		var ptr web.Pointer
		Expect(ptr.Influence(0, 200)).To(Equal(0.0))

		ptr.OnMove(0, 0, 100)
		ptr.Deactivate()
		Expect(ptr.Influence(100, 200)).To(Equal(0.0))
	})
})

var _ = Describe("Frame math", func() {
	p := web.DefaultParams()

	It("clamps the link distance", func() {
		Expect(web.LinkDistance(1700, 1000, p)).To(Equal(180.0))
		Expect(web.LinkDistance(0, 0, p)).To(Equal(100.0))
		Expect(web.LinkDistance(800, 600, p)).To(BeNumerically("~", math.Sqrt(480000)/6.5, 1e-9))
	})

	It("fades link opacity monotonically to zero at the threshold", func() {
		const linkDist = 150.0
		Expect(web.LinkAlpha(0, linkDist, p)).To(BeNumerically("~", 0.28, 1e-12))
		Expect(web.LinkAlpha(linkDist, linkDist, p)).To(Equal(0.0))
		prev := math.Inf(1)
		for d := 0.0; d <= linkDist; d += 7.5 {
			a := web.LinkAlpha(d, linkDist, p)
			Expect(a).To(BeNumerically("<", prev))
			prev = a
		}
	})

	It("boosts only inside the influence radius", func() {
		Expect(web.PointerBoost(0, 1, p)).To(BeNumerically("~", 2.4, 1e-12))
		Expect(web.PointerBoost(185, 1, p)).To(BeNumerically("~", 1.7, 1e-12))
		Expect(web.PointerBoost(370, 1, p)).To(Equal(1.0))
		Expect(web.PointerBoost(0, 0, p)).To(Equal(1.0))
	})

	It("pulls toward the pointer and stays finite at zero distance", func() {
		ax, ay := web.Attraction(100, 0, 0, 0, 1, p)
		Expect(ax).To(BeNumerically(">", 0))
		Expect(ay).To(Equal(0.0))

		ax, ay = web.Attraction(5, 5, 5, 5, 1, p)
		Expect(ax).To(Equal(0.0))
		Expect(ay).To(Equal(0.0))

		ax, ay = web.Attraction(100, 0, 0, 0, 0, p)
		Expect(ax).To(Equal(0.0))
		Expect(ay).To(Equal(0.0))
	})

	It("scales the pull by distance falloff, rate and influence", func() {
		pull := (1 - 100.0/370) * 0.02
		ax, ay := web.Attraction(100, 0, 0, 0, 1, p)
		Expect(ax).To(BeNumerically("~", 100/100.001*pull, 1e-15))
		Expect(ay).To(Equal(0.0))

		ax, ay = web.Attraction(0, 100, 0, 0, 0.5, p)
		Expect(ax).To(Equal(0.0))
		Expect(ay).To(BeNumerically("~", 100/100.001*pull*0.5, 1e-15))

		ax, ay = web.Attraction(370, 0, 0, 0, 1, p)
		Expect(ax).To(Equal(0.0))
		Expect(ay).To(Equal(0.0))
	})

	DescribeTable("wraps around the margin",
		func(v, expected float64) {
			Expect(web.Wrap(v, 800, 5)).To(Equal(expected))
		},
		Entry("past the far edge", 806.0, -5.0),
		Entry("past the near edge", -6.0, 805.0),
		Entry("inside the far margin", 805.0, 805.0),
		Entry("inside the near margin", -5.0, -5.0),
		Entry("interior", 400.0, 400.0),
	)
})

var _ = Describe("Web", func() {
	var hs *harness

	BeforeEach(func() {
		hs = newHarness(800, 600, 42)
	})

	It("sizes the surface for the pixel ratio", func() {
		hs.win.DPR = 1.5
		hs.win.SetSize(801, 601)
		hs.web.Start()

		Expect(hs.surf.LogicalW).To(Equal(801.0))
		Expect(hs.surf.LogicalH).To(Equal(601.0))
		Expect(hs.surf.BackingW).To(Equal(1201))
		Expect(hs.surf.BackingH).To(Equal(901))
		Expect(hs.surf.Transform).To(Equal([6]float64{1.5, 0, 0, 1.5, 0, 0}))
		Expect(hs.web.Viewport().DPR).To(Equal(1.5))
	})

	It("never uses a pixel ratio below one", func() {
		hs.win.DPR = 0
		hs.web.Start()
		Expect(hs.web.Viewport().DPR).To(Equal(1.0))
		Expect(hs.surf.BackingW).To(Equal(800))
	})

	It("regenerates the whole field on resize", func() {
		hs.web.Start()
		Expect(hs.web.Particles()).To(HaveLen(100))

		hs.win.SetSize(3000, 2000)
		hs.web.Resize()
		Expect(hs.web.Particles()).To(HaveLen(180))
		for _, q := range hs.web.Particles() {
			Expect(q.X).To(BeNumerically("<", 3000))
			Expect(q.Y).To(BeNumerically("<", 2000))
		}
	})

	It("keeps a single loop when started twice", func() {
		hs.web.Start()
		hs.web.Start()
		Expect(hs.sched.Pending()).To(Equal(1))

		hs.frame(16)
		Expect(hs.web.Frames()).To(Equal(1))
		Expect(hs.sched.Pending()).To(Equal(1))
		Expect(hs.web.Pending()).To(BeTrue())
	})

	It("stops the loop", func() {
		hs.web.Start()
		hs.web.Stop()
		Expect(hs.sched.Pending()).To(Equal(0))
		hs.frame(16)
		Expect(hs.web.Frames()).To(Equal(0))
	})

	It("clears, draws every dot and notifies observers", func() {
		c := &statsCollector{}
		hs.web.AddObserver(c)
		hs.web.Start()
		hs.frame(16)

		Expect(hs.surf.Clears).To(Equal(1))
		Expect(hs.surf.Dots).To(HaveLen(100))
		Expect(c.frames).To(HaveLen(1))
		Expect(c.frames[0].Particles).To(Equal(100))
		Expect(c.frames[0].Links).To(Equal(len(hs.surf.Lines)))
		Expect(c.frames[0].Candidates).To(BeNumerically(">=", c.frames[0].Links))
		for _, l := range hs.surf.Lines {
			Expect(l.Color.A).To(BeNumerically(">", 0.01))
			Expect(l.Width).To(Equal(1.0))
		}
	})

	It("draws no link for a pair exactly at the threshold", func() {
		hs.web.Start()
		linkDist := web.LinkDistance(800, 600, hs.web.Params())
		hs.web.SetParticles([]web.Particle{
			{X: 100, Y: 300, R: 1},
			{X: 100 + linkDist, Y: 300, R: 1},
		})
		hs.frame(16)
		Expect(hs.surf.Lines).To(BeEmpty())
	})

	It("brightens a link whose midpoint is under a fresh pointer", func() {
		hs.web.Start()
		linkDist := web.LinkDistance(800, 600, hs.web.Params())
		hs.web.SetParticles([]web.Particle{
			{X: 400 - linkDist/4, Y: 300, R: 1},
			{X: 400 + linkDist/4, Y: 300, R: 1},
		})
		hs.clock.T = 1000
		hs.web.PointerMove(400, 300)
		hs.sched.RunFrame(1000)

		Expect(hs.surf.Lines).To(HaveLen(1))
		Expect(hs.surf.Lines[0].Color.A).To(BeNumerically("~", 0.28*0.5*2.4, 1e-9))
	})

	It("translates pointer coordinates by the surface origin", func() {
		hs.surf.OriginX, hs.surf.OriginY = 10, 20
		hs.clock.T = 5
		hs.web.PointerMove(110, 220)
		ptr := hs.web.Pointer()
		Expect(ptr.X).To(Equal(100.0))
		Expect(ptr.Y).To(Equal(200.0))
		Expect(ptr.T).To(Equal(5.0))
		Expect(ptr.Active).To(BeTrue())
	})

	It("deactivates the pointer lazily once influence reaches zero", func() {
		hs.web.Start()
		hs.web.PointerMove(400, 300)

		hs.sched.RunFrame(199)
		Expect(hs.web.Pointer().Active).To(BeTrue())

		hs.sched.RunFrame(200)
		Expect(hs.web.Pointer().Active).To(BeFalse())
	})

	It("matches the no-pointer frame when influence is zero", func() {
		a := newHarness(800, 600, 9)
		b := newHarness(800, 600, 9)
		a.web.Start()
		b.web.Start()

		b.web.PointerMove(400, 300)
		a.sched.RunFrame(500)
		b.sched.RunFrame(500)

		Expect(b.web.Particles()).To(Equal(a.web.Particles()))
		Expect(b.surf.Lines).To(Equal(a.surf.Lines))
	})

	It("wraps particles leaving the viewport", func() {
		hs.web.Start()
		hs.web.SetParticles([]web.Particle{
			{X: 806, Y: 300, R: 1},
			{X: -6, Y: 300, R: 1},
			{X: 400, Y: 606, R: 1},
			{X: 400, Y: -6, R: 1},
		})
		hs.frame(16)

		ps := hs.web.Particles()
		Expect(ps[0].X).To(Equal(-5.0))
		Expect(ps[1].X).To(Equal(805.0))
		Expect(ps[2].Y).To(Equal(-5.0))
		Expect(ps[3].Y).To(Equal(605.0))
	})

	It("damps velocity every frame without reaching zero", func() {
		hs.web.Start()
		hs.web.SetParticles([]web.Particle{{X: 400, Y: 300, VX: 0.05, VY: -0.04, R: 1}})
		hs.frame(16)

		q := hs.web.Particles()[0]
		Expect(q.X).To(BeNumerically("~", 400.05, 1e-12))
		Expect(q.VX).To(BeNumerically("~", 0.05*0.999, 1e-15))
		Expect(q.VY).To(BeNumerically("~", -0.04*0.999, 1e-15))

		for i := 0; i < 5000; i++ {
			hs.frame(16)
		}
		q = hs.web.Particles()[0]
		Expect(q.VX).To(BeNumerically(">", 0))
		Expect(q.VX).To(BeNumerically("<", 0.001))
	})

	It("applies the pointer pull before integrating and damping", func() {
		hs.web.Start()
		hs.web.SetParticles([]web.Particle{{X: 300, Y: 300, R: 1}})
		hs.clock.T = 1000
		hs.web.PointerMove(400, 300)
		hs.sched.RunFrame(1000)

		impulse := 100 / 100.001 * (1 - 100.0/370) * 0.02
		q := hs.web.Particles()[0]
		Expect(q.VX).To(BeNumerically("~", impulse*0.999, 1e-15))
		Expect(q.VY).To(Equal(0.0))
		Expect(q.X).To(BeNumerically("~", 300+impulse, 1e-12))
	})

	It("stays finite with the pointer sitting on a particle", func() {
		hs.web.Start()
		hs.web.SetParticles([]web.Particle{{X: 400, Y: 300, R: 1}, {X: 401, Y: 300, R: 1}})
		for i := 0; i < 100; i++ {
			hs.web.PointerMove(400, 300)
			hs.frame(16)
		}
		for _, q := range hs.web.Particles() {
			Expect(q.Valid()).To(BeTrue())
		}
	})

	It("reveals idempotently, even before a surface exists", func() {
		w := web.New(web.DefaultParams(), web.Host{}, rand.New(rand.NewSource(1)))
		w.Reveal()
		w.Reveal()
		Expect(w.Revealed()).To(BeTrue())

		surf := host.NewRecorder()
		w.Attach(surf)
		Expect(surf.Opacity).To(Equal(0.58))

		hs.web.Reveal()
		Expect(hs.surf.Opacity).To(Equal(0.58))
	})

	It("runs without any host", func() {
		w := web.New(web.DefaultParams(), web.Host{}, nil)
		Expect(func() {
			w.Start()
			w.PointerMove(1, 1)
			w.Step(16)
		}).NotTo(Panic())
		Expect(w.Particles()).To(HaveLen(100))
	})
})

package sim_test

import (
	"bytes"
	"log/slog"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/walk"
)

type fixedSource []float64

func (f *fixedSource) Float64() float64 {
	v := (*f)[0]
	*f = append((*f)[1:], v)
	return v
}

type countingMetric struct {
	observed int
}

func (c *countingMetric) Name() string        { return "count" }
func (c *countingMetric) Observe(_ walk.Path) { c.observed++ }
func (c *countingMetric) Value() float64      { return float64(c.observed) }
func (c *countingMetric) Reset()              { c.observed = 0 }

func play(s *sim.Session, choices string) {
	dirs, err := walk.ParseChoices(choices)
	Expect(err).NotTo(HaveOccurred())
	for _, d := range dirs {
		s.Choose(d)
	}
}

var _ = Describe("Session", func() {
	var (
		s      *sim.Session
		events []sim.Event
	)

	BeforeEach(func() {
		s = sim.New(sim.DefaultParameters())
		events = nil
		s.AddObserver(sim.ObserverFunc(func(e sim.Event) {
			events = append(events, e)
		}))
	})

	Context("in automatic mode", func() {
		It("starts automatic with the default distribution", func() {
			Expect(s.Mode()).To(Equal(sim.Automatic))
			dist := s.Distribution()
			Expect(dist).To(HaveLen(11))
			Expect(dist[5]).To(Equal(25))
			Expect(dist[0]).To(Equal(0))
		})

		It("recomputes lazily after a parameter change", func() {
			_ = s.Distribution()
			events = nil

			Expect(s.SetProbability(1)).To(BeTrue())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Kind).To(Equal(sim.EventParams))

			dist := s.Distribution()
			Expect(dist[10]).To(Equal(100))
			Expect(events).To(HaveLen(2))
			Expect(events[1].Kind).To(Equal(sim.EventRecompute))

			_ = s.Distribution()
			Expect(events).To(HaveLen(2))
		})

		It("accepts unit count edits", func() {
			Expect(s.SetTotalUnits(1000)).To(BeTrue())
			Expect(s.Distribution()[5]).To(Equal(246))
		})

		It("ignores manual operations", func() {
			Expect(s.Choose(walk.Left)).To(BeFalse())
			Expect(s.Reset()).To(BeFalse())
			Expect(s.Drop(rand.New(rand.NewPCG(1, 2)))).To(BeFalse())
			Expect(s.Position()).To(Equal(walk.Position{X: 5, Y: 0}))
			Expect(events).To(BeEmpty())
		})

		It("returns copies of the distribution", func() {
			dist := s.Distribution()
			dist[5] = -1
			Expect(s.Distribution()[5]).To(Equal(25))
		})
	})

	Context("in manual mode", func() {
		BeforeEach(func() {
			Expect(s.SwitchMode(true)).To(BeTrue())
			events = nil
		})

		It("locks the parameters", func() {
			Expect(s.SetProbability(0.9)).To(BeFalse())
			Expect(s.SetTotalUnits(5)).To(BeFalse())
			Expect(s.Parameters().RightProbability).To(Equal(0.5))
			Expect(s.Parameters().TotalUnits).To(Equal(100.0))
			Expect(events).To(BeEmpty())
		})

		It("completes a path after ten choices", func() {
			play(s, "RRLRLRLLRR")

			Expect(s.Complete()).To(BeTrue())
			Expect(s.Position()).To(Equal(walk.Position{X: 7, Y: 10}))
			Expect(s.CompletedCount()).To(Equal(1))
			Expect(s.Completed()[0]).To(HaveLen(11))
			Expect(events[len(events)-1].Kind).To(Equal(sim.EventComplete))
		})

		It("ignores choices after completion", func() {
			play(s, "LLLLLLLLLL")
			before := s.Snapshot()

			Expect(s.Choose(walk.Right)).To(BeFalse())
			Expect(s.Snapshot()).To(Equal(before))
		})

		It("keeps completed paths across resets", func() {
			play(s, "LLLLLLLLLL")
			first := s.Completed()[0]

			Expect(s.Reset()).To(BeTrue())
			Expect(s.Position()).To(Equal(walk.Position{X: 5, Y: 0}))
			Expect(s.Complete()).To(BeFalse())

			play(s, "RRRRRRRRRR")
			completed := s.Completed()
			Expect(completed).To(HaveLen(2))
			Expect(completed[0]).To(Equal(first))
			Expect(completed[1][0]).To(Equal(walk.Position{X: 5, Y: 0}))
		})

		It("groups endpoints into stacks", func() {
			play(s, "RRRRRLLLLL")
			s.Reset()
			play(s, "LRLRLRLRLR")
			s.Reset()
			play(s, "RRRRRRRRRR")

			stacks := s.Stacks()
			Expect(stacks.Count(walk.Position{X: 5, Y: 10})).To(Equal(2))
			Expect(stacks.Count(walk.Position{X: 15, Y: 10})).To(Equal(1))
			Expect(s.Histogram()[5]).To(Equal(2))
			Expect(s.Histogram()[10]).To(Equal(1))
		})

		It("drops a ball with random choices", func() {
			src := fixedSource{0.1, 0.9}
			Expect(s.Drop(&src)).To(BeTrue())

			Expect(s.Complete()).To(BeTrue())
			Expect(s.Position()).To(Equal(walk.Position{X: 5, Y: 10}))

			Expect(s.Drop(&src)).To(BeTrue())
			Expect(s.CompletedCount()).To(Equal(2))
		})

		It("drops only right when the probability is one", func() {
			Expect(s.SwitchMode(false)).To(BeTrue())
			s.SetProbability(1)
			Expect(s.SwitchMode(true)).To(BeTrue())

			s.Drop(rand.New(rand.NewPCG(7, 7)))
			Expect(s.Position()).To(Equal(walk.Position{X: 15, Y: 10}))
		})

		It("feeds metrics on completion and resets them on re-entry", func() {
			m := &countingMetric{}
			s.AddMetric(m)

			play(s, "RRRRRRRRRR")
			s.Reset()
			play(s, "LLLLL")
			Expect(m.observed).To(Equal(1))
			Expect(s.Metrics()).To(HaveKeyWithValue("count", 1.0))

			s.SwitchMode(false)
			s.SwitchMode(true)
			Expect(m.observed).To(Equal(0))
		})
	})

	Describe("mode switching", func() {
		It("clears history when entering manual mode", func() {
			s.SwitchMode(true)
			play(s, "RRRRRRRRRR")
			Expect(s.CompletedCount()).To(Equal(1))

			s.ToggleMode()
			Expect(s.Mode()).To(Equal(sim.Automatic))
			Expect(s.CompletedCount()).To(Equal(1))

			s.ToggleMode()
			Expect(s.Mode()).To(Equal(sim.Manual))
			Expect(s.CompletedCount()).To(Equal(0))
			Expect(s.Position()).To(Equal(walk.Position{X: 5, Y: 0}))
		})

		It("treats a switch to the current mode as a no-op", func() {
			Expect(s.SwitchMode(false)).To(BeFalse())
			Expect(events).To(BeEmpty())
		})

		It("recomputes after returning to automatic mode", func() {
			_ = s.Distribution()
			s.SwitchMode(true)
			s.SwitchMode(false)
			events = nil

			_ = s.Distribution()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Kind).To(Equal(sim.EventRecompute))
		})
	})

	Describe("LogObserver", func() {
		It("logs events at debug level", func() {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			s.AddObserver(sim.NewLogObserver(logger))

			s.SwitchMode(true)
			s.Choose(walk.Left)

			Expect(buf.String()).To(ContainSubstring(`"msg":"session mode"`))
			Expect(buf.String()).To(ContainSubstring(`"direction":"left"`))
		})
	})
})

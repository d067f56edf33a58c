package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"github.com/hhakhilesh/DamperMassSpring/internal/integrators"
	"github.com/hhakhilesh/DamperMassSpring/internal/physics"
	"github.com/hhakhilesh/DamperMassSpring/internal/sim"
)

func energies(osc *physics.Oscillator, traj *dynamo.Trajectory) []float32 {
	out := make([]float32, traj.Len())
	for i := range out {
		out[i] = osc.Energy(traj.Position[i], traj.Velocity[i])
	}
	return out
}

var _ = Describe("RK4 on a mass-spring-damper", func() {
	var (
		integ *integrators.RK4
		setup *sim.Setup
	)

	BeforeEach(func() {
		integ = integrators.NewRK4()
		setup = &sim.Setup{}
	})

	Context("with m=1, c=1, k=1 released from x=2", func() {
		var (
			osc  *physics.Oscillator
			traj *dynamo.Trajectory
		)

		BeforeEach(func() {
			var err error
			osc, err = physics.NewPhysical(1, 1, 1)
			Expect(err).NotTo(HaveOccurred())

			setup.SetInitialState(2, 0)
			Expect(setup.SetTimeWindow(10, 0)).To(Succeed())

			traj, err = integ.Integrate(osc, setup, integrators.DefaultStepSize)
			Expect(err).NotTo(HaveOccurred())
		})

		It("starts at the initial state", func() {
			Expect(traj.Sample(0)).To(Equal(dynamo.Sample{T: 0, X: 2, XDot: 0}))
		})

		It("returns floor(T/dt)+2 index-aligned samples", func() {
			Expect(traj.Time).To(HaveLen(10002))
			Expect(traj.Position).To(HaveLen(10002))
			Expect(traj.Velocity).To(HaveLen(10002))
			Expect(traj.IsValid()).To(BeTrue())
		})

		It("ends within one step past the window end", func() {
			last := traj.Final().T
			Expect(last).To(BeNumerically(">=", 10))
			Expect(last).To(BeNumerically("<=", 10+integrators.DefaultStepSize+1e-4))
		})

		It("decays toward rest", func() {
			Expect(math.Abs(float64(traj.Final().X))).To(BeNumerically("<", 0.05))
			Expect(math.Abs(float64(traj.Final().XDot))).To(BeNumerically("<", 0.05))
		})

		It("never gains energy", func() {
			e := energies(osc, traj)
			for i := 1; i < len(e); i++ {
				Expect(e[i]).To(BeNumerically("<=", e[i-1]+1e-6), "sample %d", i)
			}
		})

		It("leaves the model untouched", func() {
			cfg, err := osc.Config(false)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal([]float32{1, 1, 1}))
		})
	})

	Context("with the undamped unit oscillator", func() {
		var osc *physics.Oscillator

		BeforeEach(func() {
			var err error
			osc, err = physics.NewModal(0, 1)
			Expect(err).NotTo(HaveOccurred())
			setup.SetInitialState(1, 0)
		})

		It("tracks cos(t) over one period", func() {
			Expect(setup.SetTimeWindow(float32(2*math.Pi), 0)).To(Succeed())
			traj, err := integ.Integrate(osc, setup, integrators.DefaultStepSize)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < traj.Len(); i += 97 {
				s := traj.Sample(i)
				Expect(s.X).To(BeNumerically("~", math.Cos(float64(s.T)), 2e-3))
			}
		})

		It("conserves amplitude over a short window", func() {
			Expect(setup.SetTimeWindow(10, 0)).To(Succeed())
			traj, err := integ.Integrate(osc, setup, 0.01)
			Expect(err).NotTo(HaveOccurred())

			e := energies(osc, traj)
			Expect(e[len(e)-1]).To(BeNumerically("~", e[0], 1e-3))
		})
	})

	Context("before configuration", func() {
		It("rejects a missing initial state", func() {
			osc, _ := physics.NewModal(1, 1)
			_, err := integ.Integrate(osc, setup, integrators.DefaultStepSize)
			Expect(err).To(MatchError(dynamo.ErrStateNotInitialized))
		})

		It("rejects a missing time window", func() {
			osc, _ := physics.NewModal(1, 1)
			setup.SetInitialState(1, 0)
			_, err := integ.Integrate(osc, setup, integrators.DefaultStepSize)
			Expect(err).To(MatchError(dynamo.ErrTimeWindowNotSet))
		})
	})
})

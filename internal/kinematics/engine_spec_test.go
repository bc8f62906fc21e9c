package kinematics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

var _ = Describe("Slider-crank engine", func() {
	var p kinematics.Params

	BeforeEach(func() {
		p = kinematics.Params{CrankRadius: 50, RodLength: 150, CrankSpeed: 150}
	})

	Describe("valid mechanisms", func() {
		DescribeTable("return finite motion at every angle",
			func(r, l, rpm float64) {
				for deg := -720; deg <= 720; deg += 7 {
					theta := kinematics.Radians(deg)
					x, err := kinematics.Position(theta, r, l)
					Expect(err).NotTo(HaveOccurred())
					v, err := kinematics.Velocity(theta, r, l, rpm)
					Expect(err).NotTo(HaveOccurred())
					a, err := kinematics.Acceleration(theta, r, l, rpm)
					Expect(err).NotTo(HaveOccurred())

					Expect(math.IsNaN(x) || math.IsInf(x, 0)).To(BeFalse())
					Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
					Expect(math.IsNaN(a) || math.IsInf(a, 0)).To(BeFalse())
				}
			},
			Entry("balanced", 50.0, 150.0, 150.0),
			Entry("high speed", 60.0, 180.0, 300.0),
			Entry("long rod", 40.0, 250.0, 100.0),
			Entry("compact", 30.0, 120.0, 400.0),
			Entry("nearly degenerate", 99.0, 100.0, 1000.0),
			Entry("reversed", 20.0, 100.0, -75.0),
		)

		It("is periodic in 2π", func() {
			for _, theta := range []float64{0.1, 1.3, 2.9, 4.4, 6.0} {
				a := kinematics.EvaluateState(theta, p)
				b := kinematics.EvaluateState(theta+2*math.Pi, p)
				Expect(b.Position).To(BeNumerically("~", a.Position, 1e-9))
				Expect(b.Velocity).To(BeNumerically("~", a.Velocity, 1e-7))
				Expect(b.Acceleration).To(BeNumerically("~", a.Acceleration, 1e-5))
			}
		})

		It("places the slider at r+l at top dead centre", func() {
			x, err := kinematics.Position(0, 50, 150)
			Expect(err).NotTo(HaveOccurred())
			Expect(x).To(BeNumerically("~", 200.0, 1e-12))
		})

		It("places the slider at sqrt(l²−r²) at quarter turn", func() {
			x, err := kinematics.Position(math.Pi/2, 50, 150)
			Expect(err).NotTo(HaveOccurred())
			Expect(x).To(BeNumerically("~", 141.42, 0.01))
		})

		It("has zero velocity at θ=0", func() {
			Expect(kinematics.AngularSpeed(150)).To(BeNumerically("~", 15.708, 1e-3))
			v, err := kinematics.Velocity(0, 50, 150, 150)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 0.0, 1e-12))
		})
	})

	Describe("Validate", func() {
		DescribeTable("rejects exactly r ≤ 0, l ≤ 0 and l ≤ r",
			func(r, l float64, valid bool) {
				got := kinematics.Validate(kinematics.Params{CrankRadius: r, RodLength: l})
				Expect(got.Valid).To(Equal(valid))
				if valid {
					Expect(got.Reason).To(BeEmpty())
				} else {
					Expect(got.Reason).NotTo(BeEmpty())
				}
			},
			Entry("valid", 10.0, 11.0, true),
			Entry("zero radius", 0.0, 11.0, false),
			Entry("zero rod", 10.0, 0.0, false),
			Entry("negative rod", 10.0, -20.0, false),
			Entry("equal", 10.0, 10.0, false),
			Entry("short rod", 10.0, 9.0, false),
		)

		It("gives a distinct reason per failure", func() {
			a := kinematics.Validate(kinematics.Params{CrankRadius: 0, RodLength: 10})
			b := kinematics.Validate(kinematics.Params{CrankRadius: 10, RodLength: 0})
			c := kinematics.Validate(kinematics.Params{CrankRadius: 10, RodLength: 10})
			Expect(a.Reason).NotTo(Equal(b.Reason))
			Expect(b.Reason).NotTo(Equal(c.Reason))
			Expect(a.Reason).NotTo(Equal(c.Reason))
		})
	})

	Describe("degenerate mechanism r = l", func() {
		BeforeEach(func() {
			p = kinematics.Params{CrankRadius: 50, RodLength: 50, CrankSpeed: 150}
		})

		It("is rejected by the validator", func() {
			v := kinematics.Validate(p)
			Expect(v.Valid).To(BeFalse())
			Expect(v.Reason).To(ContainSubstring("rod length"))
			Expect(v.Reason).To(ContainSubstring("crank radius"))
		})

		It("degrades EvaluateState to the undefined sentinel", func() {
			s := kinematics.EvaluateState(math.Pi/2, p)
			Expect(s.CrankAngle).To(Equal(math.Pi / 2))
			Expect(s.Position).To(Satisfy(math.IsNaN))
			Expect(s.Velocity).To(Satisfy(math.IsNaN))
			Expect(s.Acceleration).To(Satisfy(math.IsNaN))
		})

		It("blanks the whole curve", func() {
			Expect(kinematics.GenerateCurve(p)).To(BeEmpty())
		})
	})

	Describe("GenerateCurve", func() {
		It("returns 361 points that close the loop", func() {
			c := kinematics.GenerateCurve(p)
			Expect(c).To(HaveLen(kinematics.CurvePoints))
			Expect(c[0].AngleDegrees).To(Equal(0))
			Expect(c[360].AngleDegrees).To(Equal(360))
			Expect(c[360].Position).To(BeNumerically("~", c[0].Position, 1e-9))
		})

		It("round-trips through EvaluateState", func() {
			c := kinematics.GenerateCurve(p)
			for _, pt := range c {
				s := kinematics.EvaluateState(float64(pt.AngleDegrees)*math.Pi/180, p)
				Expect(s.Position).To(BeNumerically("~", pt.Position, 1e-9))
				Expect(s.Velocity).To(BeNumerically("~", pt.Velocity, 1e-9))
				Expect(s.Acceleration).To(BeNumerically("~", pt.Acceleration, 1e-9))
			}
		})

		It("never returns a partial curve", func() {
			for _, l := range []float64{10, 40, 49, 50, 51, 75, 200} {
				c := kinematics.GenerateCurve(kinematics.Params{CrankRadius: 50, RodLength: l, CrankSpeed: 100})
				Expect(len(c)).To(SatisfyAny(Equal(0), Equal(kinematics.CurvePoints)))
			}
		})
	})
})

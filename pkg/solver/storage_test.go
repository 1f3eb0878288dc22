package solver

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/netscript-tools/material-optimizer/internal/logging"
	"github.com/netscript-tools/material-optimizer/pkg/core"
)

var sizes = []float64{0, 0.5, 1, 10, 50, 200, 1000, 5000, 25000, 1e6}

var _ = Describe("Solve", func() {
	Context("with the documented Software example", func() {
		It("should match the reference allocation", func() {
			sol, err := Solve(core.Software, 200)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Industry).To(Equal(core.Software))
			Expect(math.Round(sol.Allocation.Get(core.Hardware))).To(Equal(1529.0))
			Expect(math.Round(sol.Allocation.Get(core.RealEstate))).To(Equal(14112.0))
			Expect(sol.Allocation.Get(core.Robots)).To(Equal(0.0))
			Expect(math.Round(sol.Allocation.Get(core.AICores))).To(Equal(377.0))
		})

		It("should remove Robots after one round", func() {
			sol, err := Solve(core.Software, 200)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Removed().Materials()).To(Equal([]core.MaterialKind{core.Robots}))
			Expect(sol.Rounds).To(Equal(2))
		})
	})

	Context("across the whole catalog", func() {
		It("should return finite non-negative amounts", func() {
			for _, ind := range core.Industries() {
				for _, size := range sizes {
					sol, err := Solve(ind, size)
					Expect(err).NotTo(HaveOccurred(), "%s/%v", ind, size)
					for _, m := range core.Materials() {
						v := sol.Allocation.Get(m)
						Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse(), "%s/%v/%s", ind, size, m)
						Expect(v).To(BeNumerically(">=", 0), "%s/%v/%s", ind, size, m)
					}
				}
			}
		})

		It("should fill the storage budget exactly", func() {
			for _, ind := range core.Industries() {
				for _, size := range sizes[1:] {
					sol, err := Solve(ind, size)
					Expect(err).NotTo(HaveOccurred())
					Expect(sol.Allocation.UsedSpace()).To(BeNumerically("~", size, size*1e-6), "%s/%v", ind, size)
				}
			}
		})

		It("should never shrink an allocation when storage grows", func() {
			for _, ind := range core.Industries() {
				var prev core.Allocation
				for size := 0.0; size <= 3000; size += 7.5 {
					sol, err := Solve(ind, size)
					Expect(err).NotTo(HaveOccurred())
					for _, m := range core.Materials() {
						Expect(sol.Allocation.Get(m)).To(BeNumerically(">=", prev.Get(m)-1e-6), "%s/%v/%s", ind, size, m)
					}
					prev = sol.Allocation
				}
			}
		})

		It("should be deterministic", func() {
			for _, ind := range core.Industries() {
				a, err := Solve(ind, 1234.5)
				Expect(err).NotTo(HaveOccurred())
				b, err := Solve(ind, 1234.5)
				Expect(err).NotTo(HaveOccurred())
				Expect(a.Allocation).To(Equal(b.Allocation))
			}
		})

		It("should zero every removed material and keep it out of the active set", func() {
			for _, ind := range core.Industries() {
				for _, size := range sizes {
					sol, err := Solve(ind, size)
					Expect(err).NotTo(HaveOccurred())
					for _, m := range sol.Removed().Materials() {
						Expect(sol.Allocation.Get(m)).To(Equal(0.0))
						Expect(sol.Active.Has(m)).To(BeFalse())
					}
					Expect(sol.Rounds).To(Equal(sol.Removed().Len() + 1))
				}
			}
		})
	})

	Context("with a material whose unconstrained amount is negative", func() {
		It("should drop exactly that material", func() {
			profile, err := core.Software.Profile()
			Expect(err).NotTo(HaveOccurred())
			Expect(naive(profile, 200, core.AllMaterials)[core.Robots]).To(BeNumerically("<", 0))

			sol, err := SolveProfile(profile, 200)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Industry).To(Equal(core.Custom))
			Expect(sol.Active.Has(core.Robots)).To(BeFalse())
			Expect(sol.Allocation.Get(core.Robots)).To(Equal(0.0))
		})

		It("should remove only the first infeasible material per round", func() {
			// Robots and AICores are both infeasible in round one.
			profile := core.ProductionProfile{0.5, 0.5, 0.01, 0.001}
			first := naive(profile, 1000, core.AllMaterials)
			Expect(first[core.Robots]).To(BeNumerically("<", 0))
			Expect(first[core.AICores]).To(BeNumerically("<", 0))

			sol, err := StorageAllocator{Logger: logging.NewTestLogger()}.SolveProfile(profile, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Rounds).To(Equal(3))
			Expect(sol.Active).To(Equal(core.AllMaterials.Remove(core.Robots).Remove(core.AICores)))
		})
	})

	Context("with zero storage", func() {
		It("should allocate nothing and terminate", func() {
			for _, ind := range core.Industries() {
				sol, err := Solve(ind, 0)
				Expect(err).NotTo(HaveOccurred())
				for _, m := range core.Materials() {
					Expect(sol.Allocation.Get(m)).To(BeNumerically("~", 0, 1e-9), "%s/%s", ind, m)
				}
				Expect(sol.Rounds).To(BeNumerically("<=", core.NumMaterials+1))
			}
		})
	})

	Context("with a zero production factor", func() {
		It("should drop Hardware for Energy in the first round", func() {
			sol, err := Solve(core.Energy, 500)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Allocation.Get(core.Hardware)).To(Equal(0.0))
			Expect(sol.Removed().Has(core.Hardware)).To(BeTrue())
			Expect(sol.Allocation.UsedSpace()).To(BeNumerically("~", 500, 500*1e-6))
		})
	})

	Context("with invalid input", func() {
		It("should reject negative and non-finite sizes", func() {
			for _, size := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
				_, err := Solve(core.Software, size)
				Expect(err).To(MatchError(ErrInvalidArgument))
			}
		})

		It("should reject industries outside the catalog", func() {
			_, err := Solve(core.Industry(42), 100)
			Expect(err).To(MatchError(ErrUnknownIndustry))
			_, err = Solve(core.Custom, 100)
			Expect(err).To(MatchError(ErrUnknownIndustry))
		})

		It("should reject negative production factors", func() {
			_, err := SolveProfile(core.ProductionProfile{0.1, -0.1, 0.1, 0.1}, 100)
			Expect(err).To(MatchError(ErrInvalidArgument))
		})

		It("should report a convergence failure when an amount overflows", func() {
			for _, size := range []float64{1e307, math.MaxFloat64} {
				sol, err := Solve(core.Software, size)
				Expect(err).To(MatchError(ErrConvergence), "size %g", size)
				Expect(sol).To(BeNil())
			}
		})

		It("should keep amounts finite for large sizes that do not overflow", func() {
			sol, err := Solve(core.Software, 1e300)
			Expect(err).NotTo(HaveOccurred())
			for _, m := range core.Materials() {
				v := sol.Allocation.Get(m)
				Expect(math.IsInf(v, 0) || math.IsNaN(v)).To(BeFalse(), m.String())
			}
			Expect(math.IsInf(sol.Allocation.UsedSpace(), 0)).To(BeFalse())
		})

		It("should report a convergence failure for an all-zero profile", func() {
			_, err := SolveProfile(core.ProductionProfile{}, 100)
			Expect(err).To(MatchError(ErrConvergence))
		})
	})
})

// naive computes the unconstrained stationary point over the active set.
func naive(profile core.ProductionProfile, size float64, active core.MaterialSet) core.Allocation {
	fp := core.Footprints()
	var alphaSum, footprintSum float64
	for _, m := range active.Materials() {
		alphaSum += profile[m]
		footprintSum += fp[m]
	}
	var out core.Allocation
	for _, m := range active.Materials() {
		out[m] = 1. / Beta * (profile[m]/alphaSum*(Beta*size+footprintSum)/fp[m] - 1.)
	}
	return out
}

package planner

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/netscript-tools/material-optimizer/api/v1alpha1"
	"github.com/netscript-tools/material-optimizer/internal/logging"
	"github.com/netscript-tools/material-optimizer/internal/metrics"
	"github.com/netscript-tools/material-optimizer/pkg/core"
	"github.com/netscript-tools/material-optimizer/pkg/solver"
)

func makeRequests(n int) []v1alpha1.AllocationRequest {
	industries := core.Industries()
	reqs := make([]v1alpha1.AllocationRequest, n)
	for i := range reqs {
		ind := industries[i%len(industries)]
		reqs[i] = v1alpha1.AllocationRequest{
			Division: fmt.Sprintf("division-%03d", i),
			Industry: ind.String(),
			Size:     float64(100 + 25*i),
		}
	}
	return reqs
}

var _ = Describe("NewPoolPlanner", func() {
	It("should reject a nil config", func() {
		_, err := NewPoolPlanner(nil)
		Expect(err).To(HaveOccurred())
	})

	It("should reject a negative worker count", func() {
		_, err := NewPoolPlanner(&PlannerConfig{Workers: -1})
		Expect(err).To(HaveOccurred())
	})

	It("should default the worker count", func() {
		p, err := NewPoolPlanner(&PlannerConfig{})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.config.Workers).To(Equal(DefaultWorkers))
	})
})

var _ = Describe("PoolPlanner.Plan", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = logging.IntoContext(context.Background(), logging.NewTestLogger())
	})

	Context("with valid requests", func() {
		It("should return reports in request order matching the solver", func() {
			p, err := NewPoolPlanner(&PlannerConfig{Workers: 8})
			Expect(err).NotTo(HaveOccurred())

			reqs := makeRequests(120)
			reports, err := p.Plan(ctx, reqs)
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(len(reqs)))

			for i, r := range reports {
				Expect(r.Division).To(Equal(reqs[i].Division))
				ind, err := core.ParseIndustry(reqs[i].Industry)
				Expect(err).NotTo(HaveOccurred())
				sol, err := solver.Solve(ind, reqs[i].Size)
				Expect(err).NotTo(HaveOccurred())
				Expect(r.Allocation()).To(Equal(sol.Allocation))
			}

			summary := Summarize(reports)
			Expect(summary.Solved).To(Equal(len(reqs)))
			Expect(summary.Failed).To(BeZero())
			Expect(summary.Skipped).To(BeZero())
		})

		It("should apply the storage fraction", func() {
			p, err := NewPoolPlanner(&PlannerConfig{Workers: 1})
			Expect(err).NotTo(HaveOccurred())
			half := 0.5
			reports, err := p.Plan(ctx, []v1alpha1.AllocationRequest{
				{Division: "sw", Industry: "Software", Size: 400, StorageFraction: &half},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(reports[0].TotalSize).To(Equal(200.0))
			Expect(reports[0].Allocation().UsedSpace()).To(BeNumerically("~", 200, 1e-6))
		})

		It("should handle an empty batch", func() {
			p, err := NewPoolPlanner(&PlannerConfig{})
			Expect(err).NotTo(HaveOccurred())
			reports, err := p.Plan(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(BeEmpty())
		})
	})

	Context("with failing requests", func() {
		It("should report every failure and still solve the rest", func() {
			recorder := metrics.NewRecorder()
			p, err := NewPoolPlanner(&PlannerConfig{Workers: 4, Recorder: recorder})
			Expect(err).NotTo(HaveOccurred())

			reqs := makeRequests(6)
			reqs[1].Industry = "Casino"
			reqs[4].Size = -10

			reports, err := p.Plan(ctx, reqs)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, solver.ErrUnknownIndustry)).To(BeTrue())
			Expect(errors.Is(err, solver.ErrInvalidArgument)).To(BeTrue())

			Expect(reports[1].Failed()).To(BeTrue())
			Expect(reports[4].Failed()).To(BeTrue())
			for _, i := range []int{0, 2, 3, 5} {
				Expect(reports[i].Failed()).To(BeFalse())
			}

			summary := Summarize(reports)
			Expect(summary.Solved).To(Equal(4))
			Expect(summary.Failed).To(Equal(2))

			series, err := testutil.GatherAndCount(recorder.Registry(), "material_optimizer_solves_total")
			Expect(err).NotTo(HaveOccurred())
			Expect(series).To(Equal(6))
		})

		It("should skip outstanding work in fail-fast mode", func() {
			p, err := NewPoolPlanner(&PlannerConfig{Workers: 1, FailFast: true})
			Expect(err).NotTo(HaveOccurred())

			reqs := makeRequests(5)
			reqs[0].Industry = "Casino"

			reports, err := p.Plan(ctx, reqs)
			Expect(err).To(MatchError(solver.ErrUnknownIndustry))
			Expect(errors.Is(err, ErrSkipped)).To(BeFalse())

			summary := Summarize(reports)
			Expect(summary.Failed).To(Equal(1))
			Expect(summary.Skipped).To(Equal(4))
		})
	})

	Context("with a cancelled context", func() {
		It("should stop and return the context error", func() {
			p, err := NewPoolPlanner(&PlannerConfig{Workers: 2})
			Expect(err).NotTo(HaveOccurred())

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			reports, err := p.Plan(cancelled, makeRequests(10))
			Expect(err).To(MatchError(context.Canceled))
			Expect(reports).To(HaveLen(10))
			Expect(Summarize(reports).Skipped).To(Equal(10))
		})
	})
})

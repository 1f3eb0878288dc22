package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/netscript-tools/material-optimizer/api/v1alpha1"
	"github.com/netscript-tools/material-optimizer/internal/logging"
	"github.com/netscript-tools/material-optimizer/internal/metrics"
	"github.com/netscript-tools/material-optimizer/pkg/solver"
)

const (
	// DefaultWorkers is the pool size used when the config leaves Workers unset.
	DefaultWorkers = 4
)

// ErrSkipped marks requests that were never solved because planning stopped early.
var ErrSkipped = errors.New("skipped")

// Planner computes storage allocations for a batch of divisions.
type Planner interface {
	// Plan solves every request and returns one report per request, in request order.
	Plan(ctx context.Context, requests []v1alpha1.AllocationRequest) ([]v1alpha1.AllocationReport, error)
}

// PlannerConfig holds configuration for the PoolPlanner
type PlannerConfig struct {
	// Workers bounds the number of requests solved concurrently.
	Workers int
	// FailFast stops outstanding work as soon as one request fails.
	FailFast bool
	// Recorder receives every solve outcome. Optional.
	Recorder *metrics.Recorder
}

// PoolPlanner solves requests on a bounded worker pool.
type PoolPlanner struct {
	config    *PlannerConfig
	allocator solver.StorageAllocator
}

// NewPoolPlanner creates a new PoolPlanner instance.
func NewPoolPlanner(config *PlannerConfig) (*PoolPlanner, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", config.Workers)
	}
	if config.Workers == 0 {
		config.Workers = DefaultWorkers
	}
	return &PoolPlanner{
		config: config,
	}, nil
}

// Plan solves every request and returns one report per request, in request order.
//
// A request that fails still gets a report with its Error set; the returned
// error aggregates every failure. With FailFast, requests not yet started when
// the first failure occurs are reported as skipped and do not contribute to
// the error. If ctx is cancelled, Plan returns ctx.Err().
func (p *PoolPlanner) Plan(ctx context.Context, requests []v1alpha1.AllocationRequest) ([]v1alpha1.AllocationReport, error) {
	logger := logging.FromContext(ctx)
	allocator := p.allocator
	allocator.Logger = logger

	reports := make([]v1alpha1.AllocationReport, len(requests))
	failures := make([]error, len(requests))

	workers := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(p.config.Workers)
	if p.config.FailFast {
		workers = workers.WithCancelOnError()
	}

	for i := range requests {
		if ctx.Err() != nil {
			reports[i] = v1alpha1.NewFailedReport(requests[i], fmt.Errorf("%w: %w", ErrSkipped, ctx.Err()))
			continue
		}
		workers.Go(func(ctx context.Context) error {
			req := requests[i]
			if err := ctx.Err(); err != nil {
				reports[i] = v1alpha1.NewFailedReport(req, fmt.Errorf("%w: %w", ErrSkipped, err))
				return nil
			}

			report, err := p.solve(allocator, req)
			reports[i] = report
			if err != nil {
				failures[i] = fmt.Errorf("division %q: %w", req.Division, err)
				logger.Info("Failed to plan division", "division", req.Division, "industry", req.Industry, "error", err.Error())
				return failures[i]
			}
			logger.V(logging.DEBUG).Info("Planned division",
				"division", req.Division,
				"industry", report.Industry,
				"totalSize", report.TotalSize,
				"rounds", report.Rounds)
			return nil
		})
	}
	// Failures are collected per request above.
	_ = workers.Wait()

	if err := ctx.Err(); err != nil {
		return reports, err
	}

	err := utilerrors.NewAggregate(failures)
	logger.Info("Planning completed", "requests", len(requests), "summary", Summarize(reports))
	return reports, err
}

// solve runs one request through the allocator.
func (p *PoolPlanner) solve(allocator solver.StorageAllocator, req v1alpha1.AllocationRequest) (v1alpha1.AllocationReport, error) {
	if err := req.Validate(); err != nil {
		p.observeFailure(req.Industry)
		return v1alpha1.NewFailedReport(req, err), err
	}
	industry, err := req.ResolveIndustry()
	if err != nil {
		p.observeFailure(req.Industry)
		return v1alpha1.NewFailedReport(req, err), err
	}
	sol, err := allocator.Solve(industry, req.EffectiveSize())
	if err != nil {
		p.observeFailure(industry.String())
		return v1alpha1.NewFailedReport(req, err), err
	}
	if p.config.Recorder != nil {
		p.config.Recorder.ObserveSolve(sol)
	}
	return v1alpha1.NewAllocationReport(req, sol), nil
}

func (p *PoolPlanner) observeFailure(industry string) {
	if p.config.Recorder != nil {
		p.config.Recorder.ObserveFailure(industry)
	}
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/netscript-tools/material-optimizer/api/v1alpha1"
	"github.com/netscript-tools/material-optimizer/internal/config"
	"github.com/netscript-tools/material-optimizer/internal/engines/planner"
	"github.com/netscript-tools/material-optimizer/internal/logging"
	"github.com/netscript-tools/material-optimizer/internal/metrics"
	"github.com/netscript-tools/material-optimizer/internal/scripting"
	"github.com/netscript-tools/material-optimizer/pkg/core"
	"github.com/netscript-tools/material-optimizer/pkg/solver"
)

func (a *app) runSolve(cmd *cobra.Command, industryName, sizeArg string) error {
	industry, err := core.ParseIndustry(industryName)
	if err != nil {
		a.observeFailure(metrics.UnknownIndustry)
		return err
	}
	size, err := strconv.ParseFloat(sizeArg, 64)
	if err != nil {
		a.observeFailure(industry.String())
		return fmt.Errorf("%w: size %q is not a number", solver.ErrInvalidArgument, sizeArg)
	}

	allocator := solver.StorageAllocator{Logger: a.logger}
	sol, err := allocator.Solve(industry, size)
	if err != nil {
		a.observeFailure(industry.String())
		return err
	}
	if a.recorder != nil {
		a.recorder.ObserveSolve(sol)
	}
	a.logger.V(logging.DEBUG).Info("Solved",
		"industry", industry.String(),
		"size", size,
		"removed", sol.Removed().String(),
		"rounds", sol.Rounds)

	if a.cfg.Output == config.OutputText {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), sol.Allocation.String())
		return err
	}
	req := v1alpha1.AllocationRequest{Industry: industry.String(), Size: size}
	return encode(cmd.OutOrStdout(), a.cfg.Output, v1alpha1.NewAllocationReport(req, sol))
}

func (a *app) runIndustries(cmd *cobra.Command) error {
	return writeIndustries(cmd.OutOrStdout(), a.cfg.Output)
}

func (a *app) runPlan(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	requests, err := config.LoadPlanFile(ctx, path)
	if err != nil {
		return err
	}

	p, err := planner.NewPoolPlanner(&planner.PlannerConfig{
		Workers:  a.cfg.Workers,
		FailFast: a.cfg.FailFast,
		Recorder: a.recorder,
	})
	if err != nil {
		return err
	}
	reports, planErr := p.Plan(ctx, requests)
	if err := writeReports(cmd.OutOrStdout(), a.cfg.Output, reports); err != nil {
		return err
	}
	return planErr
}

func (a *app) runScript(cmd *cobra.Command, path string) error {
	rt := &scripting.Runtime{
		Out:      cmd.OutOrStdout(),
		Recorder: a.recorder,
	}
	return rt.Run(cmd.Context(), path)
}

func (a *app) observeFailure(industry string) {
	if a.recorder != nil {
		a.recorder.ObserveFailure(industry)
	}
}

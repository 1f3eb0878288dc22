// Package planner solves storage allocations for many divisions at once.
//
// A plan is a list of AllocationRequests, usually loaded from a YAML plan
// file by the config package. The PoolPlanner fans the requests out to a
// bounded worker pool and collects one AllocationReport per request, in
// request order.
//
// Failure Handling:
//
// A request that fails validation or solving still produces a report with
// its Error set, and every failure is returned as one aggregate error. With
// FailFast, the first failure cancels the pool: requests that had not started
// are reported as skipped and do not count as failures.
//
// Example usage:
//
//	p, err := planner.NewPoolPlanner(&planner.PlannerConfig{Workers: 4})
//	if err != nil {
//	    return err
//	}
//	reports, err := p.Plan(ctx, requests)
//	for _, r := range reports {
//	    log.Info("planned", "division", r.Division, "error", r.Error)
//	}
package planner

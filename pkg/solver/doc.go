// Package solver computes how much of each boost material a division should
// store to maximize its production factor.
//
// A division's production factor is the product over materials of
// (1 + β·amount)^factor, subject to the warehouse constraint
// Σ amount·footprint = size. The allocator solves the Lagrangian stationary
// point in closed form:
//
//	amount[m] = (1/β)·((factor[m]/Σfactor)·(β·size + Σfootprint)/footprint[m] − 1)
//
// with the sums taken over the active materials only.
//
// Removal Rounds:
//
// A stationary point can ask for a negative amount of a material the industry
// barely uses. The allocator then drops the first such material (in
// enumeration order), sets it to zero and solves again on the smaller set.
// Each round removes exactly one material, so a solve takes at most
// NumMaterials+1 rounds. Amounts within Epsilon below zero are clamped to 0.
//
// Example usage:
//
//	sol, err := solver.Solve(core.Software, 200)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sol.Allocation) // Hardware: 1.529k	RealEstate: 14.112k	...
//
// The allocator is a pure function of its inputs and safe for concurrent use.
package solver

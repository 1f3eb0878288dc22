/*
Copyright 2025 The material-optimizer Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package solver

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/netscript-tools/material-optimizer/internal/logging"
	"github.com/netscript-tools/material-optimizer/pkg/core"
)

const (
	// Beta is the multiplier the game applies to stored material amounts when
	// computing a division's production factor.
	Beta = 0.002
	// Epsilon is the tolerance below zero still accepted as a zero allocation.
	Epsilon = 1e-12

	// maxRounds bounds the removal loop: one round per removable material plus
	// the final accepted round.
	maxRounds = core.NumMaterials + 1
)

// Solution is the outcome of one storage allocation.
type Solution struct {
	Industry  core.Industry
	TotalSize float64
	// Allocation holds the amount of each material to store.
	Allocation core.Allocation
	// Active is the set of materials left after infeasible ones were removed.
	Active core.MaterialSet
	// Rounds is the number of stationary points computed.
	Rounds int
}

// Removed returns the materials excluded from the allocation.
func (s *Solution) Removed() core.MaterialSet {
	return s.Active.Complement()
}

// StorageAllocator computes material allocations that maximize a division's
// production factor for a given amount of storage.
type StorageAllocator struct {
	// Logger receives per-round detail at V(logging.TRACE). The zero value discards.
	Logger logr.Logger
}

// Solve allocates totalSize storage across the materials of an industry.
func Solve(industry core.Industry, totalSize float64) (*Solution, error) {
	return StorageAllocator{}.Solve(industry, totalSize)
}

// SolveProfile allocates totalSize storage for an arbitrary production profile.
func SolveProfile(profile core.ProductionProfile, totalSize float64) (*Solution, error) {
	return StorageAllocator{}.SolveProfile(profile, totalSize)
}

// Solve allocates totalSize storage across the materials of an industry.
func (a StorageAllocator) Solve(industry core.Industry, totalSize float64) (*Solution, error) {
	profile, err := industry.Profile()
	if err != nil {
		return nil, err
	}
	sol, err := a.SolveProfile(profile, totalSize)
	if err != nil {
		return nil, fmt.Errorf("solving %s: %w", industry, err)
	}
	sol.Industry = industry
	return sol, nil
}

// SolveProfile allocates totalSize storage for an arbitrary production profile.
//
// Each round computes the stationary point of the Lagrangian over the active
// materials. If any active amount is negative, the first such material in
// enumeration order is dropped and the round repeats.
func (a StorageAllocator) SolveProfile(profile core.ProductionProfile, totalSize float64) (*Solution, error) {
	if math.IsNaN(totalSize) || math.IsInf(totalSize, 0) || totalSize < 0 {
		return nil, fmt.Errorf("%w: storage size must be a finite non-negative number, got %v", ErrInvalidArgument, totalSize)
	}
	for _, m := range core.Materials() {
		f := profile[m]
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return nil, fmt.Errorf("%w: production factor of %s must be a finite non-negative number, got %v", ErrInvalidArgument, m, f)
		}
	}

	footprints := core.Footprints()
	active := core.AllMaterials
	var storage core.Allocation

	for round := 1; round <= maxRounds; round++ {
		var alphaSum, footprintSum float64
		for _, m := range active.Materials() {
			footprintSum += footprints[m]
			alphaSum += profile[m]
		}

		// Lagrange stationarity condition over the active materials.
		for _, m := range active.Materials() {
			storage[m] = 1. / Beta * (profile[m]/alphaSum*(Beta*totalSize+footprintSum)/footprints[m] - 1.)
		}
		if m, bad := firstNonFinite(storage, active); bad {
			return nil, fmt.Errorf("%w: non-finite amount of %s with active materials %s", ErrConvergence, m, active)
		}

		a.Logger.V(logging.TRACE).Info("Computed stationary point",
			"round", round,
			"active", active.String(),
			"storage", storage)

		infeasible, found := firstInfeasible(storage, active)
		if !found {
			for _, m := range active.Materials() {
				if storage[m] < 0 {
					storage[m] = 0
				}
			}
			return &Solution{
				Industry:   core.Custom,
				TotalSize:  totalSize,
				Allocation: storage,
				Active:     active,
				Rounds:     round,
			}, nil
		}

		storage[infeasible] = 0
		active = active.Remove(infeasible)
		a.Logger.V(logging.DEBUG).Info("Removed infeasible material",
			"material", infeasible.String(),
			"round", round)
	}

	return nil, fmt.Errorf("%w: exceeded %d rounds", ErrConvergence, maxRounds)
}

// firstInfeasible returns the first active material, in enumeration order,
// whose amount is below -Epsilon.
func firstInfeasible(storage core.Allocation, active core.MaterialSet) (core.MaterialKind, bool) {
	for _, m := range active.Materials() {
		if storage[m] < -Epsilon {
			return m, true
		}
	}
	return 0, false
}

// firstNonFinite returns the first active material whose amount overflowed or
// is undefined.
func firstNonFinite(storage core.Allocation, active core.MaterialSet) (core.MaterialKind, bool) {
	for _, m := range active.Materials() {
		if math.IsNaN(storage[m]) || math.IsInf(storage[m], 0) {
			return m, true
		}
	}
	return 0, false
}

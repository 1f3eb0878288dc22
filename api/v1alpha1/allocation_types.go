package v1alpha1

import (
	"fmt"
	"math"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/utils/ptr"

	"github.com/netscript-tools/material-optimizer/pkg/core"
	"github.com/netscript-tools/material-optimizer/pkg/solver"
)

// AllocationRequest asks for the optimal material storage of one division.
type AllocationRequest struct {
	// Division is an optional label identifying the division in reports.
	// +optional
	Division string `json:"division,omitempty" yaml:"division,omitempty"`

	// Industry is the catalog name of the division's industry (e.g. "Software", "Real Estate").
	// +required
	Industry string `json:"industry" yaml:"industry"`

	// Size is the warehouse size available to the division.
	// +required
	Size float64 `json:"size" yaml:"size"`

	// StorageFraction is the share of Size reserved for boost materials, in (0, 1].
	// Defaults to 1 when omitted.
	// +optional
	StorageFraction *float64 `json:"storageFraction,omitempty" yaml:"storageFraction,omitempty"`
}

// EffectiveSize returns the storage budget handed to the solver.
func (r AllocationRequest) EffectiveSize() float64 {
	return r.Size * ptr.Deref(r.StorageFraction, 1)
}

// ResolveIndustry parses the request's industry name.
func (r AllocationRequest) ResolveIndustry() (core.Industry, error) {
	return core.ParseIndustry(r.Industry)
}

// Validate reports every problem with the request at once.
func (r AllocationRequest) Validate() error {
	var errs []error
	if _, err := r.ResolveIndustry(); err != nil {
		errs = append(errs, err)
	}
	if math.IsNaN(r.Size) || math.IsInf(r.Size, 0) || r.Size < 0 {
		errs = append(errs, fmt.Errorf("%w: size must be a finite non-negative number, got %v", solver.ErrInvalidArgument, r.Size))
	}
	if r.StorageFraction != nil {
		f := *r.StorageFraction
		if math.IsNaN(f) || f <= 0 || f > 1 {
			errs = append(errs, fmt.Errorf("%w: storageFraction must be in (0, 1], got %v", solver.ErrInvalidArgument, f))
		}
	}
	return utilerrors.NewAggregate(errs)
}

// MaterialAmount is the allocated amount of one material.
type MaterialAmount struct {
	Material string  `json:"material" yaml:"material"`
	Amount   float64 `json:"amount" yaml:"amount"`
}

// AllocationReport is the serializable outcome of an AllocationRequest.
type AllocationReport struct {
	Division string `json:"division,omitempty" yaml:"division,omitempty"`
	Industry string `json:"industry" yaml:"industry"`

	// TotalSize is the storage budget that was allocated.
	TotalSize float64 `json:"totalSize" yaml:"totalSize"`

	// Materials lists every material in enumeration order.
	Materials []MaterialAmount `json:"materials,omitempty" yaml:"materials,omitempty"`

	// Removed lists the materials excluded because their optimal amount was negative.
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`

	// Rounds is the number of stationary points the solver computed.
	Rounds int `json:"rounds,omitempty" yaml:"rounds,omitempty"`

	// Error is set when the request could not be solved.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewAllocationReport builds the report for a solved request.
func NewAllocationReport(req AllocationRequest, sol *solver.Solution) AllocationReport {
	report := AllocationReport{
		Division:  req.Division,
		Industry:  sol.Industry.String(),
		TotalSize: sol.TotalSize,
		Rounds:    sol.Rounds,
		Materials: make([]MaterialAmount, 0, core.NumMaterials),
	}
	for _, m := range core.Materials() {
		report.Materials = append(report.Materials, MaterialAmount{
			Material: m.String(),
			Amount:   sol.Allocation.Get(m),
		})
	}
	for _, m := range sol.Removed().Materials() {
		report.Removed = append(report.Removed, m.String())
	}
	return report
}

// NewFailedReport builds the report for a request that failed.
// A non-finite size is reported as 0 so the report stays serializable.
func NewFailedReport(req AllocationRequest, err error) AllocationReport {
	size := req.EffectiveSize()
	if math.IsNaN(size) || math.IsInf(size, 0) {
		size = 0
	}
	return AllocationReport{
		Division:  req.Division,
		Industry:  req.Industry,
		TotalSize: size,
		Error:     err.Error(),
	}
}

// Allocation returns the report's amounts indexed by material. Unknown
// material names are ignored.
func (r AllocationReport) Allocation() core.Allocation {
	var out core.Allocation
	for _, ma := range r.Materials {
		if m, err := core.ParseMaterial(ma.Material); err == nil {
			out[m] = ma.Amount
		}
	}
	return out
}

// Failed reports whether the request behind the report failed.
func (r AllocationReport) Failed() bool {
	return r.Error != ""
}

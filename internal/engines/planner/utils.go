package planner

import (
	"strings"

	"github.com/netscript-tools/material-optimizer/api/v1alpha1"
)

// Summary counts the outcomes of a planning run.
type Summary struct {
	Solved  int
	Failed  int
	Skipped int
	// UsedSpace is the storage budget allocated across all solved requests.
	UsedSpace float64
}

// Summarize tallies the outcomes of a batch of reports.
func Summarize(reports []v1alpha1.AllocationReport) Summary {
	var s Summary
	for _, r := range reports {
		switch {
		case !r.Failed():
			s.Solved++
			s.UsedSpace += r.Allocation().UsedSpace()
		case strings.HasPrefix(r.Error, ErrSkipped.Error()):
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

package solver

import (
	"errors"

	"github.com/netscript-tools/material-optimizer/pkg/core"
)

var (
	// ErrUnknownIndustry is returned when the requested industry is not in the catalog.
	ErrUnknownIndustry = core.ErrUnknownIndustry
	// ErrInvalidArgument is returned for a negative or non-finite storage size,
	// or a profile with negative or non-finite factors.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConvergence is returned when the removal loop fails to settle within
	// its round limit or produces non-finite values.
	ErrConvergence = errors.New("allocation did not converge")
)

// Package core provides the domain tables and value types of the material optimizer.
//
// This package contains the fixed data the solver works against:
//
//   - MaterialKind: the four boost materials a division can store, in their
//     fixed enumeration order (Hardware, RealEstate, Robots, AICores)
//   - MaterialSet: a bitmask over MaterialKind, used as the solver's active set
//   - Footprint: the storage space one unit of each material consumes
//   - Industry: the closed catalog of division categories
//   - ProductionProfile: per-industry production factors of every material
//   - Allocation: the computed amount of each material to store
//
// Example usage:
//
//	industry, err := core.ParseIndustry("Software")
//	if err != nil {
//	    return err
//	}
//	profile, _ := industry.Profile()
//	log.Info("profile", "hardware", profile.Factor(core.Hardware))
//
// The tables are package-level values that never change after init; every
// function here is safe for concurrent use.
package core

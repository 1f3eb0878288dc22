// Package scripting runs Lua scripts against the storage allocator.
//
// Scripts see a global table named corp:
//
//	corp.optimal_materials(industry, size) -> { Hardware = n, RealEstate = n, Robots = n, AICores = n }
//	corp.industries()                      -> { "Energy", "Utilities", ... }
//	corp.format(allocation)                -> "Hardware: 1.529k\t\t..."
//
// print writes to the Runtime's output instead of the process stdout.
package scripting

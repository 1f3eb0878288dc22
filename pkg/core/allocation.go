package core

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Allocation is the amount of every material to keep in storage, indexed by
// MaterialKind.
type Allocation [NumMaterials]float64

// Get returns the amount allocated to m.
func (a Allocation) Get(m MaterialKind) float64 {
	if !m.Valid() {
		return 0
	}
	return a[m]
}

// UsedSpace returns the storage space the allocation occupies.
func (a Allocation) UsedSpace() float64 {
	fp := Footprints()
	return floats.Dot(a[:], fp[:])
}

// Map returns the allocation keyed by material name.
func (a Allocation) Map() map[string]float64 {
	out := make(map[string]float64, NumMaterials)
	for _, m := range Materials() {
		out[m.String()] = a[m]
	}
	return out
}

// String renders the allocation as one line, each amount rounded to whole
// units and shown in thousands:
//
//	Hardware: 1.529k\t\tRealEstate: 14.112k\t\tRobots: 0k\t\tAICores: 0.377k
func (a Allocation) String() string {
	parts := make([]string, 0, NumMaterials)
	for _, m := range Materials() {
		k := math.Round(a[m]) / 1e3
		parts = append(parts, m.String()+": "+formatThousands(k)+"k")
	}
	return strings.Join(parts, "\t\t")
}

// exponentThreshold is the magnitude from which amounts switch to exponent
// notation, e.g. 1e+21.
const exponentThreshold = 1e21

// formatThousands prints k in its shortest form, in exponent notation once it
// reaches exponentThreshold.
func formatThousands(k float64) string {
	if math.Abs(k) >= exponentThreshold {
		return strconv.FormatFloat(k, 'e', -1, 64)
	}
	return strconv.FormatFloat(k, 'f', -1, 64)
}

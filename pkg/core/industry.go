package core

import (
	"errors"
	"fmt"
)

// ErrUnknownIndustry is returned when an industry is not part of the catalog.
var ErrUnknownIndustry = errors.New("unknown industry")

// Industry identifies a division category in the production factor catalog.
type Industry int

const (
	Energy Industry = iota
	Utilities
	Agriculture
	Fishing
	Mining
	Food
	Tobacco
	Chemical
	Pharmaceutical
	Computer
	Robotics
	Software
	Healthcare
	RealEstateIndustry

	numIndustries

	// Custom marks results computed from a caller-supplied profile rather
	// than a catalog industry.
	Custom Industry = -1
)

// ProductionProfile holds the production factor of every material for one
// industry, indexed by MaterialKind.
type ProductionProfile [NumMaterials]float64

// Factor returns the production factor of m.
func (p ProductionProfile) Factor(m MaterialKind) float64 {
	if !m.Valid() {
		return 0
	}
	return p[m]
}

type industryEntry struct {
	name    string
	profile ProductionProfile
}

// catalog is ordered by Industry. Profiles are {Hardware, RealEstate, Robots, AICores}.
var catalog = [numIndustries]industryEntry{
	Energy:             {"Energy", ProductionProfile{0, 0.65, 0.05, 0.3}},
	Utilities:          {"Utilities", ProductionProfile{0, 0.5, 0.4, 0.4}},
	Agriculture:        {"Agriculture", ProductionProfile{0.2, 0.72, 0.3, 0.3}},
	Fishing:            {"Fishing", ProductionProfile{0.35, 0.15, 0.5, 0.2}},
	Mining:             {"Mining", ProductionProfile{0.4, 0.3, 0.45, 0.45}},
	Food:               {"Food", ProductionProfile{0.15, 0.05, 0.3, 0.25}},
	Tobacco:            {"Tobacco", ProductionProfile{0.15, 0.15, 0.2, 0.15}},
	Chemical:           {"Chemical", ProductionProfile{0.2, 0.25, 0.25, 0.2}},
	Pharmaceutical:     {"Pharmaceutical", ProductionProfile{0.15, 0.05, 0.25, 0.2}},
	Computer:           {"Computer", ProductionProfile{0, 0.2, 0.36, 0.19}},
	Robotics:           {"Robotics", ProductionProfile{0.19, 0.32, 0, 0.36}},
	Software:           {"Software", ProductionProfile{0.25, 0.15, 0.05, 0.18}},
	Healthcare:         {"Healthcare", ProductionProfile{0.1, 0.1, 0.1, 0.1}},
	RealEstateIndustry: {"Real Estate", ProductionProfile{0.05, 0, 0.6, 0.6}},
}

// Industries returns every catalog industry in declaration order.
func Industries() []Industry {
	out := make([]Industry, numIndustries)
	for i := range out {
		out[i] = Industry(i)
	}
	return out
}

// Valid reports whether i is part of the catalog.
func (i Industry) Valid() bool {
	return i >= 0 && i < numIndustries
}

func (i Industry) String() string {
	if i == Custom {
		return "custom"
	}
	if !i.Valid() {
		return fmt.Sprintf("Industry(%d)", int(i))
	}
	return catalog[i].name
}

// Profile returns the production profile of the industry.
func (i Industry) Profile() (ProductionProfile, error) {
	if !i.Valid() {
		return ProductionProfile{}, fmt.Errorf("%w: %s", ErrUnknownIndustry, i)
	}
	return catalog[i].profile, nil
}

// ParseIndustry resolves a catalog name. The exact catalog name always
// matches; otherwise case, spaces, dashes and underscores are ignored, so
// "RealEstate", "real-estate" and "REAL_ESTATE" all resolve to "Real Estate".
func ParseIndustry(name string) (Industry, error) {
	for i, e := range catalog {
		if e.name == name {
			return Industry(i), nil
		}
	}
	key := normalizeName(name)
	if key != "" {
		for i, e := range catalog {
			if normalizeName(e.name) == key {
				return Industry(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIndustry, name)
}

// MarshalText implements encoding.TextMarshaler.
func (i Industry) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndustry, i)
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Industry) UnmarshalText(text []byte) error {
	parsed, err := ParseIndustry(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

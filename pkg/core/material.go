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

package core

import (
	"fmt"
	"strings"
)

// MaterialKind identifies one of the boost materials a division can store.
// The declaration order is the enumeration order used for output and for
// tie-breaking in the solver.
type MaterialKind int

const (
	Hardware MaterialKind = iota
	RealEstate
	Robots
	AICores

	// NumMaterials is the number of material kinds.
	NumMaterials = 4
)

var materialNames = [NumMaterials]string{
	Hardware:   "Hardware",
	RealEstate: "RealEstate",
	Robots:     "Robots",
	AICores:    "AICores",
}

// footprints is the storage space consumed by one unit of each material.
var footprints = [NumMaterials]float64{
	Hardware:   0.06,
	RealEstate: 0.005,
	Robots:     0.5,
	AICores:    0.1,
}

// Materials returns every material kind in enumeration order.
func Materials() []MaterialKind {
	return []MaterialKind{Hardware, RealEstate, Robots, AICores}
}

// Valid reports whether m is one of the known material kinds.
func (m MaterialKind) Valid() bool {
	return m >= 0 && m < NumMaterials
}

func (m MaterialKind) String() string {
	if !m.Valid() {
		return fmt.Sprintf("MaterialKind(%d)", int(m))
	}
	return materialNames[m]
}

// Footprint returns the storage space taken by one unit of the material.
func (m MaterialKind) Footprint() float64 {
	if !m.Valid() {
		return 0
	}
	return footprints[m]
}

// Footprints returns a copy of the per-unit footprint table.
func Footprints() [NumMaterials]float64 {
	return footprints
}

// ParseMaterial maps a material name to its kind. Matching ignores case,
// spaces, dashes and underscores, so "ai-cores" and "AI Cores" both resolve.
func ParseMaterial(name string) (MaterialKind, error) {
	key := normalizeName(name)
	for m, n := range materialNames {
		if normalizeName(n) == key {
			return MaterialKind(m), nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", name)
}

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// MaterialSet is a set of material kinds stored as a bitmask.
type MaterialSet uint8

// AllMaterials contains every material kind.
const AllMaterials MaterialSet = 1<<NumMaterials - 1

// Has reports whether m is in the set.
func (s MaterialSet) Has(m MaterialKind) bool {
	return m.Valid() && s&(1<<m) != 0
}

// Remove returns the set without m.
func (s MaterialSet) Remove(m MaterialKind) MaterialSet {
	if !m.Valid() {
		return s
	}
	return s &^ (1 << m)
}

// Add returns the set with m.
func (s MaterialSet) Add(m MaterialKind) MaterialSet {
	if !m.Valid() {
		return s
	}
	return s | 1<<m
}

// Len returns the number of materials in the set.
func (s MaterialSet) Len() int {
	n := 0
	for m := MaterialKind(0); m < NumMaterials; m++ {
		if s.Has(m) {
			n++
		}
	}
	return n
}

// Materials returns the members of the set in enumeration order.
func (s MaterialSet) Materials() []MaterialKind {
	out := make([]MaterialKind, 0, NumMaterials)
	for m := MaterialKind(0); m < NumMaterials; m++ {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// Complement returns the materials not in the set.
func (s MaterialSet) Complement() MaterialSet {
	return AllMaterials &^ s
}

func (s MaterialSet) String() string {
	names := make([]string, 0, NumMaterials)
	for _, m := range s.Materials() {
		names = append(names, m.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

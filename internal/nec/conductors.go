// Package nec holds the static NEC reference tables used by the calculators.
// Tables are built once at package initialization and never mutated; lookups
// return copies.
package nec

import (
	"fmt"
	"strings"
)

// Material is the conductor metal.
type Material string

const (
	Copper   Material = "copper"
	Aluminum Material = "aluminum"
)

// Valid reports whether m is a tabulated conductor material.
func (m Material) Valid() bool { return m == Copper || m == Aluminum }

// ParseMaterial accepts "copper"/"cu" and "aluminum"/"aluminium"/"al".
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copper", "cu":
		return Copper, nil
	case "aluminum", "aluminium", "al":
		return Aluminum, nil
	}
	return "", fmt.Errorf("unknown conductor material %q", s)
}

// TempRating is the insulation temperature column of Table 310.16.
type TempRating int

const (
	Rated60 TempRating = 60
	Rated75 TempRating = 75
	Rated90 TempRating = 90
)

// Valid reports whether r is one of the tabulated columns.
func (r TempRating) Valid() bool { return r == Rated60 || r == Rated75 || r == Rated90 }

// ConductorSpec is one row of the ampacity/resistance tables for a material.
type ConductorSpec struct {
	Size     Size     `json:"size"`
	Material Material `json:"material"`
	// Ohms per 1000 ft, uncoated stranded, at 75°C (Chapter 9 Table 8).
	Resistance float64 `json:"resistance_ohms_per_kft"`
	Ampacity60 float64 `json:"ampacity_60c"`
	Ampacity75 float64 `json:"ampacity_75c"`
	Ampacity90 float64 `json:"ampacity_90c"`
}

// Ampacity returns the table ampacity for the given temperature column, or 0
// for an unknown column.
func (c ConductorSpec) Ampacity(r TempRating) float64 {
	switch r {
	case Rated60:
		return c.Ampacity60
	case Rated75:
		return c.Ampacity75
	case Rated90:
		return c.Ampacity90
	}
	return 0
}

// OhmsPerFoot returns the conductor resistance per foot.
func (c ConductorSpec) OhmsPerFoot() float64 { return c.Resistance / 1000 }

type conductorRow struct {
	size       Size
	resistance float64
	a60        float64
	a75        float64
	a90        float64
}

// Table 310.16 (not more than three current-carrying conductors, 30°C ambient)
// joined with Chapter 9 Table 8 resistance.
var copperRows = []conductorRow{
	{AWG14, 3.14, 15, 20, 25},
	{AWG12, 1.98, 20, 25, 30},
	{AWG10, 1.24, 30, 35, 40},
	{AWG8, 0.778, 40, 50, 55},
	{AWG6, 0.491, 55, 65, 75},
	{AWG4, 0.308, 70, 85, 95},
	{AWG3, 0.245, 85, 100, 115},
	{AWG2, 0.194, 95, 115, 130},
	{AWG1, 0.154, 110, 130, 145},
	{AWG1_0, 0.122, 125, 150, 170},
	{AWG2_0, 0.0967, 145, 175, 195},
	{AWG3_0, 0.0766, 165, 200, 225},
	{AWG4_0, 0.0608, 195, 230, 260},
	{KCMIL250, 0.0515, 215, 255, 290},
	{KCMIL300, 0.0429, 240, 285, 320},
	{KCMIL350, 0.0367, 260, 310, 350},
	{KCMIL400, 0.0321, 280, 335, 380},
	{KCMIL500, 0.0258, 320, 380, 430},
	{KCMIL600, 0.0214, 350, 420, 475},
	{KCMIL700, 0.0184, 385, 460, 520},
	{KCMIL750, 0.0171, 400, 475, 535},
	{KCMIL800, 0.0161, 410, 490, 555},
	{KCMIL900, 0.0143, 435, 520, 585},
	{KCMIL1000, 0.0129, 455, 545, 615},
}

// Aluminum starts at 12 AWG; 14 AWG aluminum is not tabulated.
var aluminumRows = []conductorRow{
	{AWG12, 3.25, 15, 20, 25},
	{AWG10, 2.04, 25, 30, 35},
	{AWG8, 1.28, 35, 40, 45},
	{AWG6, 0.808, 40, 50, 55},
	{AWG4, 0.508, 55, 65, 75},
	{AWG3, 0.403, 65, 75, 85},
	{AWG2, 0.319, 75, 90, 100},
	{AWG1, 0.253, 85, 100, 115},
	{AWG1_0, 0.201, 100, 120, 135},
	{AWG2_0, 0.159, 115, 135, 150},
	{AWG3_0, 0.126, 130, 155, 175},
	{AWG4_0, 0.100, 150, 180, 205},
	{KCMIL250, 0.0847, 170, 205, 230},
	{KCMIL300, 0.0707, 195, 230, 260},
	{KCMIL350, 0.0605, 210, 250, 280},
	{KCMIL400, 0.0529, 225, 270, 305},
	{KCMIL500, 0.0424, 260, 310, 350},
	{KCMIL600, 0.0353, 285, 340, 385},
	{KCMIL700, 0.0303, 315, 375, 425},
	{KCMIL750, 0.0282, 320, 385, 435},
	{KCMIL800, 0.0265, 330, 395, 445},
	{KCMIL900, 0.0235, 355, 425, 480},
	{KCMIL1000, 0.0212, 375, 445, 500},
}

var conductors = map[Material]map[Size]ConductorSpec{
	Copper:   buildConductors(Copper, copperRows),
	Aluminum: buildConductors(Aluminum, aluminumRows),
}

func buildConductors(m Material, rows []conductorRow) map[Size]ConductorSpec {
	out := make(map[Size]ConductorSpec, len(rows))
	for _, r := range rows {
		out[r.size] = ConductorSpec{
			Size:       r.size,
			Material:   m,
			Resistance: r.resistance,
			Ampacity60: r.a60,
			Ampacity75: r.a75,
			Ampacity90: r.a90,
		}
	}
	return out
}

// Conductor looks up the tabulated spec for a size and material.
func Conductor(size Size, m Material) (ConductorSpec, bool) {
	spec, ok := conductors[m][size]
	return spec, ok
}

// Conductors returns every tabulated conductor of a material, smallest first.
func Conductors(m Material) []ConductorSpec {
	var out []ConductorSpec
	for _, s := range Sizes() {
		if spec, ok := conductors[m][s]; ok {
			out = append(out, spec)
		}
	}
	return out
}

// 240.4(D) small-conductor overcurrent limits.
var smallConductorCaps = map[Material]map[Size]float64{
	Copper:   {AWG14: 15, AWG12: 20, AWG10: 30},
	Aluminum: {AWG12: 15, AWG10: 25},
}

// SmallConductorCap returns the 240.4(D) overcurrent limit for a size, if any.
func SmallConductorCap(size Size, m Material) (float64, bool) {
	limit, ok := smallConductorCaps[m][size]
	return limit, ok
}

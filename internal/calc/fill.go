package calc

import (
	"math"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

// ConduitFill compares total conductor area with the raceway's allowable fill.
type ConduitFill struct {
	Conductors  int     `json:"conductors"`
	TotalArea   float64 `json:"total_area_sq_in"`
	ConduitArea float64 `json:"conduit_area_sq_in"`
	Percent     float64 `json:"percent"`
	MaxPercent  float64 `json:"max_percent"`
	Compliant   bool    `json:"compliant"`
}

// ComputeConduitFill returns Σ areas / conduit area × 100, checked against
// the fill bracket for len(conductorAreas).
func ComputeConduitFill(conductorAreas []float64, conduitArea float64, nipple bool) (ConduitFill, error) {
	if len(conductorAreas) == 0 {
		return ConduitFill{}, invalid("conductors", "at least one conductor is required")
	}
	if math.IsNaN(conduitArea) || conduitArea <= 0 {
		return ConduitFill{}, invalid("conduit_area", "must be positive, got %v", conduitArea)
	}

	var total float64
	for i, a := range conductorAreas {
		if math.IsNaN(a) || a <= 0 {
			return ConduitFill{}, invalid("conductors", "area #%d must be positive, got %v", i+1, a)
		}
		total += a
	}

	rule, _ := nec.FillRuleFor(len(conductorAreas), nipple)
	pct := total / conduitArea * 100
	return ConduitFill{
		Conductors:  len(conductorAreas),
		TotalArea:   total,
		ConduitArea: conduitArea,
		Percent:     pct,
		MaxPercent:  rule.Percent,
		Compliant:   pct <= rule.Percent,
	}, nil
}

// ConductorGroup is Count identical conductors.
type ConductorGroup struct {
	Size       nec.Size       `json:"size"`
	Insulation nec.Insulation `json:"insulation"`
	Count      int            `json:"count"`
}

// ConductorAreas expands groups into one Table 5 area per conductor.
func ConductorAreas(groups []ConductorGroup) ([]float64, error) {
	var out []float64
	for i, g := range groups {
		if g.Count <= 0 {
			return nil, invalid("conductors", "group #%d count must be positive, got %d", i+1, g.Count)
		}
		if !g.Size.Valid() {
			return nil, invalid("conductors", "group #%d has no conductor size", i+1)
		}
		area, ok := nec.ConductorArea(g.Size, g.Insulation)
		if !ok {
			return nil, unsupported("%s %s has no tabulated area", g.Size, g.Insulation)
		}
		for n := 0; n < g.Count; n++ {
			out = append(out, area)
		}
	}
	if len(out) == 0 {
		return nil, invalid("conductors", "at least one conductor is required")
	}
	return out, nil
}

// SizeConduit picks the smallest trade size of a raceway type whose fill
// stays within the allowable percentage.
func SizeConduit(groups []ConductorGroup, t nec.ConduitType, nipple bool) (nec.ConduitSpec, ConduitFill, error) {
	areas, err := ConductorAreas(groups)
	if err != nil {
		return nec.ConduitSpec{}, ConduitFill{}, err
	}
	conduits := nec.Conduits(t)
	if len(conduits) == 0 {
		return nec.ConduitSpec{}, ConduitFill{}, unsupported("conduit type %q", string(t))
	}

	var last ConduitFill
	for _, c := range conduits {
		fill, err := ComputeConduitFill(areas, c.Area, nipple)
		if err != nil {
			return nec.ConduitSpec{}, ConduitFill{}, err
		}
		if fill.Compliant {
			return c, fill, nil
		}
		last = fill
	}
	return nec.ConduitSpec{}, last, unsupported("conductors exceed the largest %s trade size", t)
}

package calc

import (
	"math"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

// ValidateDemandRule checks that tiers are strictly increasing, every percent
// is in [0, 100], and the final tier is open-ended. Those conditions make the
// demand function monotonic and never larger than the connected load.
func ValidateDemandRule(rule nec.DemandFactorRule) error {
	if len(rule.Tiers) == 0 {
		return invalid("demand_rule", "rule %q has no tiers", rule.Name)
	}
	prev := 0.0
	for i, t := range rule.Tiers {
		if math.IsNaN(t.Percent) || t.Percent < 0 || t.Percent > 100 {
			return invalid("demand_rule", "tier %d percent must be in [0, 100], got %v", i+1, t.Percent)
		}
		last := i == len(rule.Tiers)-1
		if last {
			if t.Through != 0 {
				return invalid("demand_rule", "final tier must be open-ended")
			}
			break
		}
		if t.Through <= prev {
			return invalid("demand_rule", "tier %d bound %v must exceed %v", i+1, t.Through, prev)
		}
		prev = t.Through
	}
	return nil
}

// ComputeDemandLoad applies a rule's tiers in order and sums each tier's
// contribution.
func ComputeDemandLoad(connectedWatts float64, rule nec.DemandFactorRule) (float64, error) {
	if math.IsNaN(connectedWatts) || math.IsInf(connectedWatts, 0) || connectedWatts < 0 {
		return 0, invalid("connected_watts", "must be zero or positive, got %v", connectedWatts)
	}
	if err := ValidateDemandRule(rule); err != nil {
		return 0, err
	}

	var demand, floor float64
	for _, t := range rule.Tiers {
		if connectedWatts <= floor {
			break
		}
		ceil := t.Through
		if ceil == 0 || connectedWatts < ceil {
			ceil = connectedWatts
		}
		demand += (ceil - floor) * t.Percent / 100
		floor = ceil
	}
	return math.Min(demand, connectedWatts), nil
}

// DryerDemand applies 220.54: each dryer counts at the larger of 5000 W or
// its nameplate, and the total is scaled by the Table 220.54 factor for the
// number of dryers.
func DryerDemand(nameplateWatts []float64) (float64, error) {
	var total float64
	for i, w := range nameplateWatts {
		if math.IsNaN(w) || w <= 0 {
			return 0, invalid("dryer_watts", "dryer #%d rating must be positive, got %v", i+1, w)
		}
		total += math.Max(w, nec.DryerMinimumWatts)
	}
	return total * nec.DryerDemandPercent(len(nameplateWatts)) / 100, nil
}

// RangeDemand applies Table 220.55 to one household cooking appliance.
// Ratings up to 8.75 kW use 80% (columns A and B), ratings up to 12 kW use
// the 8 kW of column C, and larger ratings raise column C by 5% per kW or
// major fraction above 12 kW, up to 27 kW.
func RangeDemand(ratingWatts float64) (float64, error) {
	switch {
	case math.IsNaN(ratingWatts) || ratingWatts < 0:
		return 0, invalid("range_watts", "must be zero or positive, got %v", ratingWatts)
	case ratingWatts > nec.RangeMaxRatingWatts:
		return 0, unsupported("cooking appliance rated above %.0f W", nec.RangeMaxRatingWatts)
	case ratingWatts <= nec.RangeColumnBLimitWatts:
		return ratingWatts * nec.RangeSmallPercent / 100, nil
	case ratingWatts <= nec.RangeColumnCLimitWatts:
		return nec.RangeColumnCWatts, nil
	}

	overKW := (ratingWatts - nec.RangeColumnCLimitWatts) / 1000
	steps := math.Floor(overKW)
	if overKW-steps > 0.5 {
		steps++
	}
	return nec.RangeColumnCWatts * (1 + steps*nec.RangeIncreasePerKW/100), nil
}

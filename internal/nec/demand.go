package nec

import "sort"

// DemandTier applies Percent to the slice of connected load above the
// previous tier's Through and up to this tier's Through. Through of 0 means
// "the remainder".
type DemandTier struct {
	Through float64 `json:"through_watts,omitempty"`
	Percent float64 `json:"percent"`
}

// DemandFactorRule is a named tiered demand schedule.
type DemandFactorRule struct {
	Name      string       `json:"name"`
	Reference string       `json:"reference"`
	Tiers     []DemandTier `json:"tiers"`
}

// Rule names.
const (
	RuleDwellingLighting      = "dwelling-lighting"
	RuleNonDwellingReceptacle = "non-dwelling-receptacles"
	RuleOptionalDwelling      = "optional-dwelling"
)

var demandRules = map[string]DemandFactorRule{
	RuleDwellingLighting: {
		Name:      RuleDwellingLighting,
		Reference: "NEC 220.42",
		Tiers: []DemandTier{
			{Through: 3000, Percent: 100},
			{Through: 120000, Percent: 35},
			{Percent: 25},
		},
	},
	RuleNonDwellingReceptacle: {
		Name:      RuleNonDwellingReceptacle,
		Reference: "NEC 220.44",
		Tiers: []DemandTier{
			{Through: 10000, Percent: 100},
			{Percent: 50},
		},
	},
	RuleOptionalDwelling: {
		Name:      RuleOptionalDwelling,
		Reference: "NEC 220.82(B)",
		Tiers: []DemandTier{
			{Through: 10000, Percent: 100},
			{Percent: 40},
		},
	},
}

// DemandRule looks up a built-in rule by name. The returned rule owns its tiers.
func DemandRule(name string) (DemandFactorRule, bool) {
	rule, ok := demandRules[name]
	if !ok {
		return DemandFactorRule{}, false
	}
	rule.Tiers = append([]DemandTier(nil), rule.Tiers...)
	return rule, true
}

// DemandRules returns every built-in rule, sorted by name.
func DemandRules() []DemandFactorRule {
	out := make([]DemandFactorRule, 0, len(demandRules))
	for name := range demandRules {
		rule, _ := DemandRule(name)
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DryerMinimumWatts is the per-dryer floor of 220.54.
const DryerMinimumWatts = 5000.0

// DryerDemandPercent returns the Table 220.54 factor for a number of dryers.
func DryerDemandPercent(count int) float64 {
	switch {
	case count <= 4:
		return 100
	case count == 5:
		return 85
	case count == 6:
		return 75
	case count == 7:
		return 65
	case count == 8:
		return 60
	case count == 9:
		return 55
	case count == 10:
		return 50
	case count == 11:
		return 47
	case count <= 23:
		return 47 - float64(count-11)
	case count <= 42:
		return 35 - 0.5*float64(count-23)
	default:
		return 25
	}
}

// Table 220.55 limits for a single household cooking appliance.
const (
	RangeColumnALimitWatts = 3500.0
	RangeColumnBLimitWatts = 8750.0
	RangeColumnCLimitWatts = 12000.0
	RangeMaxRatingWatts    = 27000.0
	RangeColumnCWatts      = 8000.0
	RangeSmallPercent      = 80.0
	RangeIncreasePerKW     = 5.0
)

// Dwelling load constants from Article 220.
const (
	LightingVAPerSqFt          = 3.0
	SmallApplianceCircuitWatts = 1500.0
	LaundryCircuitWatts        = 1500.0
	MinSmallApplianceCircuits  = 2
	MinLaundryCircuits         = 1
	FixedApplianceDemandCount  = 4
	FixedApplianceDemandPct    = 75.0
)

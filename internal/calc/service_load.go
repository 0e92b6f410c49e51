package calc

import (
	"fmt"
	"math"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

// Dwelling load calculation methods of Article 220.
const (
	MethodStandard = "standard"
	MethodOptional = "optional"
)

// ServiceLoadInput describes a one-family dwelling.
type ServiceLoadInput struct {
	// Method is "standard" (default) or "optional".
	Method                 string    `json:"method,omitempty"`
	SquareFeet             float64   `json:"square_feet"`
	SmallApplianceCircuits int       `json:"small_appliance_circuits,omitempty"`
	LaundryCircuits        int       `json:"laundry_circuits,omitempty"`
	FixedAppliancesWatts   []float64 `json:"fixed_appliances_watts,omitempty"`
	DryersWatts            []float64 `json:"dryers_watts,omitempty"`
	RangeWatts             float64   `json:"range_watts,omitempty"`
	HeatingWatts           float64   `json:"heating_watts,omitempty"`
	CoolingWatts           float64   `json:"cooling_watts,omitempty"`
	Voltage                float64   `json:"voltage,omitempty"`
}

// ServiceSizing is the outcome of ServiceLoad.
type ServiceSizing struct {
	Method            string
	ConnectedWatts    float64
	DemandWatts       float64
	Amps              float64
	ServiceRating     int
	CopperConductor   nec.Size
	AluminumConductor nec.Size
	Notes             []string
}

// ServiceLoad computes the dwelling service demand and the resulting service
// rating and service-entrance conductors (310.12, 83% of the rating).
func ServiceLoad(in ServiceLoadInput) (ServiceSizing, error) {
	if err := validateServiceInput(&in); err != nil {
		return ServiceSizing{}, err
	}

	var (
		out ServiceSizing
		err error
	)
	switch in.Method {
	case MethodStandard:
		out, err = standardMethod(in)
	case MethodOptional:
		out, err = optionalMethod(in)
	default:
		return ServiceSizing{}, invalid("method", "must be %q or %q, got %q", MethodStandard, MethodOptional, in.Method)
	}
	if err != nil {
		return ServiceSizing{}, err
	}

	out.Method = in.Method
	out.Amps = out.DemandWatts / in.Voltage
	out.ServiceRating = nec.StandardServiceRatings[0]
	for _, r := range nec.StandardServiceRatings {
		if float64(r) >= out.Amps {
			out.ServiceRating = r
			break
		}
	}
	if out.Amps > float64(out.ServiceRating) {
		return ServiceSizing{}, &NoSizeFoundError{Amps: out.Amps, Detail: "exceeds the largest standard dwelling service"}
	}
	if out.Amps < float64(nec.StandardServiceRatings[0]) {
		out.Notes = append(out.Notes, "230.79(C) minimum 100 A service applies")
	}

	conductorAmps := float64(out.ServiceRating) * nec.ServiceConductorFactor
	if out.CopperConductor, err = SelectWireSize(conductorAmps, nec.Copper, nec.Rated75, 1, 1); err != nil {
		return ServiceSizing{}, err
	}
	if out.AluminumConductor, err = SelectWireSize(conductorAmps, nec.Aluminum, nec.Rated75, 1, 1); err != nil {
		return ServiceSizing{}, err
	}
	return out, nil
}

func validateServiceInput(in *ServiceLoadInput) error {
	if in.Method == "" {
		in.Method = MethodStandard
	}
	if in.Voltage == 0 {
		in.Voltage = 240
	}
	if math.IsNaN(in.Voltage) || in.Voltage <= 0 {
		return invalid("voltage", "must be positive, got %v", in.Voltage)
	}
	if math.IsNaN(in.SquareFeet) || in.SquareFeet <= 0 {
		return invalid("square_feet", "must be positive, got %v", in.SquareFeet)
	}
	if in.SmallApplianceCircuits < 0 || in.LaundryCircuits < 0 {
		return invalid("circuits", "circuit counts must not be negative")
	}
	if in.SmallApplianceCircuits < nec.MinSmallApplianceCircuits {
		in.SmallApplianceCircuits = nec.MinSmallApplianceCircuits
	}
	if in.LaundryCircuits < nec.MinLaundryCircuits {
		in.LaundryCircuits = nec.MinLaundryCircuits
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"range_watts", in.RangeWatts},
		{"heating_watts", in.HeatingWatts},
		{"cooling_watts", in.CoolingWatts},
	} {
		if math.IsNaN(f.value) || f.value < 0 {
			return invalid(f.name, "must be zero or positive, got %v", f.value)
		}
	}
	for i, w := range in.FixedAppliancesWatts {
		if math.IsNaN(w) || w <= 0 {
			return invalid("fixed_appliances_watts", "appliance #%d rating must be positive, got %v", i+1, w)
		}
	}
	return nil
}

func generalLoad(in ServiceLoadInput) float64 {
	return in.SquareFeet*nec.LightingVAPerSqFt +
		float64(in.SmallApplianceCircuits)*nec.SmallApplianceCircuitWatts +
		float64(in.LaundryCircuits)*nec.LaundryCircuitWatts
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// standardMethod follows 220.40 through 220.60.
func standardMethod(in ServiceLoadInput) (ServiceSizing, error) {
	var out ServiceSizing

	general := generalLoad(in)
	lightingRule, _ := nec.DemandRule(nec.RuleDwellingLighting)
	lighting, err := ComputeDemandLoad(general, lightingRule)
	if err != nil {
		return ServiceSizing{}, err
	}

	fixed := sum(in.FixedAppliancesWatts)
	fixedDemand := fixed
	if len(in.FixedAppliancesWatts) >= nec.FixedApplianceDemandCount {
		fixedDemand = fixed * nec.FixedApplianceDemandPct / 100
		out.Notes = append(out.Notes, fmt.Sprintf("220.53: %d fixed appliances at 75%%", len(in.FixedAppliancesWatts)))
	}

	var dryers float64
	if len(in.DryersWatts) > 0 {
		if dryers, err = DryerDemand(in.DryersWatts); err != nil {
			return ServiceSizing{}, err
		}
	}

	cooking, err := RangeDemand(in.RangeWatts)
	if err != nil {
		return ServiceSizing{}, err
	}

	// 220.60: only the larger of heating and cooling counts.
	hvac := math.Max(in.HeatingWatts, in.CoolingWatts)

	out.ConnectedWatts = general + fixed + sum(in.DryersWatts) + in.RangeWatts + in.HeatingWatts + in.CoolingWatts
	out.DemandWatts = lighting + fixedDemand + dryers + cooking + hvac
	return out, nil
}

// OptionalHeatingNote is attached to every optional method result.
const OptionalHeatingNote = "220.82(C): larger of heating and cooling at 100%; " +
	"heating counted at 100% rather than 65% central or 40% separately controlled, so the demand is conservative"

// optionalMethod follows 220.82: general loads at 100% of the first 10 kVA
// and 40% of the remainder, plus the larger of heating and cooling at 100%.
// Heating is not split by type, so the 65% central heat and 40% separately
// controlled unit factors of 220.82(C) are not applied and the result errs high.
func optionalMethod(in ServiceLoadInput) (ServiceSizing, error) {
	for i, w := range in.DryersWatts {
		if math.IsNaN(w) || w <= 0 {
			return ServiceSizing{}, invalid("dryer_watts", "dryer #%d rating must be positive, got %v", i+1, w)
		}
	}
	general := generalLoad(in) + sum(in.FixedAppliancesWatts) + sum(in.DryersWatts) + in.RangeWatts
	rule, _ := nec.DemandRule(nec.RuleOptionalDwelling)
	demand, err := ComputeDemandLoad(general, rule)
	if err != nil {
		return ServiceSizing{}, err
	}
	hvac := math.Max(in.HeatingWatts, in.CoolingWatts)
	return ServiceSizing{
		ConnectedWatts: general + in.HeatingWatts + in.CoolingWatts,
		DemandWatts:    demand + hvac,
		Notes:          []string{OptionalHeatingNote},
	}, nil
}

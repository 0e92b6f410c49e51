package calc

import (
	"fmt"
	"math"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

// Appliance selects an ApplianceProfile.
type Appliance string

const (
	ApplianceGeneral     Appliance = "general"
	ApplianceDryer       Appliance = "dryer"
	ApplianceRange       Appliance = "range"
	ApplianceEVCharger   Appliance = "ev-charger"
	ApplianceHotTub      Appliance = "hot-tub"
	ApplianceWaterHeater Appliance = "water-heater"
)

// ApplianceProfile parameterizes SizeCircuit for one appliance category.
type ApplianceProfile struct {
	Appliance      Appliance
	Reference      string
	Continuous     bool
	DefaultVoltage float64
	// SizeOnDemand sizes the branch circuit from the demand load instead of
	// the nameplate (Table 220.55 Note 4 for ranges).
	SizeOnDemand bool
	Demand       func(watts float64) (float64, error)
}

func fullDemand(w float64) (float64, error) { return w, nil }

func singleDryer(w float64) (float64, error) { return DryerDemand([]float64{w}) }

var profiles = map[Appliance]ApplianceProfile{
	ApplianceGeneral: {
		Appliance: ApplianceGeneral, Reference: "NEC 210.19",
		DefaultVoltage: 120, Demand: fullDemand,
	},
	ApplianceDryer: {
		Appliance: ApplianceDryer, Reference: "NEC 220.54",
		Continuous: true, DefaultVoltage: 240, Demand: singleDryer,
	},
	ApplianceRange: {
		Appliance: ApplianceRange, Reference: "NEC 220.55",
		DefaultVoltage: 240, SizeOnDemand: true, Demand: RangeDemand,
	},
	ApplianceEVCharger: {
		Appliance: ApplianceEVCharger, Reference: "NEC 625.41",
		Continuous: true, DefaultVoltage: 240, Demand: fullDemand,
	},
	ApplianceHotTub: {
		Appliance: ApplianceHotTub, Reference: "NEC 680.44",
		Continuous: true, DefaultVoltage: 240, Demand: fullDemand,
	},
	ApplianceWaterHeater: {
		Appliance: ApplianceWaterHeater, Reference: "NEC 422.13",
		Continuous: true, DefaultVoltage: 240, Demand: fullDemand,
	},
}

// Profile returns the profile for an appliance category.
func Profile(a Appliance) (ApplianceProfile, error) {
	p, ok := profiles[a]
	if !ok {
		return ApplianceProfile{}, unsupported("appliance %q", string(a))
	}
	return p, nil
}

// CircuitInput describes one branch circuit.
type CircuitInput struct {
	LoadWatts            float64        `json:"load_watts"`
	Voltage              float64        `json:"voltage,omitempty"`
	Phases               int            `json:"phases,omitempty"`
	PowerFactor          float64        `json:"power_factor,omitempty"`
	Continuous           bool           `json:"continuous,omitempty"`
	Material             nec.Material   `json:"material,omitempty"`
	Insulation           nec.Insulation `json:"insulation,omitempty"`
	TempRating           nec.TempRating `json:"temp_rating,omitempty"`
	AmbientC             *float64       `json:"ambient_c,omitempty"`
	CurrentCarrying      int            `json:"current_carrying,omitempty"`
	DistanceFeet         float64        `json:"distance_feet,omitempty"`
	VoltageDropLimit     float64        `json:"voltage_drop_limit,omitempty"`
	UpsizeForVoltageDrop bool           `json:"upsize_for_voltage_drop,omitempty"`
}

// CircuitSizing is the outcome of SizeCircuit.
type CircuitSizing struct {
	Amps        float64
	DesignAmps  float64
	DemandWatts float64
	Breaker     int
	Wire        nec.Size
	Ampacity    float64
	VoltageDrop *VoltageDrop
	Compliant   bool
	Notes       []string
}

// Conductor defaults applied when a request leaves them unset.
const (
	DefaultMaterial   = nec.Copper
	DefaultInsulation = nec.THWN
)

// ResolveConductor fills defaults and returns the temperature column to size against.
// An explicit TempRating overrides the insulation's own rating.
func ResolveConductor(m nec.Material, ins nec.Insulation, rating nec.TempRating) (nec.Material, nec.Insulation, nec.TempRating, error) {
	if m == "" {
		m = DefaultMaterial
	}
	if !m.Valid() {
		return "", "", 0, unsupported("conductor material %q", string(m))
	}
	if ins == "" {
		ins = DefaultInsulation
	}
	insRating, ok := ins.Rating()
	if !ok {
		return "", "", 0, unsupported("insulation type %q", string(ins))
	}
	if rating == 0 {
		rating = insRating
	}
	if !rating.Valid() {
		return "", "", 0, unsupported("temperature rating %d°C", int(rating))
	}
	if rating > insRating {
		return "", "", 0, unsupported("%d°C column for %s insulation rated %d°C", int(rating), ins, int(insRating))
	}
	return m, ins, rating, nil
}

// NextBreakerSize returns the smallest 240.6(A) standard rating not below amps.
func NextBreakerSize(amps float64) (int, error) {
	if math.IsNaN(amps) || amps <= 0 {
		return 0, invalid("amps", "must be positive, got %v", amps)
	}
	r, ok := nec.NextStandardRating(amps)
	if !ok {
		return 0, &NoSizeFoundError{Amps: amps, Detail: "exceeds the largest standard breaker rating"}
	}
	return r, nil
}

// SizeCircuit computes current, breaker and conductor for an appliance circuit.
func SizeCircuit(a Appliance, in CircuitInput, defaultDropLimit float64) (CircuitSizing, error) {
	profile, err := Profile(a)
	if err != nil {
		return CircuitSizing{}, err
	}
	if math.IsNaN(in.LoadWatts) || in.LoadWatts <= 0 {
		return CircuitSizing{}, invalid("load_watts", "must be positive, got %v", in.LoadWatts)
	}
	// Zero distance skips the voltage drop check; a negative one is a typo, not a skip.
	if math.IsNaN(in.DistanceFeet) || in.DistanceFeet < 0 {
		return CircuitSizing{}, invalid("distance_feet", "must be zero or positive, got %v", in.DistanceFeet)
	}
	if math.IsNaN(in.VoltageDropLimit) || in.VoltageDropLimit < 0 {
		return CircuitSizing{}, invalid("voltage_drop_limit", "must be zero or positive, got %v", in.VoltageDropLimit)
	}
	if in.Voltage == 0 {
		in.Voltage = profile.DefaultVoltage
	}
	if in.Phases == 0 {
		in.Phases = 1
	}
	if in.PowerFactor == 0 {
		in.PowerFactor = 1
	}
	m, _, rating, err := ResolveConductor(in.Material, in.Insulation, in.TempRating)
	if err != nil {
		return CircuitSizing{}, err
	}

	demand, err := profile.Demand(in.LoadWatts)
	if err != nil {
		return CircuitSizing{}, err
	}
	basis := in.LoadWatts
	if profile.SizeOnDemand {
		basis = demand
	}

	out := CircuitSizing{DemandWatts: demand, Compliant: true}
	out.Amps, err = ComputeCurrent(basis, in.Voltage, in.Phases, in.PowerFactor)
	if err != nil {
		return CircuitSizing{}, err
	}
	out.DesignAmps = out.Amps
	if profile.Continuous || in.Continuous {
		out.DesignAmps = out.Amps * nec.ContinuousLoadFactor
		out.Notes = append(out.Notes, "continuous load sized at 125%")
	}

	breaker, err := NextBreakerSize(out.DesignAmps)
	if err != nil {
		return CircuitSizing{}, err
	}
	out.Breaker = breaker

	d, err := DeratesFor(in.AmbientC, in.CurrentCarrying, rating)
	if err != nil {
		return CircuitSizing{}, err
	}
	required := out.DesignAmps
	// 240.4(B) next-size-up protection only applies through 800 A.
	if breaker > 800 {
		required = float64(breaker)
	}
	out.Wire, err = SelectWireSize(required, m, rating, d.Ambient, d.Bundle)
	if err != nil {
		return CircuitSizing{}, err
	}

	if in.DistanceFeet > 0 {
		limit := in.VoltageDropLimit
		if limit == 0 {
			limit = defaultDropLimit
		}
		var vd VoltageDrop
		if in.UpsizeForVoltageDrop {
			var upsized nec.Size
			upsized, vd, err = UpsizeForVoltageDrop(out.Wire, m, out.Amps, in.DistanceFeet, in.Voltage, in.Phases, limit)
			if err != nil {
				return CircuitSizing{}, err
			}
			if upsized != out.Wire {
				out.Notes = append(out.Notes, fmt.Sprintf("upsized from %s for voltage drop", out.Wire))
				out.Wire = upsized
			}
		} else {
			vd, err = VoltageDropForSize(out.Wire, m, out.Amps, in.DistanceFeet, in.Voltage, in.Phases, limit)
			if err != nil {
				return CircuitSizing{}, err
			}
		}
		out.VoltageDrop = &vd
		out.Compliant = vd.Compliant
		if !vd.Compliant {
			out.Notes = append(out.Notes, fmt.Sprintf("voltage drop %.2f%% exceeds %.1f%%", vd.Percent, limit))
		}
	}

	out.Ampacity, err = EffectiveAmpacity(out.Wire, m, rating, d)
	if err != nil {
		return CircuitSizing{}, err
	}
	if float64(out.Breaker) > out.Ampacity {
		out.Notes = append(out.Notes, fmt.Sprintf("%d A breaker uses next-size-up protection (240.4(B))", out.Breaker))
	}
	return out, nil
}

package calc

import (
	"math"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

// Common voltage-drop limits from the informational notes to 210.19 and 215.2.
const (
	BranchVoltageDropPercent   = 3.0
	CombinedVoltageDropPercent = 5.0
)

// VoltageDrop is the result of a drop calculation against a limit.
type VoltageDrop struct {
	Volts            float64 `json:"volts"`
	Percent          float64 `json:"percent"`
	ThresholdPercent float64 `json:"threshold_percent"`
	Compliant        bool    `json:"compliant"`
}

// ComputeVoltageDrop returns k × I × L × R / V × 100, with k = 2 for single
// phase and √3 for three phase. ohmsPerFoot is the resistance of one
// conductor per foot of run; distanceFeet is the one-way length.
func ComputeVoltageDrop(amps, distanceFeet, ohmsPerFoot, voltage float64, phases int, thresholdPercent float64) (VoltageDrop, error) {
	if math.IsNaN(amps) || amps < 0 {
		return VoltageDrop{}, invalid("amps", "must be zero or positive, got %v", amps)
	}
	if math.IsNaN(distanceFeet) || distanceFeet < 0 {
		return VoltageDrop{}, invalid("distance_feet", "must be zero or positive, got %v", distanceFeet)
	}
	if math.IsNaN(ohmsPerFoot) || ohmsPerFoot <= 0 {
		return VoltageDrop{}, invalid("resistance", "must be positive, got %v", ohmsPerFoot)
	}
	if math.IsNaN(voltage) || voltage <= 0 {
		return VoltageDrop{}, invalid("voltage", "must be positive, got %v", voltage)
	}
	if math.IsNaN(thresholdPercent) || thresholdPercent <= 0 || thresholdPercent > 100 {
		return VoltageDrop{}, invalid("threshold_percent", "must be in (0, 100], got %v", thresholdPercent)
	}
	k, err := phaseMultiplier(phases)
	if err != nil {
		return VoltageDrop{}, err
	}

	volts := k * amps * distanceFeet * ohmsPerFoot
	pct := volts / voltage * 100
	return VoltageDrop{
		Volts:            volts,
		Percent:          pct,
		ThresholdPercent: thresholdPercent,
		Compliant:        pct <= thresholdPercent,
	}, nil
}

// ConductorOhmsPerFoot returns the Chapter 9 Table 8 resistance per foot.
func ConductorOhmsPerFoot(size nec.Size, m nec.Material) (float64, error) {
	if !m.Valid() {
		return 0, unsupported("conductor material %q", string(m))
	}
	spec, ok := nec.Conductor(size, m)
	if !ok {
		return 0, unsupported("%s %s is not tabulated", size, m)
	}
	return spec.OhmsPerFoot(), nil
}

// VoltageDropForSize computes the drop for a tabulated conductor.
func VoltageDropForSize(size nec.Size, m nec.Material, amps, distanceFeet, voltage float64, phases int, thresholdPercent float64) (VoltageDrop, error) {
	ohms, err := ConductorOhmsPerFoot(size, m)
	if err != nil {
		return VoltageDrop{}, err
	}
	return ComputeVoltageDrop(amps, distanceFeet, ohms, voltage, phases, thresholdPercent)
}

// UpsizeForVoltageDrop walks up from start until the drop is within the
// threshold. It returns start unchanged when start already complies.
func UpsizeForVoltageDrop(start nec.Size, m nec.Material, amps, distanceFeet, voltage float64, phases int, thresholdPercent float64) (nec.Size, VoltageDrop, error) {
	size := start
	for {
		vd, err := VoltageDropForSize(size, m, amps, distanceFeet, voltage, phases, thresholdPercent)
		if err != nil {
			return nec.SizeUnknown, VoltageDrop{}, err
		}
		if vd.Compliant {
			return size, vd, nil
		}
		next, ok := size.Next()
		if !ok {
			return nec.SizeUnknown, vd, &NoSizeFoundError{
				Amps:   amps,
				Detail: "no tabulated conductor keeps voltage drop within the threshold",
			}
		}
		size = next
	}
}

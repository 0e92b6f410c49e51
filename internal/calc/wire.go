package calc

import (
	"math"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

const maxDerate = 1.5

// Derates bundles the two ampacity multipliers.
type Derates struct {
	Ambient float64 `json:"ambient"`
	Bundle  float64 `json:"bundle"`
}

// NoDerate leaves table ampacity unchanged.
var NoDerate = Derates{Ambient: 1, Bundle: 1}

// DeratesFor looks up both correction factors. A nil ambient means the 30°C
// table base and a conductor count of 0 means "three or fewer".
func DeratesFor(ambientC *float64, currentCarrying int, rating nec.TempRating) (Derates, error) {
	if !rating.Valid() {
		return Derates{}, unsupported("temperature rating %d°C", int(rating))
	}
	if currentCarrying < 0 {
		return Derates{}, invalid("current_carrying", "must not be negative, got %d", currentCarrying)
	}
	temp := nec.AmbientBaseC
	if ambientC != nil {
		temp = *ambientC
	}
	if math.IsNaN(temp) {
		return Derates{}, invalid("ambient_c", "must be a number")
	}
	ambient, ok := nec.AmbientCorrection(temp, rating)
	if !ok {
		return Derates{}, unsupported("ambient %.1f°C for the %d°C column", temp, int(rating))
	}
	return Derates{Ambient: ambient, Bundle: nec.BundleAdjustment(currentCarrying)}, nil
}

func validateDerate(field string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > maxDerate {
		return invalid(field, "must be in (0, %.1f], got %v", maxDerate, v)
	}
	return nil
}

func validateConductor(m nec.Material, rating nec.TempRating) error {
	if !m.Valid() {
		return unsupported("conductor material %q", string(m))
	}
	if !rating.Valid() {
		return unsupported("temperature rating %d°C", int(rating))
	}
	return nil
}

// EffectiveAmpacity is the derated table ampacity, limited by the 240.4(D)
// small-conductor cap where one applies.
func EffectiveAmpacity(size nec.Size, m nec.Material, rating nec.TempRating, d Derates) (float64, error) {
	if err := validateConductor(m, rating); err != nil {
		return 0, err
	}
	if err := validateDerate("ambient_derate", d.Ambient); err != nil {
		return 0, err
	}
	if err := validateDerate("bundle_derate", d.Bundle); err != nil {
		return 0, err
	}
	spec, ok := nec.Conductor(size, m)
	if !ok {
		return 0, unsupported("%s %s is not tabulated", size, m)
	}
	return effectiveAmpacity(spec, rating, d), nil
}

func effectiveAmpacity(spec nec.ConductorSpec, rating nec.TempRating, d Derates) float64 {
	amp := spec.Ampacity(rating) * d.Ambient * d.Bundle
	if limit, ok := nec.SmallConductorCap(spec.Size, spec.Material); ok && limit < amp {
		return limit
	}
	return amp
}

// SelectWireSize returns the smallest tabulated conductor whose effective
// ampacity is at least amps. It never interpolates between sizes.
func SelectWireSize(amps float64, m nec.Material, rating nec.TempRating, ambientDerate, bundleDerate float64) (nec.Size, error) {
	if math.IsNaN(amps) || amps <= 0 {
		return nec.SizeUnknown, invalid("amps", "must be positive, got %v", amps)
	}
	if math.IsInf(amps, 0) {
		return nec.SizeUnknown, &NoSizeFoundError{Amps: amps}
	}
	if err := validateConductor(m, rating); err != nil {
		return nec.SizeUnknown, err
	}
	if err := validateDerate("ambient_derate", ambientDerate); err != nil {
		return nec.SizeUnknown, err
	}
	if err := validateDerate("bundle_derate", bundleDerate); err != nil {
		return nec.SizeUnknown, err
	}

	d := Derates{Ambient: ambientDerate, Bundle: bundleDerate}
	for _, spec := range nec.Conductors(m) {
		if effectiveAmpacity(spec, rating, d) >= amps {
			return spec.Size, nil
		}
	}
	return nec.SizeUnknown, &NoSizeFoundError{
		Amps:   amps,
		Detail: "exceeds the largest tabulated " + string(m) + " conductor",
	}
}

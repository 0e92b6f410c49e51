package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/calc"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

// Limits are the default voltage-drop thresholds applied when a request
// leaves its own limit unset.
type Limits struct {
	BranchDropPercent float64
	TotalDropPercent  float64
}

// String identifies the limits in cache keys; results computed under
// different limits must not share entries.
func (l Limits) String() string {
	return fmt.Sprintf("branch=%g;total=%g", l.BranchDropPercent, l.TotalDropPercent)
}

var DefaultLimits = Limits{
	BranchDropPercent: calc.BranchVoltageDropPercent,
	TotalDropPercent:  calc.CombinedVoltageDropPercent,
}

type calculator func(payload []byte, limits Limits) (domain.CalculationResult, error)

var calculators = map[domain.Kind]calculator{
	domain.KindCurrent:       runCurrent,
	domain.KindWireSize:      runWireSize,
	domain.KindVoltageDrop:   runVoltageDrop,
	domain.KindConduitFill:   runConduitFill,
	domain.KindDemandLoad:    runDemandLoad,
	domain.KindBranchCircuit: circuitCalculator(calc.ApplianceGeneral),
	domain.KindDryer:         circuitCalculator(calc.ApplianceDryer),
	domain.KindRange:         circuitCalculator(calc.ApplianceRange),
	domain.KindEVCharger:     circuitCalculator(calc.ApplianceEVCharger),
	domain.KindHotTub:        circuitCalculator(calc.ApplianceHotTub),
	domain.KindWaterHeater:   circuitCalculator(calc.ApplianceWaterHeater),
	domain.KindServiceLoad:   runServiceLoad,
}

// Kinds lists every calculator in a stable order.
func Kinds() []domain.Kind {
	return []domain.Kind{
		domain.KindCurrent, domain.KindWireSize, domain.KindVoltageDrop, domain.KindConduitFill,
		domain.KindDemandLoad, domain.KindBranchCircuit, domain.KindDryer, domain.KindRange,
		domain.KindEVCharger, domain.KindHotTub, domain.KindWaterHeater, domain.KindServiceLoad,
	}
}

// decode rejects unknown fields and trailing data so typos surface as 400s
// instead of silently falling back to defaults.
func decode[T any](payload []byte) (T, error) {
	var req T
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, invalidBody(err)
	}
	if dec.More() {
		return req, invalidBody(errors.New("unexpected data after the request object"))
	}
	return req, nil
}

func invalidBody(err error) error {
	return &calc.InvalidInputError{Field: "body", Reason: err.Error()}
}

func runCurrent(payload []byte, _ Limits) (domain.CalculationResult, error) {
	req, err := decode[domain.CurrentRequest](payload)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	if req.Phases == 0 {
		req.Phases = 1
	}
	if req.PowerFactor == 0 {
		req.PowerFactor = 1
	}
	amps, err := calc.ComputeCurrent(req.LoadWatts, req.Voltage, req.Phases, req.PowerFactor)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	return domain.CalculationResult{Amps: amps, DesignAmps: amps, Compliant: true}, nil
}

func runWireSize(payload []byte, _ Limits) (domain.CalculationResult, error) {
	req, err := decode[domain.WireSizeRequest](payload)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	m, _, rating, err := calc.ResolveConductor(req.Material, req.Insulation, req.TempRating)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	d, err := calc.DeratesFor(req.AmbientC, req.CurrentCarrying, rating)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	res := domain.CalculationResult{Amps: req.Amps, DesignAmps: req.Amps, Compliant: true}
	if req.Continuous {
		res.DesignAmps = req.Amps * nec.ContinuousLoadFactor
		res.Notes = append(res.Notes, "continuous load sized at 125%")
	}
	if d != calc.NoDerate {
		res.Notes = append(res.Notes, fmt.Sprintf("ambient factor %.2f, adjustment factor %.2f", d.Ambient, d.Bundle))
	}
	if res.WireSize, err = calc.SelectWireSize(res.DesignAmps, m, rating, d.Ambient, d.Bundle); err != nil {
		return domain.CalculationResult{}, err
	}
	if res.Ampacity, err = calc.EffectiveAmpacity(res.WireSize, m, rating, d); err != nil {
		return domain.CalculationResult{}, err
	}
	return res, nil
}

func runVoltageDrop(payload []byte, limits Limits) (domain.CalculationResult, error) {
	req, err := decode[domain.VoltageDropRequest](payload)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	if !req.Size.Valid() {
		return domain.CalculationResult{}, &calc.InvalidInputError{Field: "size", Reason: "a conductor size is required"}
	}
	if req.Material == "" {
		req.Material = calc.DefaultMaterial
	}
	if req.Phases == 0 {
		req.Phases = 1
	}
	limit := req.LimitPercent
	if limit == 0 {
		limit = limits.BranchDropPercent
		if req.Combined {
			limit = limits.TotalDropPercent
		}
	}

	vd, err := calc.VoltageDropForSize(req.Size, req.Material, req.Amps, req.DistanceFeet, req.Voltage, req.Phases, limit)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	res := domain.CalculationResult{
		Amps:               req.Amps,
		WireSize:           req.Size,
		VoltageDropVolts:   vd.Volts,
		VoltageDropPercent: vd.Percent,
		Compliant:          vd.Compliant,
	}
	if !vd.Compliant {
		res.Notes = append(res.Notes, fmt.Sprintf("voltage drop %.2f%% exceeds %.1f%%", vd.Percent, limit))
	}
	return res, nil
}

func runConduitFill(payload []byte, _ Limits) (domain.CalculationResult, error) {
	req, err := decode[domain.ConduitFillRequest](payload)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	typ := nec.EMT
	if req.ConduitType != "" {
		if typ, err = nec.ParseConduitType(string(req.ConduitType)); err != nil {
			return domain.CalculationResult{}, &calc.UnsupportedConfigurationError{What: err.Error()}
		}
	}
	groups := make([]calc.ConductorGroup, len(req.Conductors))
	for i, g := range req.Conductors {
		if g.Insulation == "" {
			g.Insulation = calc.DefaultInsulation
		}
		groups[i] = g
	}

	var (
		conduit nec.ConduitSpec
		fill    calc.ConduitFill
	)
	if req.TradeSize == "" {
		if conduit, fill, err = calc.SizeConduit(groups, typ, req.Nipple); err != nil {
			return domain.CalculationResult{}, err
		}
	} else {
		var ok bool
		if conduit, ok = nec.Conduit(typ, req.TradeSize); !ok {
			return domain.CalculationResult{}, &calc.UnsupportedConfigurationError{What: fmt.Sprintf("%s trade size %q", typ, req.TradeSize)}
		}
		areas, err := calc.ConductorAreas(groups)
		if err != nil {
			return domain.CalculationResult{}, err
		}
		if fill, err = calc.ComputeConduitFill(areas, conduit.Area, req.Nipple); err != nil {
			return domain.CalculationResult{}, err
		}
	}

	res := domain.CalculationResult{
		FillPercent:      fill.Percent,
		MaxFillPercent:   fill.MaxPercent,
		ConduitTradeSize: conduit.TradeSize,
		Compliant:        fill.Compliant,
	}
	if !fill.Compliant {
		res.Notes = append(res.Notes, fmt.Sprintf("fill %.1f%% exceeds %.0f%% for %d conductors", fill.Percent, fill.MaxPercent, fill.Conductors))
	}
	return res, nil
}

func runDemandLoad(payload []byte, _ Limits) (domain.CalculationResult, error) {
	req, err := decode[domain.DemandLoadRequest](payload)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	if req.Rule == "" {
		req.Rule = nec.RuleDwellingLighting
	}
	rule, ok := nec.DemandRule(req.Rule)
	if !ok {
		return domain.CalculationResult{}, &calc.UnsupportedConfigurationError{What: fmt.Sprintf("demand rule %q", req.Rule)}
	}
	demand, err := calc.ComputeDemandLoad(req.ConnectedWatts, rule)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	return domain.CalculationResult{
		ConnectedWatts: req.ConnectedWatts,
		DemandWatts:    demand,
		Compliant:      true,
		Notes:          []string{rule.Reference},
	}, nil
}

func circuitCalculator(a calc.Appliance) calculator {
	return func(payload []byte, limits Limits) (domain.CalculationResult, error) {
		req, err := decode[domain.CircuitRequest](payload)
		if err != nil {
			return domain.CalculationResult{}, err
		}
		out, err := calc.SizeCircuit(a, req, limits.BranchDropPercent)
		if err != nil {
			return domain.CalculationResult{}, err
		}
		res := domain.CalculationResult{
			Amps:        out.Amps,
			DesignAmps:  out.DesignAmps,
			WireSize:    out.Wire,
			Ampacity:    out.Ampacity,
			BreakerSize: out.Breaker,
			DemandWatts: out.DemandWatts,
			Compliant:   out.Compliant,
			Notes:       out.Notes,
		}
		if out.VoltageDrop != nil {
			res.VoltageDropVolts = out.VoltageDrop.Volts
			res.VoltageDropPercent = out.VoltageDrop.Percent
		}
		return res, nil
	}
}

func runServiceLoad(payload []byte, _ Limits) (domain.CalculationResult, error) {
	req, err := decode[domain.ServiceLoadRequest](payload)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	out, err := calc.ServiceLoad(req)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	return domain.CalculationResult{
		Amps:              out.Amps,
		ConnectedWatts:    out.ConnectedWatts,
		DemandWatts:       out.DemandWatts,
		ServiceRating:     out.ServiceRating,
		CopperConductor:   out.CopperConductor,
		AluminumConductor: out.AluminumConductor,
		Compliant:         true,
		Notes:             append([]string{out.Method + " method"}, out.Notes...),
	}, nil
}

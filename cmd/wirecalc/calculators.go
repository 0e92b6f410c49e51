package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/calc"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

type runner struct {
	svc  *service.CalculationService
	json *bool
}

// run encodes req, evaluates it as kind and prints the result.
func (r *runner) run(cmd *cobra.Command, kind domain.Kind, req any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	res, err := r.svc.Evaluate(kind, payload)
	if err != nil {
		return err
	}
	if *r.json {
		return writeJSON(cmd, res)
	}
	return renderResult(cmd.OutOrStdout(), kind, res)
}

// ambientFlag leaves the ambient unset unless --ambient was given, so the
// request carries only what the user chose.
func ambientFlag(cmd *cobra.Command, value float64) *float64 {
	if !cmd.Flags().Changed("ambient") {
		return nil
	}
	return &value
}

func currentCmd(r *runner) *cobra.Command {
	var req domain.CurrentRequest
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Load current from watts, volts, phases and power factor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, domain.KindCurrent, req)
		},
	}
	cmd.Flags().Float64Var(&req.LoadWatts, "watts", 0, "load in watts")
	cmd.Flags().Float64Var(&req.Voltage, "volts", 240, "system voltage")
	cmd.Flags().IntVar(&req.Phases, "phases", 1, "1 or 3")
	cmd.Flags().Float64Var(&req.PowerFactor, "pf", 1, "power factor")
	return cmd
}

func wireCmd(r *runner) *cobra.Command {
	var (
		req        domain.WireSizeRequest
		material   string
		insulation string
		rating     int
		ambient    float64
	)
	cmd := &cobra.Command{
		Use:   "wire",
		Short: "Smallest conductor for a current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Material = nec.Material(material)
			req.Insulation = nec.Insulation(insulation)
			req.TempRating = nec.TempRating(rating)
			req.AmbientC = ambientFlag(cmd, ambient)
			return r.run(cmd, domain.KindWireSize, req)
		},
	}
	cmd.Flags().Float64Var(&req.Amps, "amps", 0, "load current")
	cmd.Flags().StringVar(&material, "material", "", "copper or aluminum (default copper)")
	cmd.Flags().StringVar(&insulation, "insulation", "", "insulation type (default THWN)")
	cmd.Flags().IntVar(&rating, "temp", 0, "termination temperature column: 60, 75 or 90")
	cmd.Flags().Float64Var(&ambient, "ambient", 30, "ambient temperature in °C")
	cmd.Flags().IntVar(&req.CurrentCarrying, "ccc", 0, "current-carrying conductors in the raceway")
	cmd.Flags().BoolVar(&req.Continuous, "continuous", false, "size at 125% for a continuous load")
	return cmd
}

func voltageDropCmd(r *runner) *cobra.Command {
	var (
		req      domain.VoltageDropRequest
		size     string
		material string
	)
	cmd := &cobra.Command{
		Use:     "vdrop",
		Aliases: []string{"voltage-drop"},
		Short:   "Voltage drop over a run",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := nec.ParseSize(size)
			if err != nil {
				return err
			}
			req.Size = s
			req.Material = nec.Material(material)
			return r.run(cmd, domain.KindVoltageDrop, req)
		},
	}
	cmd.Flags().Float64Var(&req.Amps, "amps", 0, "load current")
	cmd.Flags().Float64Var(&req.DistanceFeet, "feet", 0, "one-way length in feet")
	cmd.Flags().StringVar(&size, "size", "", `conductor size, e.g. "12" or "1/0"`)
	cmd.Flags().StringVar(&material, "material", "", "copper or aluminum (default copper)")
	cmd.Flags().Float64Var(&req.Voltage, "volts", 120, "system voltage")
	cmd.Flags().IntVar(&req.Phases, "phases", 1, "1 or 3")
	cmd.Flags().Float64Var(&req.LimitPercent, "limit", 0, "limit in percent (default from configuration)")
	cmd.Flags().BoolVar(&req.Combined, "combined", false, "check against the feeder plus branch limit")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

// parseConductorGroup reads "SIZE[:INSULATION][:COUNT]", e.g. "12:THWN:6".
func parseConductorGroup(raw string) (calc.ConductorGroup, error) {
	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return calc.ConductorGroup{}, fmt.Errorf("conductor %q: want SIZE[:INSULATION][:COUNT]", raw)
	}
	size, err := nec.ParseSize(parts[0])
	if err != nil {
		return calc.ConductorGroup{}, err
	}
	g := calc.ConductorGroup{Size: size, Count: 1}
	if len(parts) > 1 && parts[1] != "" {
		g.Insulation = nec.Insulation(strings.ToUpper(parts[1]))
	}
	if len(parts) > 2 {
		if g.Count, err = strconv.Atoi(parts[2]); err != nil {
			return calc.ConductorGroup{}, fmt.Errorf("conductor %q: count: %w", raw, err)
		}
	}
	return g, nil
}

func fillCmd(r *runner) *cobra.Command {
	var (
		req        domain.ConduitFillRequest
		conduit    string
		conductors []string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Conduit fill, or the smallest conduit when --trade-size is omitted",
		Example: `  wirecalc fill --conductor 12:THWN:6 --trade-size 3/4
  wirecalc fill --type rmc --conductor 4/0:THHN:3 --conductor 4:THHN:1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.ConduitType = nec.ConduitType(conduit)
			for _, raw := range conductors {
				g, err := parseConductorGroup(raw)
				if err != nil {
					return err
				}
				req.Conductors = append(req.Conductors, g)
			}
			return r.run(cmd, domain.KindConduitFill, req)
		},
	}
	cmd.Flags().StringVar(&conduit, "type", "EMT", "raceway type")
	cmd.Flags().StringVar(&req.TradeSize, "trade-size", "", `trade size, e.g. "3/4"`)
	cmd.Flags().BoolVar(&req.Nipple, "nipple", false, "raceway is a nipple of 24 in. or less")
	cmd.Flags().StringArrayVar(&conductors, "conductor", nil, "conductor group SIZE[:INSULATION][:COUNT], repeatable")
	_ = cmd.MarkFlagRequired("conductor")
	return cmd
}

func demandCmd(r *runner) *cobra.Command {
	var req domain.DemandLoadRequest
	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Apply a tiered demand factor schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, domain.KindDemandLoad, req)
		},
	}
	cmd.Flags().Float64Var(&req.ConnectedWatts, "watts", 0, "connected load in watts")
	cmd.Flags().StringVar(&req.Rule, "rule", nec.RuleDwellingLighting, "demand rule name (see: wirecalc tables demand-rules)")
	return cmd
}

var circuitKinds = map[string]domain.Kind{
	"general":      domain.KindBranchCircuit,
	"dryer":        domain.KindDryer,
	"range":        domain.KindRange,
	"ev-charger":   domain.KindEVCharger,
	"hot-tub":      domain.KindHotTub,
	"water-heater": domain.KindWaterHeater,
}

func circuitCmd(r *runner) *cobra.Command {
	var (
		req        domain.CircuitRequest
		material   string
		insulation string
		rating     int
		ambient    float64
	)
	cmd := &cobra.Command{
		Use:       "circuit <general|dryer|range|ev-charger|hot-tub|water-heater>",
		Short:     "Breaker and conductor for an appliance circuit",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"general", "dryer", "range", "ev-charger", "hot-tub", "water-heater"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := circuitKinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown appliance %q", args[0])
			}
			req.Material = nec.Material(material)
			req.Insulation = nec.Insulation(insulation)
			req.TempRating = nec.TempRating(rating)
			req.AmbientC = ambientFlag(cmd, ambient)
			return r.run(cmd, kind, req)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&req.LoadWatts, "watts", 0, "nameplate load in watts")
	f.Float64Var(&req.Voltage, "volts", 0, "circuit voltage (default per appliance)")
	f.IntVar(&req.Phases, "phases", 0, "1 or 3")
	f.Float64Var(&req.PowerFactor, "pf", 0, "power factor")
	f.BoolVar(&req.Continuous, "continuous", false, "treat the load as continuous")
	f.StringVar(&material, "material", "", "copper or aluminum (default copper)")
	f.StringVar(&insulation, "insulation", "", "insulation type (default THWN)")
	f.IntVar(&rating, "temp", 0, "termination temperature column: 60, 75 or 90")
	f.Float64Var(&ambient, "ambient", 30, "ambient temperature in °C")
	f.IntVar(&req.CurrentCarrying, "ccc", 0, "current-carrying conductors in the raceway")
	f.Float64Var(&req.DistanceFeet, "feet", 0, "one-way length for a voltage drop check")
	f.Float64Var(&req.VoltageDropLimit, "limit", 0, "voltage drop limit in percent")
	f.BoolVar(&req.UpsizeForVoltageDrop, "upsize", false, "upsize the conductor to meet the voltage drop limit")
	return cmd
}

func serviceCmd(r *runner) *cobra.Command {
	var req domain.ServiceLoadRequest
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Dwelling service rating and service-entrance conductors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, domain.KindServiceLoad, req)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Method, "method", calc.MethodStandard, "standard or optional")
	f.Float64Var(&req.SquareFeet, "sqft", 0, "habitable floor area")
	f.IntVar(&req.SmallApplianceCircuits, "small-appliance", 2, "20 A small-appliance circuits")
	f.IntVar(&req.LaundryCircuits, "laundry", 1, "laundry circuits")
	f.Float64SliceVar(&req.FixedAppliancesWatts, "fixed", nil, "fastened-in-place appliance ratings in watts")
	f.Float64SliceVar(&req.DryersWatts, "dryer", nil, "dryer ratings in watts")
	f.Float64Var(&req.RangeWatts, "range", 0, "range rating in watts")
	f.Float64Var(&req.HeatingWatts, "heating", 0, "heating load in watts")
	f.Float64Var(&req.CoolingWatts, "cooling", 0, "cooling load in watts")
	f.Float64Var(&req.Voltage, "volts", 240, "service voltage")
	return cmd
}

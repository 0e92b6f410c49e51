package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

func tablesCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the reference tables the calculators use",
	}

	var material string
	conductors := &cobra.Command{
		Use:   "conductors",
		Short: "Conductor ampacity and resistance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			materials := []nec.Material{nec.Copper, nec.Aluminum}
			if material != "" {
				m, err := nec.ParseMaterial(material)
				if err != nil {
					return err
				}
				materials = []nec.Material{m}
			}
			var specs []nec.ConductorSpec
			for _, m := range materials {
				specs = append(specs, nec.Conductors(m)...)
			}
			if *r.json {
				return writeJSON(cmd, specs)
			}
			return renderConductors(cmd.OutOrStdout(), specs)
		},
	}
	conductors.Flags().StringVar(&material, "material", "", "copper or aluminum (default both)")

	var conduitType string
	conduits := &cobra.Command{
		Use:   "conduits",
		Short: "Raceway trade sizes and internal areas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types := nec.ConduitTypes()
			if conduitType != "" {
				t, err := nec.ParseConduitType(conduitType)
				if err != nil {
					return err
				}
				types = []nec.ConduitType{t}
			}
			if *r.json {
				out := map[nec.ConduitType][]nec.ConduitSpec{}
				for _, t := range types {
					out[t] = nec.Conduits(t)
				}
				return writeJSON(cmd, out)
			}
			for _, t := range types {
				if err := renderConduits(cmd.OutOrStdout(), t, nec.Conduits(t)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	conduits.Flags().StringVar(&conduitType, "type", "", "raceway type (default all)")

	breakers := &cobra.Command{
		Use:   "breakers",
		Short: "Standard overcurrent device and service ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if *r.json {
				return writeJSON(cmd, map[string][]int{
					"breakers": nec.StandardBreakerRatings,
					"services": nec.StandardServiceRatings,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render("Breakers (A)"), joinInts(nec.StandardBreakerRatings))
			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render("Services (A)"), joinInts(nec.StandardServiceRatings))
			return nil
		},
	}

	demandRules := &cobra.Command{
		Use:   "demand-rules",
		Short: "Tiered demand factor schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if *r.json {
				return writeJSON(cmd, nec.DemandRules())
			}
			return renderDemandRules(cmd.OutOrStdout(), nec.DemandRules())
		},
	}

	cmd.AddCommand(conductors, conduits, breakers, demandRules)
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

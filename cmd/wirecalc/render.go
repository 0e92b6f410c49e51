package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type row struct{ label, value string }

func resultRows(res domain.CalculationResult) []row {
	var rows []row
	add := func(ok bool, label, format string, args ...any) {
		if ok {
			rows = append(rows, row{label, fmt.Sprintf(format, args...)})
		}
	}
	add(res.Amps != 0, "Current", "%.2f A", res.Amps)
	add(res.DesignAmps != 0 && res.DesignAmps != res.Amps, "Design current", "%.2f A", res.DesignAmps)
	add(res.BreakerSize != 0, "Breaker", "%d A", res.BreakerSize)
	add(res.WireSize.Valid(), "Conductor", "%s", res.WireSize)
	add(res.Ampacity != 0, "Ampacity", "%.1f A", res.Ampacity)
	add(res.VoltageDropVolts != 0, "Voltage drop", "%.2f V (%.2f%%)", res.VoltageDropVolts, res.VoltageDropPercent)
	add(res.ConduitTradeSize != "", "Conduit", "%s in.", res.ConduitTradeSize)
	add(res.FillPercent != 0, "Fill", "%.1f%% of %.0f%% allowed", res.FillPercent, res.MaxFillPercent)
	add(res.ConnectedWatts != 0, "Connected load", "%.0f W", res.ConnectedWatts)
	add(res.DemandWatts != 0, "Demand load", "%.0f W", res.DemandWatts)
	add(res.ServiceRating != 0, "Service", "%d A", res.ServiceRating)
	add(res.CopperConductor.Valid(), "Copper SE conductor", "%s", res.CopperConductor)
	add(res.AluminumConductor.Valid(), "Aluminum SE conductor", "%s", res.AluminumConductor)
	return rows
}

func renderResult(w io.Writer, kind domain.Kind, res domain.CalculationResult) error {
	fmt.Fprintln(w, titleStyle.Render(strings.ToUpper(string(kind))))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range resultRows(res) {
		fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value)
	}
	status := okStyle.Render("compliant")
	if !res.Compliant {
		status = failStyle.Render("NOT COMPLIANT")
	}
	fmt.Fprintf(tw, "%s\t%s\n", "Status", status)
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, n := range res.Notes {
		fmt.Fprintln(w, noteStyle.Render("  • "+n))
	}
	return nil
}

func renderConductors(w io.Writer, specs []nec.ConductorSpec) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
		headerStyle.Render("Size"),
		headerStyle.Render("Material"),
		headerStyle.Render("60°C"),
		headerStyle.Render("75°C"),
		headerStyle.Render("90°C"),
		headerStyle.Render("Ω/kft"),
	)
	for _, s := range specs {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\t%.0f\t%.4g\t\n",
			s.Size, s.Material, s.Ampacity60, s.Ampacity75, s.Ampacity90, s.Resistance)
	}
	return tw.Flush()
}

func renderConduits(w io.Writer, t nec.ConduitType, specs []nec.ConduitSpec) error {
	fmt.Fprintln(w, titleStyle.Render(string(t)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", headerStyle.Render("Trade size"), headerStyle.Render("Area (sq in.)"))
	for _, s := range specs {
		fmt.Fprintf(tw, "%s\t%.3f\n", s.TradeSize, s.Area)
	}
	return tw.Flush()
}

func renderDemandRules(w io.Writer, rules []nec.DemandFactorRule) error {
	for _, r := range rules {
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render(r.Name), noteStyle.Render("("+r.Reference+")"))
		var from float64
		for _, tier := range r.Tiers {
			if tier.Through == 0 {
				fmt.Fprintf(w, "  over %.0f W\t%.0f%%\n", from, tier.Percent)
				continue
			}
			fmt.Fprintf(w, "  %.0f to %.0f W\t%.0f%%\n", from, tier.Through, tier.Percent)
			from = tier.Through
		}
	}
	return nil
}

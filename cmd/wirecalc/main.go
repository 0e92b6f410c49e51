// Command wirecalc runs the sizing calculators locally without any
// infrastructure. Voltage drop limits come from the environment or .env.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/config"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

func newRootCmd() *cobra.Command {
	var asJSON bool
	r := &runner{json: &asJSON}
	root := &cobra.Command{
		Use:   "wirecalc",
		Short: "NEC conductor, breaker and conduit sizing",
		Long: `wirecalc sizes branch circuits, feeders and dwelling services from the
NEC ampacity, conduit fill and demand factor tables.

Results are printed as a table, or as JSON with --json.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The same .env and VOLTAGE_DROP_* settings the API uses.
			if err := config.Load(); err != nil {
				return err
			}
			r.svc = service.New(service.Options{
				Limits: service.Limits{
					BranchDropPercent: config.BranchDropPercent(),
					TotalDropPercent:  config.TotalDropPercent(),
				},
				Logger: zerolog.Nop(),
			}).Calculations
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")

	root.AddCommand(
		currentCmd(r),
		wireCmd(r),
		voltageDropCmd(r),
		fillCmd(r),
		demandCmd(r),
		circuitCmd(r),
		serviceCmd(r),
		tablesCmd(r),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

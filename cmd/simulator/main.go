// Command simulator publishes randomized calculation requests to the MQTT
// worker and logs the replies.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/config"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

var sampleKinds = []domain.Kind{
	domain.KindBranchCircuit, domain.KindDryer, domain.KindRange, domain.KindEVCharger,
	domain.KindWaterHeater, domain.KindWireSize, domain.KindVoltageDrop,
}

// sample returns a plausible request for kind with randomized loads.
func sample(kind domain.Kind) any {
	switch kind {
	case domain.KindDryer:
		return map[string]any{"load_watts": 4000 + rand.Float64()*2000}
	case domain.KindRange:
		return map[string]any{"load_watts": 8000 + rand.Float64()*8000}
	case domain.KindEVCharger:
		return map[string]any{"load_watts": []float64{3840, 7680, 9600, 11520}[rand.IntN(4)], "distance_feet": 20 + rand.Float64()*100}
	case domain.KindWaterHeater:
		return map[string]any{"load_watts": 4500}
	case domain.KindWireSize:
		return map[string]any{"amps": 10 + rand.Float64()*190, "ambient_c": 30 + rand.Float64()*15}
	case domain.KindVoltageDrop:
		return map[string]any{"amps": 20, "distance_feet": 50 + rand.Float64()*150, "size": "12", "voltage": 120}
	default:
		return map[string]any{"load_watts": 600 + rand.Float64()*1200, "distance_feet": 25 + rand.Float64()*125}
	}
}

type options struct {
	count    int
	interval time.Duration
	settle   time.Duration
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "simulator",
		Short:         "Publish random calculation requests to the MQTT worker",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.count < 1 {
				return fmt.Errorf("-n must be at least 1, got %d", o.count)
			}
			if o.interval < 0 {
				return fmt.Errorf("--interval must not be negative")
			}
			if err := config.Load(); err != nil {
				return err
			}
			return simulate(cmd.Context(), o)
		},
	}
	cmd.Flags().IntVarP(&o.count, "count", "n", 100, "number of requests to publish")
	cmd.Flags().DurationVar(&o.interval, "interval", 500*time.Millisecond, "delay between requests")
	cmd.Flags().DurationVar(&o.settle, "settle", 2*time.Second, "how long to wait for the last replies")
	return cmd
}

func onReply(_ mqtt.Client, msg mqtt.Message) {
	var reply service.Reply
	if err := json.Unmarshal(msg.Payload(), &reply); err != nil {
		log.Error().Err(err).Msg("bad reply")
		return
	}
	if reply.Error != "" {
		log.Warn().Str("kind", string(reply.Kind)).Str("error", reply.Error).Msg("calculation rejected")
		return
	}
	res := reply.Calculation.Result
	log.Info().
		Str("kind", string(reply.Kind)).
		Stringer("wire", res.WireSize).
		Int("breaker", res.BreakerSize).
		Bool("compliant", res.Compliant).
		Msg("result")
}

func simulate(ctx context.Context, o options) error {
	opts := mqtt.NewClientOptions().
		AddBroker(config.MQTTBroker()).
		SetClientID(fmt.Sprintf("wirecalc-simulator-%d", rand.IntN(1_000_000)))
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	if token := client.Subscribe(service.ResultTopicPrefix+"+", 1, onReply); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe: %w", token.Error())
	}

	published := 0
	ticker := time.NewTicker(max(o.interval, time.Millisecond))
	defer ticker.Stop()
	for published < o.count {
		kind := sampleKinds[rand.IntN(len(sampleKinds))]
		payload, err := json.Marshal(sample(kind))
		if err != nil {
			return err
		}
		token := client.Publish(service.RequestTopicPrefix+string(kind), 1, false, payload)
		token.Wait()
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", kind, err)
		}
		published++
		select {
		case <-ctx.Done():
			log.Info().Int("published", published).Msg("simulation interrupted")
			return nil
		case <-ticker.C:
		}
	}
	// Give the last replies a moment to arrive.
	select {
	case <-ctx.Done():
	case <-time.After(o.settle):
	}
	log.Info().Int("published", published).Msg("simulation done")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("simulator")
		os.Exit(1)
	}
}

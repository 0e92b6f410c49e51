package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/app"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/config"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

const (
	qos            = 1
	publishTimeout = 5 * time.Second
	requestTimeout = 10 * time.Second
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := logging.Setup(config.LogLevel(), config.LogFormat()); err != nil {
		log.Fatal().Err(err).Msg("logging setup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcs, cleanup, err := app.Build(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer cleanup()

	handler := func(client mqtt.Client, msg mqtt.Message) {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		topic, body, err := svcs.Calculations.HandleMessage(reqCtx, msg.Topic(), msg.Payload())
		if err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("dropped message")
			return
		}
		token := client.Publish(topic, qos, false, body)
		if !token.WaitTimeout(publishTimeout) {
			log.Error().Str("topic", topic).Msg("publish timed out")
			return
		}
		if err := token.Error(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("publish failed")
		}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(config.MQTTBroker()).
		SetClientID(config.MQTTClientID()).
		SetAutoReconnect(true).
		SetOrderMatters(false).
		SetOnConnectHandler(func(c mqtt.Client) {
			// Resubscribe on every (re)connect; the session is not persistent.
			if token := c.Subscribe(service.RequestTopicFilter, qos, handler); token.Wait() && token.Error() != nil {
				log.Error().Err(token.Error()).Msg("subscribe failed")
				return
			}
			log.Info().Str("filter", service.RequestTopicFilter).Msg("subscribed")
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn().Err(err).Msg("mqtt connection lost")
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	log.Info().Msg("worker running; Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("worker stopping")
}

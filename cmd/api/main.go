package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/app"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/config"
	httpHandlers "github.com/ANIKETSHETTY47/wire-sizing-engine/internal/http"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
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

	server := fiber.New(fiber.Config{
		AppName:               "wirecalc",
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
	})
	httpHandlers.Register(server, svcs)

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	if err := server.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server exit")
	}
}

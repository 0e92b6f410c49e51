package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/app"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/calc"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/config"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

// LambdaEvent asks for one calculation. Request is the same body the HTTP
// API accepts for Kind.
type LambdaEvent struct {
	Kind    domain.Kind     `json:"kind"`
	Request json.RawMessage `json:"request"`
}

type LambdaResponse struct {
	StatusCode  int                 `json:"statusCode"`
	Calculation *domain.Calculation `json:"calculation,omitempty"`
	Error       string              `json:"error,omitempty"`
}

type handler struct {
	calculations *service.CalculationService
}

// Handle reports calculation failures in the response so callers can tell bad
// input from infrastructure faults, which are returned as errors.
func (h handler) Handle(ctx context.Context, event LambdaEvent) (LambdaResponse, error) {
	c, err := h.calculations.Calculate(ctx, event.Kind, event.Request)
	switch {
	case err == nil:
		return LambdaResponse{StatusCode: 200, Calculation: &c}, nil
	case errors.Is(err, calc.ErrInvalidInput):
		return LambdaResponse{StatusCode: 400, Error: err.Error()}, nil
	case errors.Is(err, service.ErrUnknownKind):
		return LambdaResponse{StatusCode: 404, Error: err.Error()}, nil
	case errors.Is(err, calc.ErrNoSizeFound), errors.Is(err, calc.ErrUnsupportedConfiguration):
		return LambdaResponse{StatusCode: 422, Error: err.Error()}, nil
	}
	log.Error().Err(err).Str("kind", string(event.Kind)).Msg("calculation failed")
	return LambdaResponse{}, err
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	// CloudWatch wants one JSON object per line.
	if err := logging.Setup(config.LogLevel(), "json"); err != nil {
		log.Fatal().Err(err).Msg("logging setup failed")
	}

	svcs, cleanup, err := app.Build(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer cleanup()

	lambda.Start(handler{calculations: svcs.Calculations}.Handle)
}

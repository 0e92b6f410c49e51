package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/cache"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
)

var (
	ErrUnknownKind     = errors.New("unknown calculator")
	ErrHistoryDisabled = errors.New("calculation history is not configured")
	ErrExportDisabled  = errors.New("report export is not configured")
)

// MQTT topic layout used by the worker and the simulator.
const (
	RequestTopicPrefix = "wirecalc/requests/"
	ResultTopicPrefix  = "wirecalc/results/"
	RequestTopicFilter = RequestTopicPrefix + "+"
)

// HistoryStore persists evaluated calculations.
type HistoryStore interface {
	SaveCalculation(ctx context.Context, c *domain.Calculation) error
	GetCalculation(ctx context.Context, id string) (domain.Calculation, error)
	ListCalculations(ctx context.Context, f domain.ListFilter) ([]domain.Calculation, error)
}

type ResultCache interface {
	Get(ctx context.Context, key string) (domain.CalculationResult, bool, error)
	Set(ctx context.Context, key string, res domain.CalculationResult) error
}

type Alerter interface {
	SendNonComplianceAlert(ctx context.Context, c domain.Calculation) error
}

type ReportExporter interface {
	ExportCalculation(ctx context.Context, c domain.Calculation) (string, error)
}

// Options wires optional infrastructure. Every dependency may be nil; the
// engine works without any of them.
type Options struct {
	History HistoryStore
	Cache   ResultCache
	Alerts  Alerter
	Reports ReportExporter
	Limits  Limits
	Logger  zerolog.Logger
	Now     func() time.Time
}

type Services struct {
	Calculations *CalculationService
}

func New(opts Options) *Services {
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Services{
		Calculations: &CalculationService{opts: opts, log: opts.Logger.With().Str("component", "calculations").Logger()},
	}
}

type CalculationService struct {
	opts Options
	log  zerolog.Logger
}

func (s *CalculationService) Limits() Limits       { return s.opts.Limits }
func (s *CalculationService) HistoryEnabled() bool { return s.opts.History != nil }

// Evaluate runs one calculator without touching cache or history.
func (s *CalculationService) Evaluate(kind domain.Kind, payload []byte) (domain.CalculationResult, error) {
	run, ok := calculators[kind]
	if !ok {
		return domain.CalculationResult{}, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return run(payload, s.opts.Limits)
}

// Calculate evaluates a request, consulting the result cache first, and
// records the calculation in history when a store is configured.
// Non-compliant results trigger an alert.
func (s *CalculationService) Calculate(ctx context.Context, kind domain.Kind, payload []byte) (domain.Calculation, error) {
	if _, ok := calculators[kind]; !ok {
		return domain.Calculation{}, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	request, err := compact(payload)
	if err != nil {
		return domain.Calculation{}, err
	}

	calc := domain.Calculation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Request:   request,
		CreatedAt: s.opts.Now().UTC(),
	}

	key := s.cacheKey(kind, request)
	if key != "" {
		if res, hit, err := s.opts.Cache.Get(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("kind", string(kind)).Msg("cache read failed")
		} else if hit {
			calc.Result, calc.Cached = res, true
		}
	}

	if !calc.Cached {
		if calc.Result, err = s.Evaluate(kind, request); err != nil {
			return domain.Calculation{}, err
		}
		if key != "" {
			if err := s.opts.Cache.Set(ctx, key, calc.Result); err != nil {
				s.log.Warn().Err(err).Str("kind", string(kind)).Msg("cache write failed")
			}
		}
	}

	if s.opts.History != nil {
		if err := s.opts.History.SaveCalculation(ctx, &calc); err != nil {
			return domain.Calculation{}, fmt.Errorf("save calculation: %w", err)
		}
	}

	if !calc.Result.Compliant && s.opts.Alerts != nil {
		if err := s.opts.Alerts.SendNonComplianceAlert(ctx, calc); err != nil {
			s.log.Error().Err(err).Str("id", calc.ID).Msg("non-compliance alert failed")
		}
	}

	s.log.Debug().
		Str("id", calc.ID).
		Str("kind", string(kind)).
		Bool("cached", calc.Cached).
		Bool("compliant", calc.Result.Compliant).
		Msg("calculation evaluated")
	return calc, nil
}

func (s *CalculationService) cacheKey(kind domain.Kind, request []byte) string {
	if s.opts.Cache == nil {
		return ""
	}
	key, err := cache.Key(kind, s.opts.Limits.String(), request)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache key")
		return ""
	}
	return key
}

func compact(payload []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, bytes.TrimSpace(payload)); err != nil {
		return nil, invalidBody(err)
	}
	if buf.Len() == 0 || buf.Bytes()[0] != '{' {
		return nil, invalidBody(errors.New("request must be a JSON object"))
	}
	return buf.Bytes(), nil
}

func (s *CalculationService) Get(ctx context.Context, id string) (domain.Calculation, error) {
	if s.opts.History == nil {
		return domain.Calculation{}, ErrHistoryDisabled
	}
	return s.opts.History.GetCalculation(ctx, id)
}

func (s *CalculationService) List(ctx context.Context, f domain.ListFilter) ([]domain.Calculation, error) {
	if s.opts.History == nil {
		return nil, ErrHistoryDisabled
	}
	if f.Kind != "" {
		if _, ok := calculators[f.Kind]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownKind, f.Kind)
		}
	}
	return s.opts.History.ListCalculations(ctx, f)
}

// Export uploads a stored calculation as a report and returns its URL.
func (s *CalculationService) Export(ctx context.Context, id string) (string, error) {
	if s.opts.Reports == nil {
		return "", ErrExportDisabled
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.opts.Reports.ExportCalculation(ctx, c)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}
	return url, nil
}

// Reply is the MQTT response body.
type Reply struct {
	Calculation *domain.Calculation `json:"calculation,omitempty"`
	Kind        domain.Kind         `json:"kind"`
	Error       string              `json:"error,omitempty"`
}

// HandleMessage serves one request published on wirecalc/requests/<kind> and
// returns the topic and body of the reply. The error is non-nil only when
// the topic itself is not a request topic; calculation failures are
// reported in the reply body.
func (s *CalculationService) HandleMessage(ctx context.Context, topic string, payload []byte) (string, []byte, error) {
	kind, ok := strings.CutPrefix(topic, RequestTopicPrefix)
	if !ok || kind == "" || strings.Contains(kind, "/") {
		return "", nil, fmt.Errorf("not a request topic: %q", topic)
	}

	reply := Reply{Kind: domain.Kind(kind)}
	c, err := s.Calculate(ctx, domain.Kind(kind), payload)
	if err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("calculation failed")
		reply.Error = err.Error()
	} else {
		reply.Calculation = &c
	}

	body, err := json.Marshal(reply)
	if err != nil {
		return "", nil, err
	}
	return ResultTopicPrefix + kind, body, nil
}

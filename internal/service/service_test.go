package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/calc"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

type memoryHistory struct {
	mu    sync.Mutex
	items []domain.Calculation
	err   error
}

func (m *memoryHistory) SaveCalculation(_ context.Context, c *domain.Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, *c)
	return nil
}

func (m *memoryHistory) GetCalculation(_ context.Context, id string) (domain.Calculation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Calculation{}, domain.ErrNotFound
}

func (m *memoryHistory) ListCalculations(_ context.Context, f domain.ListFilter) ([]domain.Calculation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Calculation
	for i := len(m.items) - 1; i >= 0; i-- {
		if f.Kind == "" || m.items[i].Kind == f.Kind {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

type memoryCache struct {
	entries map[string]domain.CalculationResult
	gets    int
	getErr  error
}

func (m *memoryCache) Get(_ context.Context, key string) (domain.CalculationResult, bool, error) {
	m.gets++
	if m.getErr != nil {
		return domain.CalculationResult{}, false, m.getErr
	}
	res, ok := m.entries[key]
	return res, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, res domain.CalculationResult) error {
	m.entries[key] = res
	return nil
}

type recordingAlerter struct{ sent []domain.Calculation }

func (r *recordingAlerter) SendNonComplianceAlert(_ context.Context, c domain.Calculation) error {
	r.sent = append(r.sent, c)
	return nil
}

type fakeExporter struct{ exported []string }

func (f *fakeExporter) ExportCalculation(_ context.Context, c domain.Calculation) (string, error) {
	f.exported = append(f.exported, c.ID)
	return "https://reports.example/" + c.ID, nil
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newService(opts Options) *CalculationService {
	opts.Logger = zerolog.Nop()
	opts.Now = func() time.Time { return fixedNow }
	return New(opts).Calculations
}

func TestEvaluateScenarios(t *testing.T) {
	svc := newService(Options{})

	tests := []struct {
		name  string
		kind  domain.Kind
		body  string
		check func(t *testing.T, res domain.CalculationResult)
	}{
		{
			name: "dryer circuit",
			kind: domain.KindDryer,
			body: `{"load_watts":4500}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.InDelta(t, 18.75, res.Amps, 1e-9)
				assert.InDelta(t, 23.4375, res.DesignAmps, 1e-9)
				assert.Equal(t, nec.AWG10, res.WireSize)
				assert.Equal(t, 25, res.BreakerSize)
				assert.True(t, res.Compliant)
			},
		},
		{
			name: "unity power factor current",
			kind: domain.KindCurrent,
			body: `{"load_watts":2400,"voltage":240}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.InDelta(t, 10, res.Amps, 1e-9)
			},
		},
		{
			name: "wire size 65 A",
			kind: domain.KindWireSize,
			body: `{"amps":65}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.Equal(t, nec.AWG6, res.WireSize)
				assert.Equal(t, 65.0, res.Ampacity)
			},
		},
		{
			name: "continuous derated wire size",
			kind: domain.KindWireSize,
			body: `{"amps":32,"continuous":true,"insulation":"THHN","ambient_c":40,"current_carrying":6}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.InDelta(t, 40, res.DesignAmps, 1e-9)
				// 90C column: 8 AWG 55 x 0.91 x 0.8 = 40.04 A
				assert.Equal(t, nec.AWG8, res.WireSize)
				assert.Len(t, res.Notes, 2)
			},
		},
		{
			name: "freezing ambient",
			kind: domain.KindWireSize,
			body: `{"amps":60,"ambient_c":0}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				// 75C column: 8 AWG 50 x 1.20 = 60 A
				assert.Equal(t, nec.AWG8, res.WireSize)
				assert.InDelta(t, 60, res.Ampacity, 1e-9)
			},
		},
		{
			name: "ambient omitted",
			kind: domain.KindWireSize,
			body: `{"amps":60}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.Equal(t, nec.AWG6, res.WireSize)
				assert.Empty(t, res.Notes)
			},
		},
		{
			name: "conduit fill six twelves",
			kind: domain.KindConduitFill,
			body: `{"conduit_type":"EMT","trade_size":"3/4","conductors":[{"size":"12","insulation":"THWN","count":6}]}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.InDelta(t, 15.0, res.FillPercent, 0.05)
				assert.Equal(t, 40.0, res.MaxFillPercent)
				assert.Equal(t, "3/4", res.ConduitTradeSize)
				assert.True(t, res.Compliant)
			},
		},
		{
			name: "conduit sizing defaults insulation",
			kind: domain.KindConduitFill,
			body: `{"conduit_type":"emt","conductors":[{"size":"12","count":6}]}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.Equal(t, "1/2", res.ConduitTradeSize)
			},
		},
		{
			name: "voltage drop against combined limit",
			kind: domain.KindVoltageDrop,
			body: `{"amps":20,"distance_feet":100,"size":"10","voltage":120,"combined":true}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.InDelta(t, 4.96, res.VoltageDropVolts, 1e-9)
				assert.True(t, res.Compliant, "4.13%% is within 5%%")
			},
		},
		{
			name: "voltage drop against branch limit",
			kind: domain.KindVoltageDrop,
			body: `{"amps":20,"distance_feet":100,"size":"10","voltage":120}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.False(t, res.Compliant)
				assert.Len(t, res.Notes, 1)
			},
		},
		{
			name: "lighting demand",
			kind: domain.KindDemandLoad,
			body: `{"connected_watts":10000}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.InDelta(t, 5450, res.DemandWatts, 1e-9)
			},
		},
		{
			name: "service load",
			kind: domain.KindServiceLoad,
			body: `{"square_feet":1000}`,
			check: func(t *testing.T, res domain.CalculationResult) {
				assert.Equal(t, 100, res.ServiceRating)
				assert.Equal(t, nec.AWG4, res.CopperConductor)
				assert.Equal(t, "standard method", res.Notes[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Evaluate(tt.kind, []byte(tt.body))
			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	svc := newService(Options{})

	tests := []struct {
		name string
		kind domain.Kind
		body string
		want error
	}{
		{name: "unknown kind", kind: "toaster", body: `{}`, want: ErrUnknownKind},
		{name: "unknown field", kind: domain.KindDryer, body: `{"load_wats":4500}`, want: calc.ErrInvalidInput},
		{name: "trailing data", kind: domain.KindDryer, body: `{"load_watts":4500} {}`, want: calc.ErrInvalidInput},
		{name: "bad size label", kind: domain.KindVoltageDrop, body: `{"size":"7","amps":1,"voltage":120}`, want: calc.ErrInvalidInput},
		{name: "missing size", kind: domain.KindVoltageDrop, body: `{"amps":1,"voltage":120}`, want: calc.ErrInvalidInput},
		{name: "too large", kind: domain.KindWireSize, body: `{"amps":5000}`, want: calc.ErrNoSizeFound},
		{name: "unknown conduit", kind: domain.KindConduitFill, body: `{"conduit_type":"flex","conductors":[{"size":"12","count":1}]}`, want: calc.ErrUnsupportedConfiguration},
		{name: "unknown trade size", kind: domain.KindConduitFill, body: `{"trade_size":"7","conductors":[{"size":"12","count":1}]}`, want: calc.ErrUnsupportedConfiguration},
		{name: "unknown rule", kind: domain.KindDemandLoad, body: `{"connected_watts":1,"rule":"casino"}`, want: calc.ErrUnsupportedConfiguration},
		{name: "negative run length", kind: domain.KindBranchCircuit, body: `{"load_watts":1800,"distance_feet":-150}`, want: calc.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Evaluate(tt.kind, []byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEveryKindHasCalculator(t *testing.T) {
	for _, k := range Kinds() {
		_, ok := calculators[k]
		assert.True(t, ok, k)
	}
	assert.Len(t, calculators, len(Kinds()))
}

func TestCalculateRecordsHistory(t *testing.T) {
	history := &memoryHistory{}
	svc := newService(Options{History: history})
	ctx := context.Background()

	c, err := svc.Calculate(ctx, domain.KindDryer, []byte("{ \"load_watts\": 4500 }\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.JSONEq(t, `{"load_watts":4500}`, string(c.Request))
	assert.Equal(t, `{"load_watts":4500}`, string(c.Request), "request is stored compacted")

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Result, got.Result)

	list, err := svc.List(ctx, domain.ListFilter{Kind: domain.KindDryer})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, domain.ListFilter{Kind: "toaster"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCalculateDoesNotRecordFailures(t *testing.T) {
	history := &memoryHistory{}
	svc := newService(Options{History: history})

	_, err := svc.Calculate(context.Background(), domain.KindDryer, []byte(`{"load_watts":-1}`))
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
	assert.Empty(t, history.items)

	_, err = svc.Calculate(context.Background(), domain.KindDryer, []byte(`[1,2]`))
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
}

func TestCalculateHistoryFailure(t *testing.T) {
	svc := newService(Options{History: &memoryHistory{err: errors.New("disk full")}})
	_, err := svc.Calculate(context.Background(), domain.KindDryer, []byte(`{"load_watts":4500}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestCalculateUsesCache(t *testing.T) {
	cache := &memoryCache{entries: map[string]domain.CalculationResult{}}
	svc := newService(Options{Cache: cache})
	ctx := context.Background()

	first, err := svc.Calculate(ctx, domain.KindRange, []byte(`{"load_watts":12000}`))
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Calculate(ctx, domain.KindRange, []byte(`{ "load_watts": 12000.0 }`))
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result, second.Result)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCacheIsScopedByLimits(t *testing.T) {
	shared := &memoryCache{entries: map[string]domain.CalculationResult{}}
	strict := newService(Options{Cache: shared})
	loose := newService(Options{Cache: shared, Limits: Limits{BranchDropPercent: 10, TotalDropPercent: 10}})
	ctx := context.Background()
	body := []byte(`{"amps":20,"distance_feet":100,"size":"12","voltage":120}`)

	first, err := strict.Calculate(ctx, domain.KindVoltageDrop, body)
	require.NoError(t, err)
	assert.False(t, first.Result.Compliant, "6.6%% exceeds 3%%")

	second, err := loose.Calculate(ctx, domain.KindVoltageDrop, body)
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.True(t, second.Result.Compliant, "6.6%% is within 10%%")

	again, err := strict.Calculate(ctx, domain.KindVoltageDrop, body)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.False(t, again.Result.Compliant)
}

func TestCalculateSurvivesCacheOutage(t *testing.T) {
	cache := &memoryCache{entries: map[string]domain.CalculationResult{}, getErr: errors.New("connection refused")}
	svc := newService(Options{Cache: cache})

	c, err := svc.Calculate(context.Background(), domain.KindDryer, []byte(`{"load_watts":4500}`))
	require.NoError(t, err)
	assert.False(t, c.Cached)
	assert.Equal(t, 1, cache.gets)
}

func TestCalculateAlertsOnNonCompliance(t *testing.T) {
	alerts := &recordingAlerter{}
	svc := newService(Options{Alerts: alerts})
	ctx := context.Background()

	_, err := svc.Calculate(ctx, domain.KindBranchCircuit, []byte(`{"load_watts":1800,"distance_feet":150}`))
	require.NoError(t, err)
	require.Len(t, alerts.sent, 1)
	assert.False(t, alerts.sent[0].Result.Compliant)

	_, err = svc.Calculate(ctx, domain.KindDryer, []byte(`{"load_watts":4500}`))
	require.NoError(t, err)
	assert.Len(t, alerts.sent, 1)
}

func TestHistoryDisabled(t *testing.T) {
	svc := newService(Options{Reports: &fakeExporter{}})
	ctx := context.Background()

	_, err := svc.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.List(ctx, domain.ListFilter{})
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.Export(ctx, "x")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestExport(t *testing.T) {
	history := &memoryHistory{}
	reports := &fakeExporter{}
	svc := newService(Options{History: history, Reports: reports})
	ctx := context.Background()

	c, err := svc.Calculate(ctx, domain.KindEVCharger, []byte(`{"load_watts":7680}`))
	require.NoError(t, err)

	url, err := svc.Export(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://reports.example/"+c.ID, url)

	_, err = svc.Export(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = newService(Options{History: history}).Export(ctx, c.ID)
	assert.ErrorIs(t, err, ErrExportDisabled)
}

func TestHandleMessage(t *testing.T) {
	svc := newService(Options{})
	ctx := context.Background()

	topic, body, err := svc.HandleMessage(ctx, "wirecalc/requests/dryer", []byte(`{"load_watts":4500}`))
	require.NoError(t, err)
	assert.Equal(t, "wirecalc/results/dryer", topic)

	var reply Reply
	require.NoError(t, json.Unmarshal(body, &reply))
	assert.Empty(t, reply.Error)
	require.NotNil(t, reply.Calculation)
	assert.Equal(t, nec.AWG10, reply.Calculation.Result.WireSize)

	topic, body, err = svc.HandleMessage(ctx, "wirecalc/requests/dryer", []byte(`{"load_watts":0}`))
	require.NoError(t, err)
	assert.Equal(t, "wirecalc/results/dryer", topic)
	require.NoError(t, json.Unmarshal(body, &reply))
	assert.Contains(t, reply.Error, "load_watts")

	_, _, err = svc.HandleMessage(ctx, "energy/readings", nil)
	assert.Error(t, err)
	_, _, err = svc.HandleMessage(ctx, "wirecalc/requests/a/b", nil)
	assert.Error(t, err)
}

func TestDefaultLimits(t *testing.T) {
	svc := newService(Options{})
	assert.Equal(t, DefaultLimits, svc.Limits())
	assert.False(t, svc.HistoryEnabled())

	custom := newService(Options{Limits: Limits{BranchDropPercent: 2, TotalDropPercent: 4}})
	res, err := custom.Evaluate(domain.KindVoltageDrop, []byte(`{"amps":20,"distance_feet":100,"size":"8","voltage":120}`))
	require.NoError(t, err)
	assert.False(t, res.Compliant, "2.59%% exceeds a 2%% branch limit")
}

package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

func lightingRule(t *testing.T) nec.DemandFactorRule {
	t.Helper()
	rule, ok := nec.DemandRule(nec.RuleDwellingLighting)
	require.True(t, ok)
	return rule
}

func TestComputeDemandLoad(t *testing.T) {
	rule := lightingRule(t)
	tests := []struct {
		connected float64
		want      float64
	}{
		{connected: 0, want: 0},
		{connected: 2500, want: 2500},
		{connected: 3000, want: 3000},
		{connected: 10000, want: 5450},
		{connected: 150000, want: 51450},
	}
	for _, tt := range tests {
		got, err := ComputeDemandLoad(tt.connected, rule)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "connected %.0f", tt.connected)
	}
}

func TestComputeDemandLoadProperties(t *testing.T) {
	for _, rule := range nec.DemandRules() {
		prev := 0.0
		for w := 0.0; w <= 200000; w += 1250 {
			first, err := ComputeDemandLoad(w, rule)
			require.NoError(t, err)
			second, err := ComputeDemandLoad(w, rule)
			require.NoError(t, err)

			assert.Equal(t, first, second, "%s is not deterministic", rule.Name)
			assert.LessOrEqual(t, first, w, "%s exceeds connected load", rule.Name)
			assert.GreaterOrEqual(t, first, prev, "%s is not monotonic at %.0f", rule.Name, w)
			prev = first
		}
	}
}

func TestValidateDemandRule(t *testing.T) {
	tests := []struct {
		name  string
		tiers []nec.DemandTier
	}{
		{name: "empty"},
		{name: "decreasing bounds", tiers: []nec.DemandTier{{Through: 5000, Percent: 100}, {Through: 4000, Percent: 50}, {Percent: 25}}},
		{name: "percent above 100", tiers: []nec.DemandTier{{Through: 5000, Percent: 120}, {Percent: 25}}},
		{name: "closed final tier", tiers: []nec.DemandTier{{Through: 5000, Percent: 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDemandRule(nec.DemandFactorRule{Name: tt.name, Tiers: tt.tiers})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := ComputeDemandLoad(-1, lightingRule(t))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDryerDemand(t *testing.T) {
	got, err := DryerDemand([]float64{4500})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, got, "5 kW minimum")

	got, err = DryerDemand([]float64{6000, 6000, 6000, 6000, 6000})
	require.NoError(t, err)
	assert.InDelta(t, 25500, got, 1e-9)

	_, err = DryerDemand([]float64{0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRangeDemand(t *testing.T) {
	tests := []struct {
		rating float64
		want   float64
	}{
		{rating: 0, want: 0},
		{rating: 8000, want: 6400},
		{rating: 12000, want: 8000},
		{rating: 12500, want: 8000},
		{rating: 12600, want: 8400},
		{rating: 16000, want: 9600},
		{rating: 27000, want: 14000},
	}
	for _, tt := range tests {
		got, err := RangeDemand(tt.rating)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "rating %.0f", tt.rating)
	}

	_, err := RangeDemand(28000)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
	_, err = RangeDemand(-1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

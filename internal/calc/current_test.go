package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCurrent(t *testing.T) {
	tests := []struct {
		name   string
		watts  float64
		volts  float64
		phases int
		pf     float64
		want   float64
	}{
		{name: "single phase unity", watts: 2400, volts: 240, phases: 1, pf: 1, want: 10},
		{name: "single phase lagging", watts: 1200, volts: 120, phases: 1, pf: 0.8, want: 12.5},
		{name: "three phase", watts: 10000, volts: 480, phases: 3, pf: 0.9, want: 10000 / (480 * math.Sqrt(3) * 0.9)},
		{name: "zero load", watts: 0, volts: 120, phases: 1, pf: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeCurrent(tt.watts, tt.volts, tt.phases, tt.pf)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeCurrentRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		watts  float64
		volts  float64
		phases int
		pf     float64
	}{
		{name: "negative load", watts: -1, volts: 120, phases: 1, pf: 1},
		{name: "zero voltage", watts: 100, volts: 0, phases: 1, pf: 1},
		{name: "zero power factor", watts: 100, volts: 120, phases: 1, pf: 0},
		{name: "power factor above one", watts: 100, volts: 120, phases: 1, pf: 1.1},
		{name: "two phase", watts: 100, volts: 120, phases: 2, pf: 1},
		{name: "NaN load", watts: math.NaN(), volts: 120, phases: 1, pf: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeCurrent(tt.watts, tt.volts, tt.phases, tt.pf)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inv *InvalidInputError
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestThreePhaseDrawsLessThanSinglePhase(t *testing.T) {
	one, err := ComputeCurrent(9000, 240, 1, 1)
	require.NoError(t, err)
	three, err := ComputeCurrent(9000, 240, 3, 1)
	require.NoError(t, err)
	assert.InDelta(t, one/math.Sqrt(3), three, 1e-9)
}

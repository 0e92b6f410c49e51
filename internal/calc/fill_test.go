package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

func TestComputeConduitFillSixTwelves(t *testing.T) {
	areas, err := ConductorAreas([]ConductorGroup{{Size: nec.AWG12, Insulation: nec.THWN, Count: 6}})
	require.NoError(t, err)
	require.Len(t, areas, 6)

	emt, ok := nec.Conduit(nec.EMT, "3/4")
	require.True(t, ok)

	fill, err := ComputeConduitFill(areas, emt.Area, false)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, fill.Percent, 0.05)
	assert.Equal(t, 40.0, fill.MaxPercent)
	assert.True(t, fill.Compliant)
	assert.Equal(t, 6, fill.Conductors)
}

func TestComputeConduitFillBrackets(t *testing.T) {
	tests := []struct {
		name    string
		areas   []float64
		nipple  bool
		wantMax float64
		wantOK  bool
	}{
		{name: "one conductor", areas: []float64{0.5}, wantMax: 53, wantOK: true},
		{name: "two conductors over 31", areas: []float64{0.2, 0.2}, wantMax: 31, wantOK: false},
		{name: "three conductors", areas: []float64{0.1, 0.1, 0.1}, wantMax: 40, wantOK: true},
		{name: "nipple", areas: []float64{0.2, 0.2}, nipple: true, wantMax: 60, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fill, err := ComputeConduitFill(tt.areas, 1.0, tt.nipple)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMax, fill.MaxPercent)
			assert.Equal(t, tt.wantOK, fill.Compliant)
		})
	}
}

func TestComputeConduitFillErrors(t *testing.T) {
	_, err := ComputeConduitFill(nil, 1, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeConduitFill([]float64{0.1}, 0, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeConduitFill([]float64{0.1, -0.1}, 1, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ConductorAreas([]ConductorGroup{{Size: nec.AWG12, Insulation: nec.THWN, Count: 0}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ConductorAreas([]ConductorGroup{{Size: nec.AWG12, Insulation: "PAPER", Count: 1}})
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
}

func TestSizeConduit(t *testing.T) {
	c, fill, err := SizeConduit([]ConductorGroup{{Size: nec.AWG12, Insulation: nec.THWN, Count: 6}}, nec.EMT, false)
	require.NoError(t, err)
	assert.Equal(t, "1/2", c.TradeSize)
	assert.InDelta(t, 26.25, fill.Percent, 0.01)

	c, fill, err = SizeConduit([]ConductorGroup{
		{Size: nec.AWG4_0, Insulation: nec.THHN, Count: 3},
		{Size: nec.AWG4, Insulation: nec.THHN, Count: 1},
	}, nec.EMT, false)
	require.NoError(t, err)
	assert.Equal(t, "2", c.TradeSize)
	assert.True(t, fill.Compliant)
	assert.InDelta(t, 31.39, fill.Percent, 0.01)

	_, _, err = SizeConduit([]ConductorGroup{{Size: nec.KCMIL1000, Insulation: nec.THHN, Count: 40}}, nec.EMT, false)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)

	_, _, err = SizeConduit([]ConductorGroup{{Size: nec.AWG12, Insulation: nec.THHN, Count: 1}}, "FLEX", false)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
}

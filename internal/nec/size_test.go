package nec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    Size
		wantErr bool
	}{
		{in: "12", want: AWG12},
		{in: "#12", want: AWG12},
		{in: "12 AWG", want: AWG12},
		{in: "1/0", want: AWG1_0},
		{in: "0", want: AWG1_0},
		{in: "0000", want: AWG4_0},
		{in: "250 kcmil", want: KCMIL250},
		{in: "250MCM", want: KCMIL250},
		{in: " 1000 ", want: KCMIL1000},
		{in: "16", wantErr: true},
		{in: "", wantErr: true},
		{in: "5/0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSizeOrdering(t *testing.T) {
	sizes := Sizes()
	require.Len(t, sizes, 24)
	assert.Equal(t, AWG14, sizes[0])
	assert.Equal(t, KCMIL1000, sizes[len(sizes)-1])

	next, ok := AWG4_0.Next()
	require.True(t, ok)
	assert.Equal(t, KCMIL250, next)

	_, ok = KCMIL1000.Next()
	assert.False(t, ok)
	_, ok = AWG14.Prev()
	assert.False(t, ok)
}

func TestSizeString(t *testing.T) {
	assert.Equal(t, "10 AWG", AWG10.String())
	assert.Equal(t, "2/0 AWG", AWG2_0.String())
	assert.Equal(t, "350 kcmil", KCMIL350.String())
	assert.Equal(t, "unknown", SizeUnknown.String())
}

func TestSizeJSON(t *testing.T) {
	var v struct {
		Size Size `json:"size"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"size":"3/0"}`), &v))
	assert.Equal(t, AWG3_0, v.Size)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":"3/0"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"size":"7"}`), &v))
}

func FuzzParseSize(f *testing.F) {
	for _, seed := range []string{"12", "1/0", "250 kcmil", "#4", "00", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		s, err := ParseSize(raw)
		if err != nil {
			return
		}
		if !s.Valid() {
			t.Fatalf("ParseSize(%q) returned invalid size %d", raw, s)
		}
		again, err := ParseSize(s.Label())
		if err != nil || again != s {
			t.Fatalf("label %q does not round trip", s.Label())
		}
	})
}

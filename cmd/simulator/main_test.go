package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

func TestFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	n, err := cmd.Flags().GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	interval, err := cmd.Flags().GetDuration("interval")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, interval)
}

func TestShorthandCount(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-n", "7", "--interval", "1s"}))
	n, _ := cmd.Flags().GetInt("count")
	assert.Equal(t, 7, n)
}

func TestRejectsBadFlagsBeforeConnecting(t *testing.T) {
	for _, args := range [][]string{
		{"-n", "0"},
		{"--interval", "-1s"},
	} {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		assert.Error(t, cmd.Execute(), args)
	}
}

func TestSamplesAreValidRequests(t *testing.T) {
	svc := service.New(service.Options{Logger: zerolog.Nop()}).Calculations
	for _, kind := range sampleKinds {
		for i := 0; i < 20; i++ {
			payload, err := json.Marshal(sample(kind))
			require.NoError(t, err)
			_, err = svc.Evaluate(kind, payload)
			require.NoError(t, err, "%s: %s", kind, payload)
		}
	}
}

package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
)

func TestKeyIsCanonical(t *testing.T) {
	a, err := Key(domain.KindDryer, "", []byte(`{"load_watts": 4500, "voltage": 240}`))
	require.NoError(t, err)
	b, err := Key(domain.KindDryer, "", []byte(`{"voltage":240.0,"load_watts":4.5e3}`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "wirecalc:result:dryer:"))
}

func TestKeySeparatesKinds(t *testing.T) {
	payload := []byte(`{"load_watts":4500}`)
	dryer, err := Key(domain.KindDryer, "", payload)
	require.NoError(t, err)
	rng, err := Key(domain.KindRange, "", payload)
	require.NoError(t, err)
	assert.NotEqual(t, dryer, rng)

	other, err := Key(domain.KindDryer, "", []byte(`{"load_watts":4600}`))
	require.NoError(t, err)
	assert.NotEqual(t, dryer, other)
}

func TestKeySeparatesSettings(t *testing.T) {
	payload := []byte(`{"amps":20,"distance_feet":100,"size":"12","voltage":120}`)
	strict, err := Key(domain.KindVoltageDrop, "branch=3;total=5", payload)
	require.NoError(t, err)
	loose, err := Key(domain.KindVoltageDrop, "branch=10;total=10", payload)
	require.NoError(t, err)
	assert.NotEqual(t, strict, loose)
}

func TestKeyRejectsMalformedJSON(t *testing.T) {
	_, err := Key(domain.KindDryer, "", []byte(`{"load_watts":`))
	assert.Error(t, err)
}

func TestNewRedisClientRequiresAddr(t *testing.T) {
	_, err := NewRedisClient("  ", "")
	assert.Error(t, err)
}

func TestStoreSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewStore(client, time.Minute)

	_, hit, err := store.Get(context.Background(), "wirecalc:result:dryer:x")
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, store.Set(context.Background(), "k", domain.CalculationResult{Compliant: true}))
}

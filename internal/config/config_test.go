package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, Load())
	assert.Equal(t, ":8080", APIAddr())
	assert.Equal(t, "pgx", DBDriver())
	assert.Empty(t, DBDSN())
	assert.Empty(t, RedisAddr())
	assert.Equal(t, 24*time.Hour, CacheTTL())
	assert.Equal(t, 3.0, BranchDropPercent())
	assert.Equal(t, 5.0, TotalDropPercent())
	assert.False(t, UseCloudServices())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("API_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("VOLTAGE_DROP_BRANCH_PCT", "2.5")

	require.NoError(t, Load())
	assert.Equal(t, ":9090", APIAddr())
	assert.Equal(t, "sqlite", DBDriver())
	assert.Equal(t, 15*time.Minute, CacheTTL())
	assert.Equal(t, 2.5, BranchDropPercent())
}

func TestLoadConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "wirecalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("MQTT_CLIENT_ID: bench-worker\nLOG_FORMAT: json\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	require.NoError(t, Load())
	assert.Equal(t, "bench-worker", MQTTClientID())
	assert.Equal(t, "json", LogFormat())
}

func TestLoadRejectsBadLimits(t *testing.T) {
	tests := map[string]map[string]string{
		"zero branch limit":        {"VOLTAGE_DROP_BRANCH_PCT": "0"},
		"total below branch limit": {"VOLTAGE_DROP_TOTAL_PCT": "2"},
		"unknown driver":           {"DB_DRIVER": "mysql"},
		"missing config file":      {"CONFIG_FILE": "/nonexistent/wirecalc.yaml"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			for k, v := range env {
				t.Setenv(k, v)
			}
			assert.Error(t, Load())
		})
	}
}

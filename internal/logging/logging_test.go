package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriterJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "warn", "json"))

	log.Info().Msg("hidden")
	logger := Component("api")
	logger.Warn().Str("kind", "dryer").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "dryer", entry["kind"])
}

func TestSetupWriterRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, SetupWriter(&bytes.Buffer{}, "chatty", "json"))
}

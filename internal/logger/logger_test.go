package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Create(&Config{MinLevel: "debug", JSON: true}, &buf)
	log.Debug().Str("mode", "Dilithium-Mode2").Msg("hello")

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "debug", event["level"])
	assert.Equal(t, "Dilithium-Mode2", event["mode"])
	assert.Equal(t, "hello", event["message"])
	assert.Contains(t, event, "time")
}

func TestCreateLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := Create(&Config{MinLevel: "error", JSON: true}, &buf)
	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Error().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestCreateBadLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Create(&Config{MinLevel: "loud", JSON: true}, &buf)
	assert.Contains(t, buf.String(), `Failed to parse log level \"loud\"`)

	buf.Reset()
	log.Info().Msg("info is the fallback")
	assert.Contains(t, buf.String(), "info is the fallback")
}

func TestCreateConsole(t *testing.T) {
	var buf bytes.Buffer
	log := Create(&Config{MinLevel: "info", NoColor: true}, &buf)
	log.Info().Int("bytes", 42).Msg("console")
	assert.Contains(t, buf.String(), "console")
	assert.Contains(t, buf.String(), "bytes=42")
}

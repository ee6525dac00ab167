package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat("Text"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat(""))
}

func TestComponentWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: zerolog.InfoLevel, Format: FormatJSON, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: zerolog.InfoLevel, Format: FormatText}) })

	hub := Component("hub")
	hub.Debug().Msg("hidden")
	hub.Info().Str("user", "u1").Msg("joined")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "exactly one JSON line")
	assert.Equal(t, "hub", line["component"])
	assert.Equal(t, "joined", line["message"])
	assert.Equal(t, "clubsphere", line["service"])
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: FormatJSON, Writer: &buf})
	require.NoError(t, err)

	logger.With("analysis_id", "abc").Debug("fetch started", "url", "https://example.com")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "fetch started", entry["msg"])
	assert.Equal(t, "abc", entry["analysis_id"])
	assert.Equal(t, "https://example.com", entry["url"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewLevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Level: "WARN", Writer: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Options{Format: "xml"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { Discard().Error("nothing") })
}

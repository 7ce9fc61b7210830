package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New(Config{Encoding: "xml"})
	assert.ErrorContains(t, err, "invalid log encoding")
}

func TestInit_WritesJSONWithContextFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eda.log")
	require.NoError(t, Init(Config{Level: "debug", Encoding: "json", OutputPaths: []string{path}}))
	t.Cleanup(func() { require.NoError(t, Init(Config{Level: "warn"})) })

	ctx := ContextWithCommand(ContextWithRunID(context.Background(), "run-1"), "report")
	WithContext(ctx).Info("table loaded", zap.Int("rows", 395))
	Debug("debug line")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"message":"table loaded"`)
	assert.Contains(t, lines[0], `"run_id":"run-1"`)
	assert.Contains(t, lines[0], `"command":"report"`)
	assert.Contains(t, lines[0], `"rows":395`)
	assert.Contains(t, lines[1], `"level":"debug"`)
}

func TestInit_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eda.log")
	require.NoError(t, Init(Config{Level: "warn", Encoding: "json", OutputPaths: []string{path}}))
	t.Cleanup(func() { require.NoError(t, Init(Config{Level: "warn"})) })

	Debug("hidden")
	Warn("shown")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestGet_DefaultsWhenUninitialized(t *testing.T) {
	assert.NotNil(t, Get())
}

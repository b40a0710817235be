package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "artistpairs.log")

	logger, cleanup, err := Setup(path, slog.LevelInfo, DefaultRotation())
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible", "groups", 3)
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "expected exactly one JSON line, got %q", data)
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, 3.0, entry["groups"])
}

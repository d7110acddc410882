package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "verbose"
		assert.ErrorContains(t, cfg.Validate(), "invalid level")
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Format = "xml"
		assert.ErrorContains(t, cfg.Validate(), "invalid format")
	})

	t.Run("durations only checked with a path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RotationTime = "soon"
		assert.NoError(t, cfg.Validate())

		cfg.Path = t.TempDir()
		assert.ErrorContains(t, cfg.Validate(), "rotation_time")
	})
}

func TestInitWithWriter(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("json output with module", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.Format = "json"

		require.NoError(t, InitWithWriter(cfg, &buf))
		Logger("test").Info("hello", "index", "docs")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "test", line["module"])
		assert.Equal(t, "docs", line["index"])
	})

	t.Run("level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, InitWithWriter(DefaultConfig(), &buf))

		Logger("test").Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("rotating file", func(t *testing.T) {
		var buf bytes.Buffer
		dir := t.TempDir()
		cfg := DefaultConfig()
		cfg.Path = dir
		cfg.DefaultPattern = "test.log"

		require.NoError(t, InitWithWriter(cfg, &buf))
		Logger("test").Info("to file")

		data, err := os.ReadFile(filepath.Join(dir, "test.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
		assert.Contains(t, buf.String(), "to file")
	})
}

func TestMapLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, mapLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, mapLevel("warn"))
	assert.Equal(t, slog.LevelError, mapLevel("error"))
	assert.Equal(t, slog.LevelInfo, mapLevel("unknown"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.55, cfg.Thresholds.Action)
	assert.Equal(t, 0.75, cfg.Thresholds.OutOfScope)
	assert.Equal(t, 0.5, cfg.Thresholds.OverallMin)
	assert.Equal(t, 0.45, cfg.Thresholds.SectionMin)
	assert.Equal(t, 0.3, cfg.Thresholds.Attach)
	assert.Equal(t, 12, cfg.Thresholds.MinEvidenceChars)
	assert.Equal(t, 8, cfg.MaxSuggestions)
	assert.False(t, cfg.EnableDebug)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Bounds(t *testing.T) {
	cfg := Default()
	cfg.Thresholds.OverallMin = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxSuggestions = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestLoadWithFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
thresholds:
  action: 0.6
  overall_min: 0.7
max_suggestions: 3
enable_debug: true
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.Thresholds.Action)
	assert.Equal(t, 0.7, cfg.Thresholds.OverallMin)
	// Untouched values fall back to defaults.
	assert.Equal(t, 0.45, cfg.Thresholds.SectionMin)
	assert.Equal(t, 3, cfg.MaxSuggestions)
	assert.True(t, cfg.EnableDebug)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadWithFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Thresholds, cfg.Thresholds)
}

func TestLoadWithFile_EnvOverride(t *testing.T) {
	t.Setenv("SUGGESTD_THRESHOLDS_OVERALL_MIN", "0.9")
	t.Setenv("SUGGESTD_MAX_SUGGESTIONS", "2")

	cfg, err := LoadWithFile("")
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Thresholds.OverallMin)
	assert.Equal(t, 2, cfg.MaxSuggestions)
}

func TestLoadWithFile_InvalidValuesRejected(t *testing.T) {
	t.Setenv("SUGGESTD_THRESHOLDS_ACTION", "3.0")

	_, err := LoadWithFile("")
	assert.Error(t, err)
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "thresholds.overall_min", envTransform("SUGGESTD_THRESHOLDS_OVERALL_MIN"))
	assert.Equal(t, "logging.level", envTransform("SUGGESTD_LOGGING_LEVEL"))
	assert.Equal(t, "max_suggestions", envTransform("SUGGESTD_MAX_SUGGESTIONS"))
	assert.Equal(t, "enable_debug", envTransform("SUGGESTD_ENABLE_DEBUG"))
}

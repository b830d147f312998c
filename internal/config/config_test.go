// Filename: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strobelight/pagemotor/internal/motor"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, motor.DefaultConfig(), cfg.Engine.Motor())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagemotor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: debug
engine:
  layout_shift_threshold: 5
  stability_timeout: 8s
browser:
  headless: false
  probe_rate: 10
`), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5.0, cfg.Engine.LayoutShiftThreshold)
	assert.Equal(t, 8*time.Second, cfg.Engine.StabilityTimeout)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 10.0, cfg.Browser.ProbeRate)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PAGEMOTOR_LOGGER_LEVEL", "warn")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestEngineConfig_MotorMapping(t *testing.T) {
	e := EngineConfig{
		LayoutShiftThreshold: 2,
		SpiralSearchAttempts: 12,
		MaxRetries:           5,
		BaseDelay:            100 * time.Millisecond,
		PollInterval:         50 * time.Millisecond,
		StabilityTimeout:     3 * time.Second,
	}
	m := e.Motor()
	assert.Equal(t, 2.0, m.LayoutShiftThreshold)
	assert.Equal(t, 12, m.SpiralSearchAttempts)
	assert.Equal(t, 5, m.MaxRetries)
	assert.Equal(t, 3*time.Second, m.StabilityTimeout)
}

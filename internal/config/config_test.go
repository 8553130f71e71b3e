package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// A named file that does not exist is an error; the default lookup
	// tolerates absence instead.
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "glasswing", cfg.Logger.ServiceName)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 30*time.Second, cfg.Browser.NavTimeout)
	assert.Equal(t, 10*time.Second, cfg.Browser.StabilizeBudget)
	assert.Equal(t, 4, cfg.Migrate.Workers)
}

// loadFromDir runs Load from an empty working directory so a developer's
// local glasswing.yaml cannot leak into the test.
func loadFromDir(t *testing.T, cfgFile string) (*Config, error) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return Load(cfgFile)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "glasswing.yaml")
	content := `
logger:
  level: debug
  format: json
browser:
  headless: false
  nav_timeout: 5s
migrate:
  workers: 2
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o644))

	cfg, err := Load(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 5*time.Second, cfg.Browser.NavTimeout)
	assert.Equal(t, 2, cfg.Migrate.Workers)
	// Untouched sections keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Browser.StabilizeBudget)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GLASSWING_LOGGER_LEVEL", "warn")
	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Logger:  LoggerConfig{Format: "console"},
			Browser: BrowserConfig{NavTimeout: time.Second, StabilizeBudget: time.Second},
			Migrate: MigrateConfig{Workers: 1},
		}
	}

	t.Run("accepts a sane config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("rejects non-positive nav timeout", func(t *testing.T) {
		cfg := base()
		cfg.Browser.NavTimeout = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive stabilize budget", func(t *testing.T) {
		cfg := base()
		cfg.Browser.StabilizeBudget = -time.Second
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive workers", func(t *testing.T) {
		cfg := base()
		cfg.Migrate.Workers = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown logger format", func(t *testing.T) {
		cfg := base()
		cfg.Logger.Format = "xml"
		assert.Error(t, cfg.Validate())
	})
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: Defaults apply with no environment set
func TestMustLoad_Defaults(t *testing.T) {
	var cfg Config
	MustLoad(&cfg)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.ScenarioConfig.Path)
	assert.False(t, cfg.ScenarioConfig.Watch)
	assert.Equal(t, 500*time.Millisecond, cfg.ScenarioConfig.Cooldown)
	assert.Equal(t, "text", cfg.ReportConfig.Format)
	assert.Equal(t, "stdout", cfg.ReportConfig.Output)
	assert.Equal(t, 8, cfg.ReportConfig.Precision)
	assert.Equal(t, 1, cfg.MatcherConfig.ScanWorkers)
}

// Test 2: Environment variables override the defaults
func TestMustLoad_Overrides(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("SCENARIO_PATH", "/tmp/books.yaml")
	t.Setenv("SCENARIO_WATCH", "true")
	t.Setenv("SCENARIO_COOLDOWN", "2s")
	t.Setenv("REPORT_FORMAT", "json")
	t.Setenv("REPORT_OUTPUT", "stderr")
	t.Setenv("REPORT_PRECISION", "4")
	t.Setenv("MATCHER_SCAN_WORKERS", "8")

	var cfg Config
	MustLoad(&cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/books.yaml", cfg.ScenarioConfig.Path)
	assert.True(t, cfg.ScenarioConfig.Watch)
	assert.Equal(t, 2*time.Second, cfg.ScenarioConfig.Cooldown)
	assert.Equal(t, "json", cfg.ReportConfig.Format)
	assert.Equal(t, "stderr", cfg.ReportConfig.Output)
	assert.Equal(t, 4, cfg.ReportConfig.Precision)
	assert.Equal(t, 8, cfg.MatcherConfig.ScanWorkers)
}

// chdir changes the working directory for the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

// Test 3: Load requires a .env file, MustLoad does not
func TestLoad_DotEnv(t *testing.T) {
	chdir(t, t.TempDir())

	var cfg Config
	require.Error(t, Load(&cfg))

	require.NoError(t, os.WriteFile(".env", []byte("REPORT_FORMAT=json\n"), 0o644))
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "json", cfg.ReportConfig.Format)
}

// Test 4: Malformed values fail parsing
func TestLoad_ParseError(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("SCENARIO_COOLDOWN=soon\n"), 0o644))

	var cfg Config
	assert.Error(t, Load(&cfg))
}

package realtime

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, DefaultFrequency, cfg.Frequency)
	assert.Equal(t, DefaultSleepThreshold, cfg.SleepThreshold.Std())
	assert.Equal(t, DefaultBusyWaitMargin, cfg.BusyWaitMargin.Std())
	assert.Equal(t, DefaultTelemetryBuffer, cfg.TelemetryBuffer)
	assert.True(t, cfg.Indefinite())
	assert.False(t, cfg.Realtime)
	require.NoError(t, cfg.Validate())
}

func TestConfigPeriod(t *testing.T) {
	cfg := Config{Frequency: 100}
	assert.Equal(t, 10*time.Millisecond, cfg.Period())
}

func TestConfigValidateCollectsEveryError(t *testing.T) {
	cfg := Config{
		Frequency:      -1,
		RunTime:        Duration(-time.Second),
		BusyWaitMargin: Duration(-time.Microsecond),
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "frequency")
	assert.Contains(t, err.Error(), "run_time")
	assert.Contains(t, err.Error(), "busy_wait_margin")
}

func TestConfigValidateRejectsUnschedulableFrequency(t *testing.T) {
	err := Config{Frequency: 1e12}.WithDefaults().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too high")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
frequency: 100
run_time: 2s
realtime: true
busy_wait_margin: 50us
`), 0o644))

	cfg, err := LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Frequency)
	assert.Equal(t, 2*time.Second, cfg.RunTime.Std())
	assert.True(t, cfg.Realtime)
	assert.Equal(t, 50*time.Microsecond, cfg.BusyWaitMargin.Std())
	assert.Equal(t, DefaultSleepThreshold, cfg.SleepThreshold.Std())

	jsonPath := filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"frequency": 10, "run_time": "500ms"}`), 0o644))

	cfg, err = LoadConfig(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Frequency)
	assert.Equal(t, 500*time.Millisecond, cfg.RunTime.Std())
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("run_time: soon\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("frequency: -5\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.Error(t, err)

	txt := filepath.Join(dir, "run.txt")
	require.NoError(t, os.WriteFile(txt, []byte("frequency: 5\n"), 0o644))
	_, err = LoadConfig(txt)
	assert.Error(t, err)
}

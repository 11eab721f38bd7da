package realtime

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFrequency is used when Config.Frequency is zero (60 Hz).
	DefaultFrequency = 60.0
	// DefaultSleepThreshold is the shortest remaining period worth handing
	// to the OS sleep; anything shorter is busy-waited.
	DefaultSleepThreshold = 250 * time.Microsecond
	// DefaultBusyWaitMargin is cut from each sleep and busy-waited instead,
	// to absorb OS wake-up jitter.
	DefaultBusyWaitMargin = 200 * time.Microsecond
	// DefaultTelemetryBuffer is the capacity of the telemetry channel.
	DefaultTelemetryBuffer = 256
)

// Config configures a Runtime. Zero values pick the defaults above.
type Config struct {
	// Frequency is the target tick rate in Hz.
	Frequency float64 `json:"frequency" yaml:"frequency"`
	// RunTime bounds the run in application time. Zero runs until cancelled.
	RunTime Duration `json:"run_time" yaml:"run_time"`
	// Realtime paces ticks to the wall clock. When false the runtime runs
	// flat out and advances application time by one period per tick.
	Realtime       bool     `json:"realtime" yaml:"realtime"`
	SleepThreshold Duration `json:"sleep_threshold" yaml:"sleep_threshold"`
	BusyWaitMargin Duration `json:"busy_wait_margin" yaml:"busy_wait_margin"`
	// TelemetryBuffer sizes the channel between the tick loop and the
	// telemetry sink. Records beyond it are dropped, never waited on.
	TelemetryBuffer int `json:"telemetry_buffer" yaml:"telemetry_buffer"`
}

// Duration is a time.Duration that reads and writes Go duration strings
// ("10ms", "1m30s") in YAML and JSON.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrapf(err, "duration %q", string(b))
	}
	*d = Duration(v)
	return nil
}

// WithDefaults returns a copy of c with zero fields set to their defaults.
func (c Config) WithDefaults() Config {
	if c.Frequency == 0 {
		c.Frequency = DefaultFrequency
	}
	if c.SleepThreshold == 0 {
		c.SleepThreshold = Duration(DefaultSleepThreshold)
	}
	if c.BusyWaitMargin == 0 {
		c.BusyWaitMargin = Duration(DefaultBusyWaitMargin)
	}
	if c.TelemetryBuffer == 0 {
		c.TelemetryBuffer = DefaultTelemetryBuffer
	}
	return c
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	if c.Frequency <= 0 || math.IsInf(c.Frequency, 0) || math.IsNaN(c.Frequency) {
		err = multierr.Append(err, errors.Errorf("frequency must be a positive number, got %v", c.Frequency))
	} else if c.Period() <= 0 {
		err = multierr.Append(err, errors.Errorf("frequency %v Hz is too high to schedule", c.Frequency))
	}
	if c.RunTime < 0 {
		err = multierr.Append(err, errors.Errorf("run_time must not be negative, got %s", c.RunTime.Std()))
	}
	if c.SleepThreshold < 0 {
		err = multierr.Append(err, errors.Errorf("sleep_threshold must not be negative, got %s", c.SleepThreshold.Std()))
	}
	if c.BusyWaitMargin < 0 {
		err = multierr.Append(err, errors.Errorf("busy_wait_margin must not be negative, got %s", c.BusyWaitMargin.Std()))
	}
	if c.TelemetryBuffer < 0 {
		err = multierr.Append(err, errors.Errorf("telemetry_buffer must not be negative, got %d", c.TelemetryBuffer))
	}
	return err
}

// Period is the nominal tick period, 1/Frequency.
func (c Config) Period() time.Duration {
	return time.Duration(float64(time.Second) / c.Frequency)
}

// Indefinite reports whether the run only ends on cancellation.
func (c Config) Indefinite() bool { return c.RunTime == 0 }

// LoadConfig reads a Config from a .yaml, .yml or .json file, applies
// defaults and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "yaml unmarshal")
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "json unmarshal")
		}
	default:
		return Config{}, errors.Errorf("unsupported config format %q", ext)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config validation after load of %s", path)
	}
	return cfg, nil
}

package harness

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/sarchlab/tagesim/timing/tage"
)

// Config configures the harness.
type Config struct {
	// Predictor is the geometry of every predictor the harness builds.
	Predictor tage.Config `json:"predictor"`

	// WindowSize is the number of branches per accuracy window.
	// Default: 1000.
	WindowSize int `json:"window_size"`

	// Parallelism bounds how many workloads run at once. Each workload
	// owns its predictor. Default: 4.
	Parallelism int `json:"parallelism"`

	// KeepWindows includes per-window accuracy in JSON reports.
	KeepWindows bool `json:"keep_windows"`

	// KeepTimeline includes the allocation timeline in JSON reports.
	KeepTimeline bool `json:"keep_timeline"`

	// Output is where to write results (default: os.Stdout).
	Output io.Writer `json:"-"`
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() Config {
	return Config{
		Predictor:   tage.DefaultConfig(),
		WindowSize:  1000,
		Parallelism: 4,
		Output:      os.Stdout,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "failed to read harness config %q", path)
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "failed to parse harness config %q", path)
	}

	return config, config.Validate()
}

// SaveConfig writes the Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize harness config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write harness config %q", path)
	}

	return nil
}

// Validate checks the harness settings and the predictor geometry.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return errors.New("window_size must be > 0")
	}
	if c.Parallelism <= 0 {
		return errors.New("parallelism must be > 0")
	}
	return errors.Wrap(c.Predictor.Validate(), "invalid predictor config")
}

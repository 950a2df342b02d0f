// Package config loads the YAML description of a gapfill run: which CSV to
// read, which columns are the target/drivers/QC columns, and which engine
// options to use.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/icos-etc/gapfill-mds/mds"
)

// Config is the top-level run description.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Columns    ColumnsConfig    `yaml:"columns"`
	Tolerances TolerancesConfig `yaml:"tolerances"`
	Run        RunConfig        `yaml:"run"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// InputConfig names the CSV file and its output destination.
type InputConfig struct {
	Path       string `yaml:"path"`
	OutputPath string `yaml:"output_path"`
}

// ColumnsConfig names the CSV header columns the engine reads. QC column
// names are optional; an empty string means "no QC column for this driver".
type ColumnsConfig struct {
	Target   string     `yaml:"target"`
	Drivers  [3]string  `yaml:"drivers"`
	DriverQC [3]string  `yaml:"driver_qc"`
	QCThrs   [3]float64 `yaml:"qc_thresholds"`
}

// ToleranceConfig is one driver's [min, max] acceptance bound.
type ToleranceConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// TolerancesConfig holds the three per-driver tolerance bounds. An unset
// (zero value) bound is passed to the engine as -9999: leave both bounds of
// a driver unset to fall back to mds.DefaultTolerances for that driver;
// with only one bound unset the other bound is used as a constant
// tolerance. Setting a bound to -9999 explicitly has the same effect.
type TolerancesConfig struct {
	D1 ToleranceConfig `yaml:"d1"`
	D2 ToleranceConfig `yaml:"d2"`
	D3 ToleranceConfig `yaml:"d3"`
}

// RunConfig holds the scalar engine options.
type RunConfig struct {
	TimeRes    string `yaml:"time_res"`
	ValuesMin  int    `yaml:"values_min"`
	ComputeHat bool   `yaml:"compute_hat"`
	StartRow   int    `yaml:"start_row"`
	EndRow     int    `yaml:"end_row"`
	Parallel   bool   `yaml:"parallel"`
}

// LoggingConfig configures internal/telemetry's logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with sane defaults for an otherwise-empty run
// description.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			TimeRes:   "half_hourly",
			ValuesMin: 0,
			StartRow:  -1,
			EndRow:    -1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and parses path into a Config seeded with Default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// EngineTimeRes maps Run.TimeRes to the mds.TimeRes code.
func (c *Config) EngineTimeRes() (mds.TimeRes, error) {
	switch c.Run.TimeRes {
	case "quarter_hourly":
		return mds.QuarterHourly, nil
	case "half_hourly":
		return mds.HalfHourly, nil
	case "hourly":
		return mds.Hourly, nil
	default:
		return 0, mds.ErrInvalidTimeres
	}
}

// EngineTolerances maps the three YAML tolerance bounds to mds.Tolerance
// values, substituting mds.InvalidValue for an unset (zero-value) bound so
// the engine applies its own documented default.
func (c *Config) EngineTolerances() [3]mds.Tolerance {
	toEngine := func(t ToleranceConfig) mds.Tolerance {
		out := mds.Tolerance{Min: t.Min, Max: t.Max}
		if out.Min == 0 {
			out.Min = mds.InvalidValue
		}
		if out.Max == 0 {
			out.Max = mds.InvalidValue
		}
		return out
	}
	return [3]mds.Tolerance{
		toEngine(c.Tolerances.D1),
		toEngine(c.Tolerances.D2),
		toEngine(c.Tolerances.D3),
	}
}

// Validate checks that a Config names enough to run the engine.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("config: input.path is required")
	}
	if c.Columns.Target == "" {
		return fmt.Errorf("config: columns.target is required")
	}
	switch c.Run.TimeRes {
	case "quarter_hourly", "half_hourly", "hourly":
	default:
		return fmt.Errorf("config: run.time_res %q not in {quarter_hourly, half_hourly, hourly}", c.Run.TimeRes)
	}
	return nil
}

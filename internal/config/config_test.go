package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icos-etc/gapfill-mds/mds"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAppliesDefaultsThenOverrides(t *testing.T) {
	path := writeTempConfig(t, `
input:
  path: data.csv
columns:
  target: TA
  drivers: [SW_IN, TA, VPD]
run:
  time_res: hourly
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "data.csv", cfg.Input.Path)
	require.Equal(t, "hourly", cfg.Run.TimeRes)
	require.Equal(t, -1, cfg.Run.StartRow) // default preserved, not overridden
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidateRequiresTargetAndPath(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate())

	cfg.Input.Path = "data.csv"
	require.Error(t, cfg.Validate())

	cfg.Columns.Target = "TA"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownTimeRes(t *testing.T) {
	cfg := Default()
	cfg.Input.Path = "data.csv"
	cfg.Columns.Target = "TA"
	cfg.Run.TimeRes = "daily"
	require.Error(t, cfg.Validate())
}

func TestEngineTimeRes(t *testing.T) {
	cfg := Default()
	cfg.Run.TimeRes = "half_hourly"
	tr, err := cfg.EngineTimeRes()
	require.NoError(t, err)
	require.Equal(t, mds.HalfHourly, tr)

	cfg.Run.TimeRes = "bogus"
	_, err = cfg.EngineTimeRes()
	require.ErrorIs(t, err, mds.ErrInvalidTimeres)
}

func TestEngineTolerancesSubstitutesSentinelForZeroValue(t *testing.T) {
	cfg := Default()
	cfg.Tolerances.D1 = ToleranceConfig{Min: 10, Max: 30}
	tol := cfg.EngineTolerances()
	require.Equal(t, mds.Tolerance{Min: 10, Max: 30}, tol[0])
	require.Equal(t, float64(mds.InvalidValue), tol[1].Min)
	require.Equal(t, float64(mds.InvalidValue), tol[1].Max)
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pentad/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, [5]float64{1, 0, 0, 0, 0}, cfg.InitState)
	assert.Equal(t, DefaultStepSize, cfg.StepSize)
	assert.Equal(t, dynamo.CouplingNone, cfg.Mode())
	assert.Equal(t, DefaultMaxDeltaPi, cfg.Thresholds.MaxDeltaPi)
	assert.Equal(t, DefaultMinPhi, cfg.Thresholds.MinPhi)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pentad.yaml")

	cfg := DefaultConfig()
	cfg.InitState = [5]float64{0.5, -0.5, 0.25, 0, 1}
	cfg.Coupling = CouplingConfig{Mode: "nonlinear", Weight: 0.3}
	cfg.Params[dynamo.ParamForcing] = 0.05
	cfg.Seed = "round-trip"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.InitState, loaded.InitState)
	assert.Equal(t, dynamo.CouplingNonlinear, loaded.Mode())
	assert.Equal(t, 0.3, loaded.Coupling.Weight)
	assert.Equal(t, "round-trip", loaded.Seed)
	assert.Equal(t, 0.05, loaded.FieldParams()[dynamo.ParamForcing])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestCouplingMatrix(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, dynamo.ZeroCoupling(), cfg.CouplingMatrix())

	cfg.Coupling.Weight = 0.2
	m := cfg.CouplingMatrix()
	assert.Equal(t, 0.2, m[0][1])
	assert.Equal(t, 0.0, m[0][0])
}

func TestFieldParamsFallsBackToDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, dynamo.DefaultParams(), cfg.FieldParams())
}

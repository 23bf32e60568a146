package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 600.0, cfg.SPH.RestDensity)
	assert.Equal(t, 0.01, cfg.SPH.SmoothingRadius)
	assert.Equal(t, 0.004, cfg.SPH.SimScale)
	assert.Equal(t, Vec{X: 0, Y: -9.8}, cfg.Physics.Gravity)
	assert.Equal(t, Vec{X: 20, Y: 50}, cfg.Domain.Max)
	assert.Equal(t, NeighborCells, cfg.Neighbor.Mode)

	assert.InDelta(t, 2.5, cfg.Derived.CellSize, 1e-12)
	assert.InEpsilon(t, 315.0/(64.0*math.Pi*1e-18), cfg.Derived.Poly6, 1e-9)
	assert.InDelta(t, -cfg.Derived.Lap, cfg.Derived.Spiky, 1e-6)
	assert.InDelta(t, 1.66, cfg.Derived.LatticeSpacing, 0.01)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("sph:\n  viscosity: 0.5\nphysics:\n  gravity: {y: 0}\nneighbor:\n  mode: probe\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.SPH.Viscosity)
	assert.Equal(t, 600.0, cfg.SPH.RestDensity, "unset keys keep defaults")
	assert.Equal(t, Vec{}, cfg.Physics.Gravity)
	assert.Equal(t, NeighborProbe, cfg.Neighbor.Mode)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero radius":  "sph:\n  smoothing_radius: 0\n",
		"bad mode":     "neighbor:\n  mode: octree\n",
		"empty domain": "domain:\n  max: {x: 0, y: 0}\n",
		"negative dt":  "physics:\n  dt: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.SPH.Viscosity = 0.35

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SPH, back.SPH)
	assert.Equal(t, cfg.Derived, back.Derived)
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	global = nil
	assert.Panics(t, func() { Cfg() })

	MustInit("")
	assert.NotNil(t, Cfg())
}

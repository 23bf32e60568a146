package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sphfluid/sph"
	"github.com/pthm-cable/sphfluid/vecmath"
)

func TestFrameName(t *testing.T) {
	cases := map[int]string{
		0:    "result000.pov",
		7:    "result007.pov",
		123:  "result123.pov",
		1234: "result1234.pov",
	}
	for i, want := range cases {
		if got := FrameName(i); got != want {
			t.Errorf("FrameName(%d): expected %q, got %q", i, want, got)
		}
	}
}

func TestWriteScene(t *testing.T) {
	ps := []sph.Particle{
		{Position: vecmath.New(0, 0)},
		{Position: vecmath.New(1.5, -2.25)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteScene(&buf, ps))

	want := `#include "colors.inc"
camera { location <10, 30, -40.0> look_at <10, 10, 0.0> }
light_source { <0, 30, -30> color White }
sphere {
  <0, 0, 0>, 0.5
  texture { pigment { color Gray30 } }
}
sphere {
  <1.5, -2.25, 0>, 0.5
  texture { pigment { color Gray30 } }
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteSceneEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScene(&buf, nil))
	assert.Equal(t, scenePreamble, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteScenePropagatesErrors(t *testing.T) {
	ps := make([]sph.Particle, 1000)
	assert.Error(t, WriteScene(failWriter{}, ps))
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	e, err := NewPOVExporter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, e.Dir())

	ps := []sph.Particle{{Position: vecmath.New(3, 4)}}
	path, err := e.Export(12, ps)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "result012.pov"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "<3, 4, 0>, 0.5"))
}

func TestExportFailsWhenDirectoryVanishes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	e, err := NewPOVExporter(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = e.Export(0, nil)
	assert.Error(t, err)
}

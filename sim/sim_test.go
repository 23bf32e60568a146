package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sphfluid/config"
	"github.com/pthm-cable/sphfluid/export"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNewBuildsLattice(t *testing.T) {
	s, err := New(loadConfig(t), Options{Workers: 1})
	require.NoError(t, err)
	defer s.Close()

	assert.Len(t, s.Particles(), 91)
	assert.Equal(t, int32(0), s.TickCount())
	assert.Equal(t, 1, s.Workers())
}

func TestTickAdvancesAndResets(t *testing.T) {
	s, err := New(loadConfig(t), Options{Workers: 1})
	require.NoError(t, err)
	defer s.Close()

	start := s.Particles()[50].Position
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Tick())
	}
	assert.Equal(t, int32(10), s.TickCount())
	assert.NotEqual(t, start, s.Particles()[50].Position)

	s.Reset()
	assert.Equal(t, int32(0), s.TickCount())
	assert.Equal(t, start, s.Particles()[50].Position)
}

func TestUpdatePaused(t *testing.T) {
	s, err := New(loadConfig(t), Options{Workers: 1})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Update(5, true))
	assert.Equal(t, int32(0), s.TickCount())

	require.NoError(t, s.Update(5, false))
	assert.Equal(t, int32(5), s.TickCount())
}

func TestHeadlessWritesFramesAndTelemetry(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Telemetry.StatsInterval = 4

	root := t.TempDir()
	frames := filepath.Join(root, "frames")
	out := filepath.Join(root, "out")

	s, err := New(cfg, Options{ExportDir: frames, OutputDir: out, Workers: 2})
	require.NoError(t, err)
	require.NoError(t, s.RunHeadless(8))
	require.NoError(t, s.Close())

	for i := 0; i < 8; i++ {
		_, err := os.Stat(filepath.Join(frames, export.FrameName(i)))
		assert.NoError(t, err, "frame %d", i)
	}
	_, err = os.Stat(filepath.Join(frames, export.FrameName(8)))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(out, "stats.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3, "header plus windows ending at ticks 4 and 8")

	_, err = os.Stat(filepath.Join(out, "perf.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "config.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, int32(8), s.LastStats().Tick)
	assert.Equal(t, 91, s.LastStats().Particles)
}

func TestExportFailureStopsRun(t *testing.T) {
	frames := filepath.Join(t.TempDir(), "frames")
	s, err := New(loadConfig(t), Options{ExportDir: frames, Workers: 1})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Tick())
	require.NoError(t, os.RemoveAll(frames))

	err = s.RunHeadless(5)
	assert.Error(t, err)
	assert.Equal(t, int32(1), s.TickCount(), "no tick is counted for a frame that failed to export")
}

func TestNewRejectsBadMode(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Neighbor.Mode = "kd"
	_, err := New(cfg, Options{})
	assert.Error(t, err)
}

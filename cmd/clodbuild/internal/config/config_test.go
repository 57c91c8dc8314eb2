package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/cmd/clodbuild/internal/config"
)

func TestLoadDefaultsWithNoConfigFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "raster", cfg.Preset)
	require.Equal(t, 128, cfg.MaxTriangles)
	require.Equal(t, 32, cfg.GridSize)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clodbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: rt\ngrid_size: 8\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "rt", cfg.Preset)
	require.Equal(t, 8, cfg.GridSize)
}

func TestLoadRejectsInvalidPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clodbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: bogus\n"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestMeshConfigBuildsRTPresetWhenRequested(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Preset = "rt"

	meshCfg := cfg.MeshConfig()
	require.NoError(t, meshCfg.Validate())
}

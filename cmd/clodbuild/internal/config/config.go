// Package config loads clodbuild's build settings from a YAML config
// file layered under CLI flags and environment variables, the same
// viper-layering convention as the teacher's pkg/config.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"github.com/nanite-lod/clusterlod/mesh"
)

// Config holds the settings clodbuild needs beyond what a plain
// mesh.Config captures: the preset to start from, a few preset
// overrides, and the size of the procedural demo grid.
type Config struct {
	Preset        string  `mapstructure:"preset"` // "raster" or "rt"
	MaxTriangles  int     `mapstructure:"max_triangles"`
	PartitionSize int     `mapstructure:"partition_size"`
	SimplifyRatio float32 `mapstructure:"simplify_ratio"`
	GridSize      int     `mapstructure:"grid_size"`
}

// Load reads configuration from configPath (if non-empty and present),
// falling back to defaults, and allows CLODBUILD_-prefixed environment
// variables to override any field.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config: read %s: %w", configPath, err)
			}
		}
	}

	v.SetEnvPrefix("clodbuild")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("preset", "raster")
	v.SetDefault("max_triangles", 128)
	v.SetDefault("partition_size", 16)
	v.SetDefault("simplify_ratio", 0.5)
	v.SetDefault("grid_size", 32)
}

// Validate checks the fields this package owns directly; mesh.Config's
// own Validate is run separately once MeshConfig builds it.
func (c *Config) Validate() error {
	if c.Preset != "raster" && c.Preset != "rt" {
		return fmt.Errorf("config: preset must be \"raster\" or \"rt\", got %q", c.Preset)
	}
	if c.GridSize < 1 {
		return fmt.Errorf("config: grid_size must be >= 1")
	}
	return nil
}

// MeshConfig builds the mesh.Config this Config describes.
func (c *Config) MeshConfig() mesh.Config {
	opts := []mesh.Option{
		mesh.WithPartitionSize(c.PartitionSize),
		mesh.WithSimplifyRatio(c.SimplifyRatio),
	}
	if c.Preset == "rt" {
		return mesh.DefaultConfigRT(c.MaxTriangles, opts...)
	}
	return mesh.DefaultConfig(c.MaxTriangles, opts...)
}
